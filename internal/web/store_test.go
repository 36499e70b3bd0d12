package web

import (
	"sync"
	"testing"
	"time"

	"github.com/RevCBH/buildlight/internal/jenkins"
	"github.com/RevCBH/buildlight/internal/monitor"
)

func testUpdate() monitor.Update {
	eps := jenkins.ResolveEndpoints("http://ci/job/a,http://ci/job/b,http://ci/job/c")
	return monitor.Update{
		Cycle:     4,
		Status:    "FAILURE",
		Attention: true,
		Results: []monitor.JobResult{
			{Endpoint: eps[0], Data: &jenkins.Build{Result: "FAILURE", Description: "please claim this build", Number: 9}},
			{Endpoint: eps[1], Data: &jenkins.Build{Result: "SUCCESS", Number: 3}},
			{Endpoint: eps[2]},
		},
		At: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_NewStoreIsLoading(t *testing.T) {
	store := NewStore()
	snap := store.Snapshot()

	if !snap.Loading {
		t.Error("expected new store to be loading")
	}
	if snap.Status != "INCOMPLETE" {
		t.Errorf("expected status INCOMPLETE, got %q", snap.Status)
	}
	if snap.Jobs == nil || snap.OpenTargets == nil {
		t.Error("expected empty, non-nil slices")
	}
	if store.OpenTargets() != nil {
		t.Error("expected no open targets while loading")
	}
}

func TestStore_Apply(t *testing.T) {
	store := NewStore()
	store.Apply(testUpdate())
	snap := store.Snapshot()

	if snap.Loading {
		t.Error("expected loaded snapshot")
	}
	if snap.Status != "FAILURE" || !snap.Attention || snap.Cycle != 4 {
		t.Errorf("unexpected snapshot header: %+v", snap)
	}
	if len(snap.Jobs) != 3 {
		t.Fatalf("expected 3 jobs, got %d", len(snap.Jobs))
	}

	first := snap.Jobs[0]
	if first.Source != "http://ci/job/a" || first.BuildURL != "http://ci/job/a/lastCompletedBuild" {
		t.Errorf("unexpected job urls: %+v", first)
	}
	if first.Result != "FAILURE" || first.Number != 9 || first.Pending {
		t.Errorf("unexpected job fields: %+v", first)
	}
	if !snap.Jobs[2].Pending {
		t.Error("expected job without data to be pending")
	}

	if len(snap.OpenTargets) != 1 || snap.OpenTargets[0] != "http://ci/job/a/lastCompletedBuild" {
		t.Errorf("unexpected open targets: %v", snap.OpenTargets)
	}
}

func TestStore_ConcurrentAccess(t *testing.T) {
	store := NewStore()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.Apply(testUpdate())
		}()
		go func() {
			defer wg.Done()
			_ = store.Snapshot()
			_ = store.OpenTargets()
		}()
	}

	wg.Wait()
}
