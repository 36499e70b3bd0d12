package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/RevCBH/buildlight/internal/web"
)

// dashboardShutdownTimeout bounds graceful web server shutdown
const dashboardShutdownTimeout = 5 * time.Second

// startDashboard starts srv and stops it when ctx is done
func startDashboard(ctx context.Context, g *errgroup.Group, srv *web.Server, out io.Writer) error {
	if err := srv.Start(); err != nil {
		return fmt.Errorf("start dashboard: %w", err)
	}
	fmt.Fprintf(out, "Dashboard listening on http://%s\n", srv.Addr())

	g.Go(func() error {
		<-ctx.Done()

		// Graceful shutdown with timeout
		stopCtx, cancel := context.WithTimeout(context.Background(), dashboardShutdownTimeout)
		defer cancel()

		if err := srv.Stop(stopCtx); err != nil {
			return fmt.Errorf("stop dashboard: %w", err)
		}
		return nil
	})
	return nil
}
