package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/RevCBH/buildlight/internal/monitor"
)

// ErrNotGreen is returned when the aggregate status is not SUCCESS
var ErrNotGreen = errors.New("build is not green")

// StatusOptions holds flags for the status command
type StatusOptions struct {
	JSON bool // Output as JSON instead of formatted text
}

// NewStatusCmd creates the status command
func NewStatusCmd(app *App) *cobra.Command {
	opts := StatusOptions{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Poll once and print the aggregate status",
		Long: `Poll every configured job once and print the aggregate status.

Exits non-zero unless every job's last completed build succeeded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.ShowStatus(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Output as JSON instead of formatted text")

	return cmd
}

// ShowStatus runs one poll cycle and writes the result to w
func (a *App) ShowStatus(ctx context.Context, opts StatusOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := a.pollOnce(ctx)
	if err != nil {
		if errors.Is(err, monitor.ErrIncomplete) {
			fmt.Fprintln(w, monitor.StatusIncomplete)
		}
		return err
	}

	if opts.JSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(u); err != nil {
			return fmt.Errorf("encode status: %w", err)
		}
	} else {
		fmt.Fprint(w, FormatUpdate(u, DisplayConfig{UseColor: isTerminal(w)}))
	}

	if u.Status != monitor.StatusSuccess {
		return fmt.Errorf("%w: %s", ErrNotGreen, u.Status)
	}
	return nil
}

// pollOnce loads config, wires a monitor and runs a single cycle
func (a *App) pollOnce(ctx context.Context) (monitor.Update, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return monitor.Update{}, err
	}

	defer filterLog(cfg)()

	m, err := a.WireMonitor(cfg, MonitorDeps{})
	if err != nil {
		return monitor.Update{}, err
	}

	u, err := m.Once(ctx)
	if err != nil {
		return monitor.Update{}, fmt.Errorf("poll %s: %w", cfg.JobURL, err)
	}
	return u, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
