package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// OpenOptions holds flags for the open command
type OpenOptions struct {
	Print bool // Print the URLs instead of launching a browser
}

// NewOpenCmd creates the open command
func NewOpenCmd(app *App) *cobra.Command {
	opts := OpenOptions{}

	cmd := &cobra.Command{
		Use:   "open",
		Short: "Open the builds responsible for the current status",
		Long: `Poll once, then open the last completed build page of every job whose
result equals the aggregate status.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.OpenBuilds(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&opts.Print, "print", false, "Print build URLs instead of opening them")

	return cmd
}

// OpenBuilds runs one poll cycle and opens (or prints) the matching builds
func (a *App) OpenBuilds(ctx context.Context, opts OpenOptions, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	u, err := a.pollOnce(ctx)
	if err != nil {
		return err
	}

	targets := u.OpenTargets()
	if len(targets) == 0 {
		fmt.Fprintf(w, "no builds match status %s\n", u.Status)
		return nil
	}

	if opts.Print {
		for _, url := range targets {
			fmt.Fprintln(w, url)
		}
		return nil
	}
	return a.openAll(targets)
}

// openAll launches every URL, reporting all failures
func (a *App) openAll(urls []string) error {
	var errs []error
	for _, url := range urls {
		if err := a.openURL(url); err != nil {
			errs = append(errs, fmt.Errorf("open %s: %w", url, err))
		}
	}
	return errors.Join(errs...)
}
