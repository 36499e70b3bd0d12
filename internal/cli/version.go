package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// withDefaults fills unset fields for builds without ldflags
func (v VersionInfo) withDefaults() VersionInfo {
	if v.Version == "" {
		v.Version = "dev"
	}
	if v.Commit == "" {
		v.Commit = "unknown"
	}
	if v.Date == "" {
		v.Date = "unknown"
	}
	return v
}

func (v VersionInfo) write(w io.Writer, asJSON bool) error {
	v = v.withDefaults()
	if asJSON {
		return json.NewEncoder(w).Encode(map[string]string{
			"version": v.Version,
			"commit":  v.Commit,
			"date":    v.Date,
		})
	}
	_, err := fmt.Fprintf(w, "buildlight %s (commit %s, built %s)\n", v.Version, v.Commit, v.Date)
	return err
}

// NewVersionCmd creates the version command
func NewVersionCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.versionInfo.write(cmd.OutOrStdout(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
