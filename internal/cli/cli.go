package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"github.com/RevCBH/buildlight/internal/config"
	"github.com/RevCBH/buildlight/internal/jenkins"
)

// VersionInfo holds build-time version details
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App represents the CLI application with all wired dependencies
type App struct {
	// Root command
	rootCmd *cobra.Command

	// Persistent flags
	configPath  string
	jobOverride string
	verbose     bool

	// Version information
	versionInfo VersionInfo

	// Collaborators, replaceable in tests
	fetcher jenkins.Fetcher
	openURL func(url string) error
}

// New creates a new CLI application
func New() *App {
	app := &App{
		openURL: browser.OpenURL,
	}
	app.setupRootCmd()
	return app
}

// Execute runs the CLI application
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion sets the version string for the version command
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// SetArgs overrides os.Args for the root command
func (a *App) SetArgs(args []string) {
	a.rootCmd.SetArgs(args)
}

// SetOutput redirects command output
func (a *App) SetOutput(out, errOut io.Writer) {
	a.rootCmd.SetOut(out)
	a.rootCmd.SetErr(errOut)
}

// setupRootCmd configures the root Cobra command
func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "buildlight",
		Short: "Jenkins build light",
		Long: `buildlight polls the last completed build of one or more Jenkins jobs
and shows a single aggregate light: green when every job succeeded,
the first failing result otherwise, blinking while a failure is unclaimed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add persistent flags
	a.rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "",
		"Config file (default ./"+config.FileName+")")
	a.rootCmd.PersistentFlags().StringVar(&a.jobOverride, "job", "",
		"Comma-separated job URLs (overrides job_url)")
	a.rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false,
		"Verbose output")

	a.rootCmd.AddCommand(
		NewWatchCmd(a),
		NewStatusCmd(a),
		NewOpenCmd(a),
		NewConfigCmd(a),
		NewVersionCmd(a),
	)
}

// loadConfig reads the config file and applies persistent flag overrides
func (a *App) loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFile(a.configPath)
	} else {
		wd, werr := os.Getwd()
		if werr != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", werr)
		}
		cfg, err = config.LoadConfig(wd)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if a.jobOverride != "" {
		cfg.JobURL = a.jobOverride
	}
	return cfg, nil
}
