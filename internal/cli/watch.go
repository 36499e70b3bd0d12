package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/browser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/RevCBH/buildlight/internal/cli/tui"
	"github.com/RevCBH/buildlight/internal/config"
	"github.com/RevCBH/buildlight/internal/events"
	"github.com/RevCBH/buildlight/internal/monitor"
	"github.com/RevCBH/buildlight/internal/web"
)

// WatchOptions holds flags for the watch command
type WatchOptions struct {
	Interval int    // Poll interval override in seconds (0 = config)
	NoTUI    bool   // Disable TUI even when stdout is a TTY
	JSON     bool   // Emit monitor events as JSON lines
	Web      string // Dashboard listen address ("" = disabled, "config" = web.addr)
}

// webFromConfig is the --web value meaning "listen on web.addr"
const webFromConfig = "config"

// Validate checks WatchOptions for validity
func (opts WatchOptions) Validate() error {
	if opts.Interval < 0 {
		return fmt.Errorf("interval must not be negative, got %d", opts.Interval)
	}
	return nil
}

// NewWatchCmd creates the watch command
func NewWatchCmd(app *App) *cobra.Command {
	opts := WatchOptions{}

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the build light until interrupted",
		Long: `Watch polls the configured jobs on an interval and shows the aggregate
status as a light in the terminal.

Without a TTY (or with --no-tui) one line is printed per published status.
--json streams monitor events as JSON lines instead. --web also serves the
dashboard. Send SIGHUP to reload interval and job_url from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return err
			}
			return app.RunWatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVar(&opts.Interval, "interval", 0, "Poll interval in seconds (overrides config)")
	cmd.Flags().BoolVar(&opts.NoTUI, "no-tui", false, "Disable interactive TUI (print one line per update)")
	cmd.Flags().BoolVar(&opts.JSON, "json", false, "Emit events as JSON lines")
	cmd.Flags().StringVar(&opts.Web, "web", "", "Also serve the dashboard (--web uses web.addr, --web=:9090 overrides)")
	cmd.Flags().Lookup("web").NoOptDefVal = webFromConfig

	return cmd
}

// watchConfig loads config with watch-specific overrides
func (a *App) watchConfig(opts WatchOptions) (*config.Config, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.Interval > 0 {
		cfg.Interval = opts.Interval
	}
	return cfg, nil
}

// RunWatch runs the monitor, and optionally the TUI and dashboard, until
// the context is cancelled, a signal arrives, or the user quits the TUI.
func (a *App) RunWatch(ctx context.Context, opts WatchOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := a.watchConfig(opts)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	out := a.rootCmd.OutOrStdout()
	useTUI := !opts.NoTUI && !opts.JSON && term.IsTerminal(int(os.Stdout.Fd()))
	jsonMode := !useTUI && opts.JSON

	// Setup signal handler
	handler := NewSignalHandler(cancel)
	if !useTUI {
		handler.OnShutdown(func() {
			fmt.Fprintln(os.Stderr, "\nShutting down...")
		})
	}
	handler.Start()
	defer handler.Stop()

	eventBus := events.NewBus(256)
	defer eventBus.Close()

	var presenters []monitor.Presenter
	var srv *web.Server
	if opts.Web != "" {
		addr := opts.Web
		if addr == webFromConfig {
			addr = cfg.Web.Addr
		}
		srv, err = web.New(web.Config{Addr: addr})
		if err != nil {
			return fmt.Errorf("create dashboard: %w", err)
		}
		presenters = append(presenters, srv)
	}

	switch {
	case useTUI:
		// Bridge presents and subscribes below, once the program exists
	case jsonMode:
		eventBus.Subscribe(events.NewJSONEmitter(out).Handler())
	default:
		presenters = append(presenters, NewLinePresenter(out))
		if a.verbose || cfg.LogsAt("debug") {
			eventBus.Subscribe(events.LogHandler(events.LogConfig{Writer: os.Stderr}))
		}
	}

	var (
		m       *monitor.Monitor
		program *tea.Program
		notices io.Writer = os.Stderr
	)
	if useTUI {
		model := tui.NewModel(cfg.Interval, cfg.JobURL, tui.Actions{
			Refresh: func() { m.Refresh() },
			Open: func() ([]string, error) {
				targets := m.OpenTargets()
				return targets, a.openAll(targets)
			},
		})
		program = tea.NewProgram(model, tea.WithAltScreen())
		bridge := tui.NewBridge(program)
		eventBus.Subscribe(bridge.Handler())
		presenters = append(presenters, bridge)

		// Everything written via log goes to the TUI log pane
		logWriter := tui.NewLogWriter(program)
		prevLog := log.Writer()
		log.SetOutput(logWriter)
		browser.Stdout, browser.Stderr = io.Discard, io.Discard
		defer func() {
			log.SetOutput(prevLog)
			_ = logWriter.Close()
		}()
		notices = logWriter
	}
	defer filterLog(cfg)()

	m, err = a.WireMonitor(cfg, MonitorDeps{
		Presenter:    monitor.Presenters(presenters...),
		Bus:          eventBus,
		NoticeWriter: notices,
	})
	if err != nil {
		return err
	}

	handler.OnReload(func() {
		a.reload(m, opts)
	})

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return m.Run(gctx)
	})

	if srv != nil {
		if err := startDashboard(gctx, g, srv, dashboardOut(out, notices, useTUI)); err != nil {
			cancel()
			_ = g.Wait()
			return err
		}
	}

	if useTUI {
		g.Go(func() error {
			// User quitting the TUI stops everything else
			defer cancel()
			_, err := program.Run()
			return err
		})
		g.Go(func() error {
			<-gctx.Done()
			program.Quit()
			return nil
		})
	}

	return g.Wait()
}

// reload re-reads the config file and applies interval and job list
func (a *App) reload(m *monitor.Monitor, opts WatchOptions) {
	cfg, err := a.watchConfig(opts)
	if err != nil {
		log.Printf("WARN: reload config: %v", err)
		return
	}
	if err := m.SetInterval(cfg.Interval); err != nil {
		log.Printf("WARN: reload interval: %v", err)
	}
	m.SetJobSource(cfg.JobURL)
	log.Printf("config reloaded: interval=%ds job_url=%s", m.Interval(), m.JobSource())
}

func dashboardOut(out, notices io.Writer, useTUI bool) io.Writer {
	if useTUI {
		return notices
	}
	return out
}
