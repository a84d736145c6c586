package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tgienger/tasks/internal/app"
	"github.com/tgienger/tasks/internal/config"
)

// BuildInfo is set via ldflags in main
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options holds the global flags
type options struct {
	configPath string
	dataDir    string
	backend    string
	verbose    bool
	build      BuildInfo
}

// NewRootCmd builds the command tree. Without a subcommand it starts the TUI.
func NewRootCmd(build BuildInfo) *cobra.Command {
	o := &options{build: build}

	rootCmd := &cobra.Command{
		Use:   "tasks",
		Short: "A personal task list for the terminal",
		Long: `tasks keeps a personal, local task list with priorities and due dates.

Run without arguments for the interactive view, or use a subcommand for scripting.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, o)
		},
		Version:       build.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&o.configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&o.dataDir, "data-dir", "", "Directory holding the task database")
	rootCmd.PersistentFlags().StringVar(&o.backend, "backend", "", "Storage backend: sqlite or bolt")
	rootCmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newAddCmd(o),
		newListCmd(o),
		newDoneCmd(o),
		newEditCmd(o),
		newRmCmd(o),
		newMoveCmd(o),
		newClearCmd(o),
		newImportCmd(o),
		newExportCmd(o),
		newStatsCmd(o),
		newDueCmd(o),
		newThemeCmd(o),
		newVersionCmd(o),
	)
	return rootCmd
}

// Execute runs the root command
func Execute(build BuildInfo) error {
	if err := NewRootCmd(build).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// loadConfig applies the global flags on top of the layered config
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.backend != "" {
		cfg.Backend = o.backend
	}
	if o.verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, cfg.Validate()
}

func (o *options) openApp() (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}

// withApp opens the app, runs fn and closes the app, which flushes any
// pending save.
func (o *options) withApp(fn func(a *app.App) error) error {
	a, err := o.openApp()
	if err != nil {
		return err
	}
	err = fn(a)
	if cerr := a.Close(); err == nil {
		err = cerr
	}
	return err
}
