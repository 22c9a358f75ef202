package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/audree-labs/layergen/internal/branding"
	"github.com/audree-labs/layergen/internal/config"
	"github.com/audree-labs/layergen/internal/layout"
	"github.com/audree-labs/layergen/internal/logging"
	"github.com/audree-labs/layergen/internal/platform"
	"github.com/audree-labs/layergen/internal/ui"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	projectRoot string
	logLevel    string
	logFormat   string
	noColor     bool

	logger = logging.Discard()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "project-root", "", "Solution root directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format: text or json (default from config)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` generates the controller, business, repository and model files for an
entity in a layered ASP.NET Core solution, then registers the new business and
repository services in the solution's dependency configurator.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// setup loads user settings and builds the logger. Flags win over config.
func setup(cmd *cobra.Command, args []string) error {
	config.Load()

	levelName := logLevel
	if levelName == "" {
		levelName = config.Get(config.KeyLogLevel)
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}

	formatName := logFormat
	if formatName == "" {
		formatName = config.Get(config.KeyLogFormat)
	}
	format, err := logging.ParseFormat(formatName)
	if err != nil {
		return err
	}

	logger = logging.New(
		logging.WithLevel(level),
		logging.WithFormat(format),
		logging.WithWriter(cmd.ErrOrStderr()),
	)
	ui.ConfigureColor(config.Get(config.KeyColor), noColor)
	logger.Debug("settings loaded", slog.String("config", config.FilePath()), slog.String("level", level.String()))
	return nil
}

// loadProject resolves the project root and reads its layout through fsys.
func loadProject(fsys afero.Fs, root string) (string, layout.Layout, error) {
	abs, err := platform.ResolveRoot(fsys, root)
	if err != nil {
		return "", layout.Layout{}, err
	}
	l, err := layout.Load(fsys, abs)
	if err != nil {
		return "", layout.Layout{}, err
	}
	return abs, l, nil
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		ui.New(os.Stderr).Error("%v", err)
	}
	return err
}
