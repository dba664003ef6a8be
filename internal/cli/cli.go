package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/specialistvlad/deckgo/internal/app"
)

// Exit codes returned through ExitError.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// Viper keys, shared by flags, DECKGO_* environment variables and the config file.
const (
	keyLogLevel  = "log-level"
	keyLogFormat = "log-format"
	keySystem    = "system"
	keyUnitsPath = "units-path"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) error {
	return &ExitError{Code: ExitUsage, Message: fmt.Sprintf(format, args...)}
}

// options carries the state shared between the root command and its children.
type options struct {
	out  io.Writer
	errW io.Writer

	v          *viper.Viper
	configFile string
	config     *app.Config
}

// NewRootCommand builds the deckgo command tree. Command output goes to out,
// logs go to errW.
func NewRootCommand(out, errW io.Writer) *cobra.Command {
	opts := &options{out: out, errW: errW, v: viper.New()}

	root := &cobra.Command{
		Use:   "deckgo",
		Short: "deckgo - deck item values and SI unit normalization",
		Long: `deckgo reads the values of one deck record field, substitutes defaults for
omitted entries and converts them to SI units using the selected unit system.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: opts.loadConfig,
	}
	root.SetOut(out)
	root.SetErr(errW)
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError("%v", err)
	})

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "Optional config file (yaml, toml or json).")
	flags.String(keyLogLevel, "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	flags.String(keyLogFormat, "text", "Log output format. Options: 'text' or 'json'.")
	flags.String(keySystem, "METRIC", "Unit system: METRIC, FIELD, LAB, or a system defined in --units-path.")
	flags.String(keyUnitsPath, "", "HCL file, or directory of .hcl files, with unit_system definitions.")

	if err := opts.v.BindPFlags(flags); err != nil {
		// Binding only fails for a nil flag set.
		panic(err)
	}
	opts.v.SetEnvPrefix("DECKGO")
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()

	root.AddCommand(newNormalizeCommand(opts))
	root.AddCommand(newUnitsCommand(opts))
	return root
}

// loadConfig resolves flags, environment and config file into an app.Config.
func (o *options) loadConfig(cmd *cobra.Command, _ []string) error {
	slog.Debug("CLI config loading started.", "command", cmd.Name())

	if o.configFile != "" {
		o.v.SetConfigFile(o.configFile)
		if err := o.v.ReadInConfig(); err != nil {
			return usageError("failed to read config file %s: %v", o.configFile, err)
		}
		slog.Debug("Config file loaded.", "path", o.v.ConfigFileUsed())
	}

	cfg, err := app.NewConfig(app.Config{
		UnitSystem: o.v.GetString(keySystem),
		UnitsPath:  o.v.GetString(keyUnitsPath),
		LogLevel:   strings.ToLower(o.v.GetString(keyLogLevel)),
		LogFormat:  strings.ToLower(o.v.GetString(keyLogFormat)),
	})
	if err != nil {
		return usageError("%v", err)
	}

	o.config = cfg
	slog.Debug("CLI config loading finished.", "config", cfg)
	return nil
}

// newApp creates the application for a command run.
func (o *options) newApp(cmd *cobra.Command) (*app.App, error) {
	if o.config == nil {
		return nil, errors.New("configuration not loaded")
	}
	return app.NewApp(cmd.Context(), o.errW, o.config)
}
