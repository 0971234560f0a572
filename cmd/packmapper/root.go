package packmapper

import (
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/packmapper/internal/version"
	"github.com/arthur-debert/packmapper/pkg/config"
	"github.com/arthur-debert/packmapper/pkg/convert"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/ui"
)

// Process exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
)

// options collects the flags shared by the commands
type options struct {
	verbosity    int
	configFile   string
	format       string
	targetFormat int
	description  string

	// set by PersistentPreRun so every command sees the same flag state
	cmd *cobra.Command
}

// loadConfig loads the configuration with the flags as the top layer
func (o *options) loadConfig() (*config.Config, error) {
	overrides := map[string]interface{}{}
	if o.cmd != nil {
		flags := o.cmd.Flags()
		if flags.Changed("target-format") {
			overrides["rules.target.format"] = o.targetFormat
		}
		if flags.Changed("description") {
			overrides["rules.target.description"] = o.description
		}
	}
	return config.Load(config.LoadOptions{
		ConfigFile: o.configFile,
		Overrides:  overrides,
	})
}

// renderer returns the renderer for the --format flag. An invalid value
// falls back to plain text so the error about it can still be shown.
func (o *options) renderer(w io.Writer) (ui.Renderer, error) {
	opts := ui.Options{Verbose: o.verbosity > 0}
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		r, _ := ui.NewRenderer(ui.FormatText, w, opts)
		return r, err
	}
	return ui.NewRenderer(format, w, opts)
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(&options{})
}

func newRootCmd(opts *options) *cobra.Command {
	initTemplateFormatting()

	rootCmd := &cobra.Command{
		Use:     "packmapper [flags] <input> <output>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.Newf(errors.ErrUsage, MsgErrArgs, len(args))
			}
			return nil
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.cmd = cmd
			logging.SetupLogger(opts.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, opts, args[0], args[1])
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().IntVar(&opts.targetFormat, "target-format", 0, MsgFlagTargetFormat)
	rootCmd.PersistentFlags().StringVar(&opts.description, "description", "", MsgFlagDescription)
	rootCmd.Flags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return errors.Wrap(err, errors.ErrUsage, "invalid flags")
	})
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newAdvisoryCmd(opts))
	rootCmd.AddCommand(newPassesCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

func runConvert(cmd *cobra.Command, opts *options, input, output string) error {
	logger := logging.GetLogger("cmd.convert")

	renderer, err := opts.renderer(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}
	rs, err := cfg.RuleSet()
	if err != nil {
		return err
	}

	result, err := convert.NewConverter(rs, cfg.Layout).Convert(input, output)
	if err != nil {
		return err
	}
	logger.Debug().Str("run", result.RunID).Msg("Rendering summary")
	return renderer.RenderResult(result)
}

// Execute runs the command line and returns the process exit code.
// Errors are rendered to stderr in the requested format; usage errors
// are followed by the usage of the failing command.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{format: "auto"}
	rootCmd := newRootCmd(opts)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	failed, err := rootCmd.ExecuteC()
	if err == nil {
		return ExitOK
	}

	renderer, _ := opts.renderer(stderr)
	_ = renderer.RenderError(err)
	if errors.IsErrorCode(err, errors.ErrUsage) {
		_, _ = io.WriteString(stderr, "\n"+failed.UsageString())
	}
	return ExitFailure
}
