package packmapper

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/packmapper/internal/version"
	"github.com/arthur-debert/packmapper/pkg/config"
	"github.com/arthur-debert/packmapper/pkg/errors"
	"github.com/arthur-debert/packmapper/pkg/logging"
	"github.com/arthur-debert/packmapper/pkg/passes"
	"github.com/arthur-debert/packmapper/pkg/ui/summary"
)

func newRulesCmd(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: MsgRulesShort,
		Long:  MsgRulesLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.rules")

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			// Refuse to print tables that would not load
			if _, err := cfg.RuleSet(); err != nil {
				return err
			}

			data, err := cfg.Marshal(format)
			if err != nil {
				return err
			}
			logger.Debug().Str("format", format).Int("bytes", len(data)).Msg("Printing rules")
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", config.FormatTOML, MsgFlagRulesFormat)
	return cmd
}

func newAdvisoryCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "advisory",
		Short: MsgAdvisoryShort,
		Long:  MsgAdvisoryLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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
			return renderer.RenderResult(&summary.Advisory{Assets: rs.RequiredNewAssets()})
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	return cmd
}

func newPassesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "passes",
		Short: MsgPassesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			rs, err := cfg.RuleSet()
			if err != nil {
				return err
			}
			for i, pass := range passes.Default(rs) {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %-12s %s\n", i+1, pass.Name(), pass.Description())
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			var err error
			switch args[0] {
			case "bash":
				err = cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				err = cmd.Root().GenZshCompletion(out)
			case "fish":
				err = cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				err = cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			if err != nil {
				return errors.Wrapf(err, errors.ErrInternal, "failed to generate %s completion", args[0])
			}
			return nil
		},
	}
}
