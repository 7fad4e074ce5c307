package apkren

import (
	"fmt"

	"github.com/arthur-debert/apkren/internal/version"
	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/config"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"github.com/arthur-debert/apkren/pkg/ui/markdown"
	"github.com/spf13/cobra"
)

func newCommandsCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "commands",
		Short:   MsgCommandsShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			catalog, err := commands.Builtins()
			if err != nil {
				return err
			}
			return renderer.RenderResult(display.NewCatalogView(catalog))
		},
	}
}

func newSyntaxCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "syntax",
		Short:   MsgSyntaxShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprint(out, markdown.For(isTerminal(out)).Render(MsgSyntax))
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				fmt.Fprint(cmd.OutOrStdout(), config.DefaultContent())
				return nil
			}
			cfg, err := g.loadConfig(nil)
			if err != nil {
				return err
			}
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}
			return renderer.RenderResult(cfg)
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "apkren version %s\n", version.Version)
			fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}
