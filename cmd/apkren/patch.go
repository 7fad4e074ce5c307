package apkren

import (
	"github.com/arthur-debert/apkren/pkg/config"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/arthur-debert/apkren/pkg/ui"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"github.com/spf13/cobra"
)

// patchSetup is what every patch subcommand needs before touching files
type patchSetup struct {
	cfg      *config.Config
	rule     *rewrite.Rule
	renderer ui.Renderer
}

// ruleFlags are shared by the patch subcommands
type ruleFlags struct {
	from string
	to   string
}

func (r *ruleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", MsgFlagFrom)
	cmd.Flags().StringVar(&r.to, "to", "", MsgFlagTo)
}

func (r *ruleFlags) setup(g *globalFlags, cmd *cobra.Command) (*patchSetup, error) {
	if r.from == "" || r.to == "" {
		return nil, errors.New(errors.ErrInvalidInput, MsgErrNoRule)
	}
	cfg, err := g.loadConfig(nil)
	if err != nil {
		return nil, err
	}
	renderer, err := g.renderer(cmd)
	if err != nil {
		return nil, err
	}
	rule, err := cfg.RenameRule(r.from, r.to)
	if err != nil {
		return nil, err
	}
	return &patchSetup{cfg: cfg, rule: rule, renderer: renderer}, nil
}

func newPatchCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "patch",
		Short:   MsgPatchShort,
		Example: MsgPatchExample,
		GroupID: "core",
	}
	cmd.AddCommand(newPatchELFCmd(g))
	cmd.AddCommand(newPatchArchiveCmd(g))
	return cmd
}

func newPatchELFCmd(g *globalFlags) *cobra.Command {
	var rf ruleFlags

	cmd := &cobra.Command{
		Use:   "elf <library>...",
		Short: MsgPatchELFShort,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := rf.setup(g, cmd)
			if err != nil {
				return err
			}

			reporter, stop := newProgressReporter(cmd.ErrOrStderr())
			defer stop()

			view := &display.PatchListView{}
			for _, path := range args {
				progress.Message(reporter, path)
				report, err := rewrite.RewriteELFStrings(cmd.Context(), path, ps.rule, rewrite.ELFOptions{
					ScratchSuffix: ps.cfg.Library.ScratchSuffix,
					Logger:        logging.GetLogger("cmd.patch"),
					Progress:      reporter,
				})
				if err != nil {
					return err
				}
				view.Add(display.NewELFView(report))
			}
			stop()
			return ps.renderer.RenderResult(view)
		},
	}
	rf.bind(cmd)
	return cmd
}

func newPatchArchiveCmd(g *globalFlags) *cobra.Command {
	var (
		rf      ruleFlags
		entries []string
	)

	cmd := &cobra.Command{
		Use:     "archive <archive>...",
		Aliases: []string{"obb", "zip"},
		Short:   MsgPatchZipShort,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := rf.setup(g, cmd)
			if err != nil {
				return err
			}

			assets := ps.cfg.AssetOptions()
			opts := rewrite.ArchiveOptions{
				CatalogMarker: assets.CatalogMarker,
				ExtraEntries:  append(append([]string{}, assets.ExtraEntries...), entries...),
				Logger:        logging.GetLogger("cmd.patch"),
			}

			reporter, stop := newProgressReporter(cmd.ErrOrStderr())
			defer stop()
			opts.Progress = reporter

			view := &display.PatchListView{}
			for _, path := range args {
				progress.Message(reporter, path)
				report, err := rewrite.RewriteArchiveStrings(cmd.Context(), path, ps.rule, opts)
				if err != nil {
					return err
				}
				view.Add(display.NewArchiveView(report))
			}
			stop()
			return ps.renderer.RenderResult(view)
		},
	}
	rf.bind(cmd)
	cmd.Flags().StringArrayVar(&entries, "entry", nil, MsgFlagEntry)
	return cmd
}
