package apkren

import (
	"strings"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/dispatch"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/script"
	"github.com/arthur-debert/apkren/pkg/session"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"github.com/spf13/cobra"
)

func newRunCmd(g *globalFlags) *cobra.Command {
	var (
		company  string
		parallel int
		vars     map[string]string
		stages   []string
	)

	cmd := &cobra.Command{
		Use:     "run <script> <package-dir>...",
		Short:   MsgRunShort,
		Long:    MsgRunLong,
		Example: MsgRunExample,
		GroupID: "core",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.run")

			if strings.TrimSpace(company) == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoCompany)
			}
			kinds, err := parseStages(stages)
			if err != nil {
				return err
			}
			if err := dispatch.CheckPrivileges(); err != nil {
				return err
			}

			var overrides map[string]interface{}
			if cmd.Flags().Changed("parallel") {
				overrides = map[string]interface{}{"run.parallel": parallel}
			}
			cfg, err := g.loadConfig(overrides)
			if err != nil {
				return err
			}

			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			doc, err := compileFile(args[0])
			if err != nil {
				return err
			}
			catalog, err := commands.Builtins()
			if err != nil {
				return err
			}

			reporter, stop := newProgressReporter(cmd.ErrOrStderr())
			sess := session.New(doc, catalog, cfg, session.Options{Progress: reporter, Stages: kinds})

			targets := make([]session.Target, 0, len(args)-1)
			for _, dir := range args[1:] {
				targets = append(targets, session.Target{Dir: dir, NewCompany: company, Vars: vars})
			}

			logger.Info().
				Str("script", args[0]).
				Int("packages", len(targets)).
				Int("parallel", cfg.Run.Parallel).
				Msg("Starting run")

			reports, runErr := sess.RunPackages(cmd.Context(), targets)
			stop()

			if err := renderer.RenderResult(display.NewRunView(reports)); err != nil {
				return err
			}
			return runErr
		},
	}

	cmd.Flags().StringVarP(&company, "new-company", "c", "", MsgFlagCompany)
	cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, MsgFlagParallel)
	cmd.Flags().StringToStringVar(&vars, "var", nil, MsgFlagVar)
	cmd.Flags().StringSliceVarP(&stages, "stage", "s", nil, MsgFlagStage)
	_ = cmd.MarkFlagRequired("new-company")
	return cmd
}

// parseStages resolves --stage values, case-insensitively
func parseStages(names []string) ([]script.StageKind, error) {
	kinds := make([]script.StageKind, 0, len(names))
	for _, name := range names {
		kind, ok := script.ParseStageKind(strings.TrimSpace(name))
		if !ok {
			return nil, errors.Newf(errors.ErrUnknownStage, "unknown stage '%s'", name).WithDetail("stage", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}
