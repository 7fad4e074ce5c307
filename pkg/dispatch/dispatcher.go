package dispatch

import (
	"context"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/filesystem"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/arthur-debert/apkren/pkg/sandbox"
	"github.com/arthur-debert/apkren/pkg/script"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configures a Dispatcher. Zero values fall back to the OS
// filesystem, the "dispatch" logger and no progress reporting.
type Options struct {
	FS       filesystem.FS
	Logger   *zerolog.Logger
	Progress progress.Reporter
	// Rename is handed to patchlib and patchasset
	Rename  *rewrite.Rule
	Library commands.LibraryOptions
	Assets  commands.AssetOptions
}

// Dispatcher runs the commands of one stage in order
type Dispatcher struct {
	catalog *commands.Catalog
	env     *commands.Env
	logger  zerolog.Logger
}

// New returns a Dispatcher bound to catalog. Call CheckPrivileges first.
func New(catalog *commands.Catalog, opts Options) *Dispatcher {
	logger := logging.GetLogger("dispatch")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	reporter := opts.Progress
	if reporter == nil {
		reporter = progress.Nop
	}

	return &Dispatcher{
		catalog: catalog,
		logger:  logger,
		env: &commands.Env{
			FS:       fs,
			Progress: reporter,
			Rename:   opts.Rename,
			Library:  opts.Library,
			Assets:   opts.Assets,
		},
	}
}

// Dispatch executes every command of stage against basePath.
//
// Commands run sequentially, asynchronous handlers included. The first
// failure aborts the stage; earlier side effects stay in place. A
// cancelled ctx stops the stage before the next command starts.
func (d *Dispatcher) Dispatch(ctx context.Context, stage script.Stage, basePath string, vars map[string]string) (*commands.Result, error) {
	runID := uuid.NewString()
	logger := d.logger.With().
		Str("run", runID).
		Str("stage", stage.Kind.String()).
		Logger()

	done := logging.LogOperationStart(logger, "dispatch")
	defer done()
	logger.Info().Int("commands", len(stage.Commands)).Str("base", basePath).Msg("Dispatching stage")

	result := &commands.Result{}
	for _, cmd := range stage.Commands {
		if err := ctx.Err(); err != nil {
			logger.Info().Int("line", cmd.Line).Msg("Stage cancelled")
			return nil, errors.Wrap(err, errors.ErrCancelled, "stage cancelled").
				WithDetail("line", cmd.Line)
		}
		partial, err := d.execute(ctx, logger, cmd, basePath, vars)
		if err != nil {
			return nil, err
		}
		result.Append(partial)
	}

	logger.Info().
		Int("inclusions", len(result.Inclusions)).
		Int("exclusions", len(result.Exclusions)).
		Msg("Stage completed")
	return result, nil
}

func (d *Dispatcher) execute(ctx context.Context, logger zerolog.Logger, cmd script.Command, basePath string, vars map[string]string) (*commands.Result, error) {
	desc, ok := d.catalog.Lookup(cmd.Name)
	if !ok {
		return nil, errors.Newf(errors.ErrUnknownCommand, "unknown command '%s'", cmd.Name).
			WithDetail("command", cmd.Name).
			WithDetail("line", cmd.Line)
	}

	cmdLogger := logger.With().Str("command", desc.Name).Int("line", cmd.Line).Logger()

	args := make([]string, len(cmd.Args))
	for i, raw := range cmd.Args {
		args[i] = Substitute(raw, vars, cmdLogger)
	}

	if !desc.Arity.Accepts(len(args)) {
		return nil, errors.Newf(errors.ErrInvalidArgumentCount,
			"command '%s' takes %s argument(s), got %d", desc.Name, desc.Arity, len(args)).
			WithDetail("command", desc.Name).
			WithDetail("line", cmd.Line)
	}

	for i, arg := range args {
		confined, err := sandbox.Confine(basePath, arg, desc.AccessFor(i).Strict())
		if err != nil {
			cmdLogger.Error().Err(err).Msg("Argument rejected")
			if ae, ok := err.(*errors.ApkrenError); ok {
				ae.WithDetail("command", desc.Name).WithDetail("line", cmd.Line)
			}
			return nil, err
		}
		args[i] = confined
	}

	call := commands.Call{
		Name: desc.Name,
		Line: cmd.Line,
		Args: desc.MarshalArgs(args),
		Log:  zerolog.Nop(),
	}
	if desc.WantsLog {
		call.Log = cmdLogger
	}

	logging.LogCommand(cmdLogger, desc.Name, args)

	partial, err := d.invoke(ctx, desc, call)
	if err != nil {
		cmdLogger.Error().Err(err).Msg("Command failed")
		return nil, errors.Wrapf(err, errors.ErrHandlerFailure, "command '%s' failed", desc.Name).
			WithDetail("command", desc.Name).
			WithDetail("line", cmd.Line)
	}
	return partial, nil
}

type outcome struct {
	result *commands.Result
	err    error
}

// invoke runs the handler, on its own goroutine for async commands, and
// always waits for it to finish.
func (d *Dispatcher) invoke(ctx context.Context, desc *commands.Descriptor, call commands.Call) (*commands.Result, error) {
	if !desc.Async {
		return desc.Invoke(ctx, d.env, call)
	}

	done := make(chan outcome, 1)
	go func() {
		res, err := desc.Invoke(ctx, d.env, call)
		done <- outcome{result: res, err: err}
	}()
	out := <-done
	return out.result, out.err
}
