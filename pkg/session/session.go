package session

import (
	"context"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/arthur-debert/apkren/pkg/config"
	"github.com/arthur-debert/apkren/pkg/dispatch"
	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/filesystem"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/manifest"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/arthur-debert/apkren/pkg/script"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Target is one extracted package and the company name it is renamed to.
// Vars are added to the manifest variables and win over them.
type Target struct {
	Dir        string
	NewCompany string
	Vars       map[string]string
}

// StageReport is the outcome of one dispatched stage
type StageReport struct {
	Kind   script.StageKind `json:"kind" yaml:"kind"`
	Result *commands.Result `json:"result" yaml:"result"`
}

// Report is the outcome of running the whole document over one package
type Report struct {
	Dir       string             `json:"dir" yaml:"dir"`
	Variables map[string]string  `json:"variables" yaml:"variables"`
	Stages    []StageReport      `json:"stages" yaml:"stages"`
	Skipped   []script.StageKind `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	// Error is set by RunPackages when the package failed
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Result returns the report of kind, if it ran
func (r *Report) Result(kind script.StageKind) (*commands.Result, bool) {
	for _, s := range r.Stages {
		if s.Kind == kind {
			return s.Result, true
		}
	}
	return nil, false
}

// Options configures a Session. FS and Logger default like dispatch.Options.
type Options struct {
	FS       filesystem.FS
	Logger   *zerolog.Logger
	Progress progress.Reporter
	// Stages restricts RunAll to these kinds; empty runs every stage
	Stages []script.StageKind
}

// Session runs one document over any number of packages
type Session struct {
	doc      *script.Document
	catalog  *commands.Catalog
	cfg      *config.Config
	fs       filesystem.FS
	logger   zerolog.Logger
	progress progress.Reporter
	only     map[script.StageKind]bool
}

// New binds a compiled document to its catalog and configuration.
// dispatch.CheckPrivileges is the caller's job.
func New(doc *script.Document, catalog *commands.Catalog, cfg *config.Config, opts Options) *Session {
	logger := logging.GetLogger("session")
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}
	var only map[script.StageKind]bool
	if len(opts.Stages) > 0 {
		only = make(map[script.StageKind]bool, len(opts.Stages))
		for _, kind := range opts.Stages {
			only[kind] = true
		}
	}
	return &Session{
		doc:      doc,
		catalog:  catalog,
		cfg:      cfg,
		fs:       fs,
		logger:   logger,
		progress: opts.Progress,
		only:     only,
	}
}

// Prepare reads target's manifest and returns a dispatcher and the
// variables for it
func (s *Session) Prepare(target Target) (*dispatch.Dispatcher, map[string]string, error) {
	m, err := manifest.Load(s.fs, target.Dir)
	if err != nil {
		return nil, nil, err
	}
	pkg, err := m.PackageName()
	if err != nil {
		return nil, nil, err
	}

	vars := manifest.Variables(pkg, target.NewCompany)
	for k, v := range target.Vars {
		vars[k] = v
	}
	rule, err := s.cfg.RenameRule(vars[manifest.VarOriginalCompany], target.NewCompany)
	if err != nil {
		return nil, nil, err
	}

	d := dispatch.New(s.catalog, dispatch.Options{
		FS:       s.fs,
		Logger:   &s.logger,
		Progress: s.progress,
		Rename:   rule,
		Library:  s.cfg.LibraryOptions(),
		Assets:   s.cfg.AssetOptions(),
	})
	return d, vars, nil
}

// RunStage dispatches one stage. A stage the document does not declare is
// not an error; it returns an empty result and false.
func (s *Session) RunStage(ctx context.Context, d *dispatch.Dispatcher, kind script.StageKind, dir string, vars map[string]string) (*commands.Result, bool, error) {
	stage, ok := s.doc.Stage(kind)
	if !ok {
		s.logger.Info().Str("stage", kind.String()).Msg("No alterations for stage")
		return &commands.Result{}, false, nil
	}

	s.logger.Info().Str("stage", kind.String()).Msg("Entering script stage")
	defer s.logger.Info().Str("stage", kind.String()).Msg("Exiting script stage")

	progress.Title(s.progress, "Running "+kind.String()+" stage")
	res, err := d.Dispatch(ctx, stage, dir, vars)
	if err != nil {
		return nil, true, err
	}
	return res, true, nil
}

// RunAll dispatches every declared stage over target in stage order,
// stopping at the first failure. Stages filtered out by Options.Stages are
// reported as skipped.
func (s *Session) RunAll(ctx context.Context, target Target) (*Report, error) {
	d, vars, err := s.Prepare(target)
	if err != nil {
		return nil, err
	}

	report := &Report{Dir: target.Dir, Variables: vars}
	for _, kind := range script.StageKinds {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		if s.only != nil && !s.only[kind] {
			report.Skipped = append(report.Skipped, kind)
			continue
		}

		res, ran, err := s.RunStage(ctx, d, kind, target.Dir, vars)
		if err != nil {
			return report, errors.Wrapf(err, errors.GetErrorCode(err), "stage %s failed for %s", kind, target.Dir).
				WithDetail("stage", kind.String()).
				WithDetail("package", target.Dir)
		}
		if !ran {
			report.Skipped = append(report.Skipped, kind)
			continue
		}
		report.Stages = append(report.Stages, StageReport{Kind: kind, Result: res})
	}
	return report, nil
}

// RunPackages runs the document over every target, at most
// config run.parallel at a time. Reports keep the order of targets and
// carry each package's error. The first failure cancels the packages not
// yet finished.
func (s *Session) RunPackages(ctx context.Context, targets []Target) ([]*Report, error) {
	reports := make([]*Report, len(targets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Run.Parallel)

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			report, err := s.RunAll(gctx, target)
			if report == nil {
				report = &Report{Dir: target.Dir}
			}
			reports[i] = report
			if err != nil {
				report.Error = err.Error()
				s.logger.Error().Err(err).Str("package", target.Dir).Msg("Package failed")
				return err
			}
			s.logger.Info().Str("package", target.Dir).Msg("Package completed")
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return reports, err
	}
	return reports, nil
}
