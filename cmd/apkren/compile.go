package apkren

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/script"
	"github.com/arthur-debert/apkren/pkg/style"
	"github.com/arthur-debert/apkren/pkg/ui"
	"github.com/arthur-debert/apkren/pkg/ui/display"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// compileFile reads and compiles the script at path
func compileFile(path string) (*script.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, MsgErrReadScript, path).WithDetail("path", path)
	}
	return script.Compile(string(data))
}

func newCompileCmd(g *globalFlags) *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:     "compile [script]",
		Short:   MsgCompileShort,
		Example: MsgCompileExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			renderer, err := g.renderer(cmd)
			if err != nil {
				return err
			}

			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				cfg, err := g.loadConfig(nil)
				if err != nil {
					return err
				}
				path = cfg.Script.DefaultPath
			}
			if path == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoScript)
			}

			doc, err := compileFile(path)
			if err != nil {
				return err
			}
			if err := renderer.RenderResult(display.NewDocumentView(path, doc)); err != nil {
				return err
			}

			if !watch {
				return nil
			}
			return watchScript(cmd.Context(), path, renderer, cmd)
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, MsgFlagWatch)
	return cmd
}

// watchScript recompiles path each time it is written until ctx ends.
// The parent directory is watched since editors often replace the file.
func watchScript(ctx context.Context, path string, renderer ui.Renderer, cmd *cobra.Command) error {
	logger := logging.GetLogger("cmd.compile")

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to start watcher")
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to watch %s", filepath.Dir(abs))
	}

	fmt.Fprintf(cmd.ErrOrStderr(), MsgWatching+"\n", path)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("Watcher error")
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Debug().Str("event", event.Op.String()).Msg("Script changed")

			doc, err := compileFile(path)
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), style.Render(fmt.Sprintf(MsgCompileFailed, err)))
				continue
			}
			fmt.Fprintln(cmd.ErrOrStderr(), style.Render(fmt.Sprintf(MsgRecompiled, path)))
			if err := renderer.RenderResult(display.NewDocumentView(path, doc)); err != nil {
				return err
			}
		}
	}
}
