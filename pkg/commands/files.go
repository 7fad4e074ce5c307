package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/apkren/pkg/filesystem"
)

func makeDirectory(_ context.Context, env *Env, call Call) (*Result, error) {
	target := call.Args.At(0)
	call.Log.Info().Str("target", target).Msg("Creating directory")
	return nil, env.FS.MkdirAll(target, 0755)
}

func moveEntry(_ context.Context, env *Env, call Call) (*Result, error) {
	source, target := call.Args.At(0), call.Args.At(1)
	call.Log.Info().Str("source", source).Str("target", target).Msg("Moving")

	info, err := env.FS.Stat(source)
	if err != nil {
		return nil, sourceError(source, err)
	}

	if info.IsDir() {
		if _, err := env.FS.Stat(target); err == nil {
			return nil, fmt.Errorf("cannot move directory %s: target %s already exists", source, target)
		}
	}
	if err := env.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, err
	}
	return nil, env.FS.Rename(source, target)
}

func copyEntry(_ context.Context, env *Env, call Call) (*Result, error) {
	source, target := call.Args.At(0), call.Args.At(1)
	call.Log.Info().Str("source", source).Str("target", target).Msg("Copying")

	info, err := env.FS.Stat(source)
	if err != nil {
		return nil, sourceError(source, err)
	}

	if info.IsDir() {
		return nil, filesystem.CopyTree(env.FS, source, target)
	}
	if err := env.FS.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return nil, err
	}
	return nil, filesystem.CopyFile(env.FS, source, target)
}

func removeEntries(ctx context.Context, env *Env, call Call) (*Result, error) {
	if call.Args.Len() == 0 {
		return nil, fmt.Errorf("no targets specified")
	}

	for _, target := range call.Args.Values {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if strings.TrimSpace(target) == "" {
			continue
		}

		info, err := env.FS.Stat(target)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("target '%s' not found", target)
			}
			return nil, err
		}

		if info.IsDir() {
			call.Log.Info().Str("target", target).Msg("Removing directory (recursively)")
			err = env.FS.RemoveAll(target)
		} else {
			call.Log.Info().Str("target", target).Msg("Removing file")
			err = env.FS.Remove(target)
		}
		if err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func includeTargets(_ context.Context, _ *Env, call Call) (*Result, error) {
	result := &Result{}
	for _, target := range call.Args.Values {
		call.Log.Info().Str("target", target).Msg("Including target")
		result.Inclusions = append(result.Inclusions, target)
	}
	return result, nil
}

func excludeTargets(_ context.Context, _ *Env, call Call) (*Result, error) {
	result := &Result{}
	for _, target := range call.Args.Values {
		call.Log.Info().Str("target", target).Msg("Excluding target")
		result.Exclusions = append(result.Exclusions, target)
	}
	return result, nil
}

func sourceError(source string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("source '%s' not found", source)
	}
	return err
}
