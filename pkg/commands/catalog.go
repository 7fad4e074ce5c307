package commands

import (
	"fmt"
	"sync"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/logging"
	"github.com/arthur-debert/apkren/pkg/registry"
	"github.com/rs/zerolog"
)

// Catalog resolves command names case-insensitively. It is read-only once
// built and safe for concurrent use.
type Catalog struct {
	entries registry.Registry[*Descriptor]
}

// Lookup resolves a command name
func (c *Catalog) Lookup(name string) (*Descriptor, bool) {
	d, err := c.entries.Get(name)
	if err != nil {
		return nil, false
	}
	return d, true
}

// Names returns every command name, lower-cased and sorted
func (c *Catalog) Names() []string {
	return c.entries.List()
}

// Descriptors returns every entry sorted by name
func (c *Catalog) Descriptors() []*Descriptor {
	names := c.entries.List()
	out := make([]*Descriptor, 0, len(names))
	for _, name := range names {
		out = append(out, registry.MustGet(c.entries, name))
	}
	return out
}

// Len returns the number of commands
func (c *Catalog) Len() int {
	return c.entries.Count()
}

// BuildCatalog validates every row of table and keeps the valid ones.
//
// An invalid row is logged and skipped. A name seen twice (ignoring case)
// keeps the later row and logs a warning. A table without a single valid
// row fails with ErrNoCommandsAvailable.
func BuildCatalog(logger zerolog.Logger, table []Builtin) (*Catalog, error) {
	catalog := &Catalog{entries: registry.New[*Descriptor](registry.CaseInsensitive())}

	for _, b := range table {
		desc, err := describe(b)
		if err != nil {
			logger.Error().Err(err).Str("command", b.Name).Msg("Rejected builtin command")
			continue
		}

		replaced, err := catalog.entries.Set(desc.Name, desc)
		if err != nil {
			logger.Error().Err(err).Str("command", b.Name).Msg("Rejected builtin command")
			continue
		}
		if replaced {
			logger.Warn().Str("command", b.Name).Msg("Duplicate command name, later definition wins")
		}
	}

	if catalog.Len() == 0 {
		return nil, errors.New(errors.ErrNoCommandsAvailable, "no usable commands were registered")
	}

	logger.Debug().Int("commands", catalog.Len()).Msg("Command catalog built")
	return catalog, nil
}

func describe(b Builtin) (*Descriptor, error) {
	if b.Name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "command name cannot be empty")
	}
	if b.Handler == nil {
		return nil, errors.Newf(errors.ErrInvalidInput, "command %s has no handler", b.Name)
	}

	params := b.Params
	wantsLog := false
	if n := len(params); n > 0 && params[n-1] == ParamLogger {
		wantsLog = true
		params = params[:n-1]
	}

	if err := checkParams(b.Arity, params); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "command %s", b.Name)
	}
	if err := checkAccess(b.Arity, b.Access); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "command %s", b.Name)
	}

	return &Descriptor{
		Name:     b.Name,
		Arity:    b.Arity,
		Access:   append([]Access(nil), b.Access...),
		WantsLog: wantsLog,
		Async:    b.Async,
		Summary:  b.Summary,
		handler:  b.Handler,
	}, nil
}

func checkParams(arity Arity, params []Param) error {
	for _, p := range params {
		if p == ParamLogger {
			return fmt.Errorf("logger must be the last parameter")
		}
	}

	switch arity.Kind {
	case ArityAny:
		if len(params) != 1 || params[0] != ParamStrings {
			return fmt.Errorf("arity any requires exactly one []string parameter, got %v", params)
		}
	case ArityNone:
		if len(params) != 0 {
			return fmt.Errorf("arity none requires no parameters, got %v", params)
		}
	case ArityFixed:
		if arity.N <= 0 {
			return fmt.Errorf("fixed arity must be positive, got %d", arity.N)
		}
		if len(params) != arity.N {
			return fmt.Errorf("arity %d requires %d string parameters, got %d", arity.N, arity.N, len(params))
		}
		for _, p := range params {
			if p != ParamString {
				return fmt.Errorf("arity %d requires string parameters, got %v", arity.N, params)
			}
		}
	default:
		return fmt.Errorf("unknown arity kind %d", arity.Kind)
	}
	return nil
}

func checkAccess(arity Arity, access []Access) error {
	want := 0
	switch arity.Kind {
	case ArityAny:
		want = 1
	case ArityFixed:
		want = arity.N
	}
	if len(access) != want {
		return fmt.Errorf("arity %s requires %d access entries, got %d", arity, want, len(access))
	}
	for _, a := range access {
		if a != Read && a != Write {
			return fmt.Errorf("invalid access %v", a)
		}
	}
	return nil
}

var (
	builtinsOnce    sync.Once
	builtinsCatalog *Catalog
	builtinsErr     error
)

// Builtins returns the catalog of builtin commands, built on first use
func Builtins() (*Catalog, error) {
	builtinsOnce.Do(func() {
		builtinsCatalog, builtinsErr = BuildCatalog(logging.GetLogger("commands"), builtinTable())
	})
	return builtinsCatalog, builtinsErr
}
