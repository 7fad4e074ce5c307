package commands

import (
	"context"

	"github.com/arthur-debert/apkren/pkg/filesystem"
	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/rs/zerolog"
)

// Param is the declared type of one handler parameter
type Param int

const (
	// ParamString is a single path argument
	ParamString Param = iota + 1
	// ParamStrings collects every argument of an Any command
	ParamStrings
	// ParamLogger is the logging sink; only valid as the last parameter
	ParamLogger
)

func (p Param) String() string {
	switch p {
	case ParamString:
		return "string"
	case ParamStrings:
		return "[]string"
	case ParamLogger:
		return "logger"
	default:
		return "unknown"
	}
}

// ArgsKind tags how arguments reach a handler
type ArgsKind int

const (
	ArgsFixed ArgsKind = iota
	ArgsVariadic
)

// Args holds sandboxed arguments. Fixed commands receive exactly their
// declared count; Any commands receive every argument as one collection.
type Args struct {
	Kind   ArgsKind
	Values []string
}

// FixedArgs tags values as positional arguments
func FixedArgs(values ...string) Args {
	return Args{Kind: ArgsFixed, Values: values}
}

// VariadicArgs tags values as a single collection argument
func VariadicArgs(values ...string) Args {
	return Args{Kind: ArgsVariadic, Values: values}
}

// At returns the i-th positional argument, or "" when out of range
func (a Args) At(i int) string {
	if i < 0 || i >= len(a.Values) {
		return ""
	}
	return a.Values[i]
}

// Len returns the number of argument values
func (a Args) Len() int {
	return len(a.Values)
}

// Call is one resolved, substituted and sandboxed command invocation
type Call struct {
	Name string
	Line int
	Args Args
	// Log is the dispatcher's logging sink when the command asks for one,
	// and a disabled logger otherwise.
	Log zerolog.Logger
}

// LibraryOptions configures the native-library rewrite commands
type LibraryOptions struct {
	ScratchSuffix string
	// Extensions selects files when a directory is given
	Extensions []string
	// Skip lists file names never rewritten
	Skip []string
}

// AssetOptions configures the archive rewrite commands
type AssetOptions struct {
	CatalogMarker string
	ExtraEntries  []string
}

// Env carries the collaborators handlers work through
type Env struct {
	FS       filesystem.FS
	Progress progress.Reporter
	// Rename is the rule the rewrite commands apply; nil disables them
	Rename  *rewrite.Rule
	Library LibraryOptions
	Assets  AssetOptions
}

// Handler runs one command. It may return a partial Result which the
// dispatcher merges into the stage result.
type Handler func(ctx context.Context, env *Env, call Call) (*Result, error)

// Builtin is one row of the registration table
type Builtin struct {
	Name string
	// Arity is the argument-count contract
	Arity Arity
	// Access has one entry per fixed argument, or exactly one entry shared
	// by every argument of an Any command
	Access []Access
	// Params is the handler's declared parameter list, optionally ending
	// with ParamLogger
	Params  []Param
	Async   bool
	Summary string
	Handler Handler
}

// Descriptor is a validated catalog entry
type Descriptor struct {
	Name     string
	Arity    Arity
	Access   []Access
	WantsLog bool
	Async    bool
	Summary  string
	handler  Handler
}

// AccessFor returns the access capability of argument i
func (d *Descriptor) AccessFor(i int) Access {
	if d.Arity.Kind == ArityAny {
		return d.Access[0]
	}
	return d.Access[i]
}

// Invoke runs the bound handler
func (d *Descriptor) Invoke(ctx context.Context, env *Env, call Call) (*Result, error) {
	return d.handler(ctx, env, call)
}

// MarshalArgs tags sandboxed values the way the handler expects them
func (d *Descriptor) MarshalArgs(values []string) Args {
	if d.Arity.Kind == ArityAny {
		return VariadicArgs(values...)
	}
	return FixedArgs(values...)
}
