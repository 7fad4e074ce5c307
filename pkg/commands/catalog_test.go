// pkg/commands/catalog_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None
// PURPOSE: Test registration-table validation and catalog lookups

package commands

import (
	"bytes"
	"context"
	"testing"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noop(context.Context, *Env, Call) (*Result, error) { return nil, nil }

func TestBuiltinsCatalog(t *testing.T) {
	catalog, err := Builtins()
	require.NoError(t, err)

	again, err := Builtins()
	require.NoError(t, err)
	assert.Same(t, catalog, again, "builtins are built once")

	assert.Equal(t, []string{"cp", "exclude", "include", "mkdir", "mv", "patchasset", "patchlib", "rm"}, catalog.Names())

	tests := []struct {
		name   string
		arity  Arity
		access []Access
		async  bool
	}{
		{"mkdir", Fixed(1), []Access{Write}, false},
		{"MV", Fixed(2), []Access{Read, Write}, false},
		{"Cp", Fixed(2), []Access{Read, Write}, false},
		{"rm", Any(), []Access{Write}, false},
		{"include", Any(), []Access{Read}, false},
		{"EXCLUDE", Any(), []Access{Read}, false},
		{"patchlib", Any(), []Access{Write}, true},
		{"patchasset", Any(), []Access{Write}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := catalog.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.arity, d.Arity)
			assert.Equal(t, tt.access, d.Access)
			assert.Equal(t, tt.async, d.Async)
			assert.True(t, d.WantsLog)
		})
	}

	_, ok := catalog.Lookup("frobnicate")
	assert.False(t, ok)
}

func TestBuildCatalogRejectsInvalidRowsOnly(t *testing.T) {
	var logs bytes.Buffer
	logger := zerolog.New(&logs)

	table := []Builtin{
		{Name: "anybad", Arity: Any(), Access: []Access{Write}, Params: []Param{ParamString}, Handler: noop},
		{Name: "good", Arity: Any(), Access: []Access{Write}, Params: []Param{ParamStrings}, Handler: noop},
		{Name: "nonebad", Arity: None(), Params: []Param{ParamString}, Handler: noop},
		{Name: "nonegood", Arity: None(), Params: []Param{ParamLogger}, Handler: noop},
		{Name: "fixedbad", Arity: Fixed(2), Access: []Access{Read, Write}, Params: []Param{ParamString}, Handler: noop},
		{Name: "fixedtype", Arity: Fixed(1), Access: []Access{Read}, Params: []Param{ParamStrings}, Handler: noop},
		{Name: "accessbad", Arity: Fixed(1), Access: []Access{Read, Write}, Params: []Param{ParamString}, Handler: noop},
		{Name: "anyaccess", Arity: Any(), Access: []Access{Read, Write}, Params: []Param{ParamStrings}, Handler: noop},
		{Name: "loggerfirst", Arity: Fixed(1), Access: []Access{Read}, Params: []Param{ParamLogger, ParamString}, Handler: noop},
		{Name: "nohandler", Arity: None()},
		{Name: "fixedgood", Arity: Fixed(2), Access: []Access{Read, Write}, Params: []Param{ParamString, ParamString}, Handler: noop},
	}

	catalog, err := BuildCatalog(logger, table)
	require.NoError(t, err)
	assert.Equal(t, []string{"fixedgood", "good", "nonegood"}, catalog.Names())

	d, _ := catalog.Lookup("nonegood")
	assert.True(t, d.WantsLog)
	d, _ = catalog.Lookup("good")
	assert.False(t, d.WantsLog)

	assert.Contains(t, logs.String(), `"command":"anybad"`)
	assert.Contains(t, logs.String(), "Rejected builtin command")
}

func TestBuildCatalogDuplicateLaterWins(t *testing.T) {
	var logs bytes.Buffer
	table := []Builtin{
		{Name: "copy", Arity: Fixed(1), Access: []Access{Read}, Params: []Param{ParamString}, Summary: "first", Handler: noop},
		{Name: "COPY", Arity: Fixed(1), Access: []Access{Read}, Params: []Param{ParamString}, Summary: "second", Handler: noop},
	}

	catalog, err := BuildCatalog(zerolog.New(&logs), table)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())

	d, ok := catalog.Lookup("copy")
	require.True(t, ok)
	assert.Equal(t, "second", d.Summary)
	assert.Contains(t, logs.String(), "Duplicate command name")
}

func TestBuildCatalogEmpty(t *testing.T) {
	_, err := BuildCatalog(zerolog.Nop(), []Builtin{
		{Name: "bad", Arity: Any(), Access: []Access{Read}, Params: []Param{ParamString}, Handler: noop},
	})
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoCommandsAvailable))

	_, err = BuildCatalog(zerolog.Nop(), nil)
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoCommandsAvailable))
}

func TestDescriptorHelpers(t *testing.T) {
	catalog, err := Builtins()
	require.NoError(t, err)

	mv, _ := catalog.Lookup("mv")
	assert.Equal(t, Read, mv.AccessFor(0))
	assert.Equal(t, Write, mv.AccessFor(1))
	assert.Equal(t, ArgsFixed, mv.MarshalArgs([]string{"a", "b"}).Kind)

	rm, _ := catalog.Lookup("rm")
	assert.Equal(t, Write, rm.AccessFor(5))
	assert.Equal(t, ArgsVariadic, rm.MarshalArgs([]string{"a"}).Kind)
}

func TestArity(t *testing.T) {
	assert.True(t, None().Accepts(0))
	assert.False(t, None().Accepts(1))
	assert.True(t, Any().Accepts(0))
	assert.True(t, Any().Accepts(12))
	assert.True(t, Fixed(2).Accepts(2))
	assert.False(t, Fixed(2).Accepts(1))
	assert.Equal(t, "any", Any().String())
	assert.Equal(t, "2", Fixed(2).String())
	assert.True(t, Write.Strict())
	assert.False(t, Read.Strict())
}

func TestArgs(t *testing.T) {
	args := FixedArgs("a", "b")
	assert.Equal(t, "b", args.At(1))
	assert.Equal(t, "", args.At(2))
	assert.Equal(t, "", args.At(-1))
	assert.Equal(t, 2, args.Len())
}
