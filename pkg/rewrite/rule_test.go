package rewrite_test

import (
	"testing"
	"time"

	"github.com/arthur-debert/apkren/pkg/errors"
	"github.com/arthur-debert/apkren/pkg/rewrite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenameRule(t *testing.T) {
	rule, err := rewrite.NewRenameRule(rewrite.DefaultRenameTemplate, "oldco", "newco", time.Second)
	require.NoError(t, err)

	tests := []struct {
		in   string
		want string
	}{
		{"com.oldco.game", "com.newco.game"},
		{"Lcom/oldco/game/Main;", "Lcom/newco/game/Main;"},
		{"lib_oldco_native.so", "lib_newco_native.so"},
		{"oldco.game", "oldco.game"},
		{"com.oldcorp.game", "com.oldcorp.game"},
		{"com.oldco.oldco.x", "com.newco.newco.x"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := rule.Apply(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRenameRuleEscapesValue(t *testing.T) {
	rule, err := rewrite.NewRenameRule(rewrite.DefaultRenameTemplate, "a+b", "c", time.Second)
	require.NoError(t, err)

	got, err := rule.Apply("x.a+b.y x.aab.y")
	require.NoError(t, err)
	assert.Equal(t, "x.c.y x.aab.y", got)
}

func TestRuleErrors(t *testing.T) {
	_, err := rewrite.NewRule("(unclosed", "x", 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPattern))

	_, err = rewrite.NewRenameRule("no placeholder", "v", "x", 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPattern))

	_, err = rewrite.NewRenameRule(rewrite.DefaultRenameTemplate, "", "x", 0)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestRuleGroupReplacement(t *testing.T) {
	rule, err := rewrite.NewRule(`com\.(\w+)\.app`, "org.$1.app", 0)
	require.NoError(t, err)

	got, err := rule.Apply("com.old.app")
	require.NoError(t, err)
	assert.Equal(t, "org.old.app", got)
	assert.Equal(t, `com\.(\w+)\.app`, rule.Pattern())
	assert.Equal(t, "org.$1.app", rule.Replacement())
}
