package commands_test

import (
	"testing"

	"github.com/arthur-debert/apkren/pkg/commands"
	"github.com/stretchr/testify/assert"
)

func TestResultAppendKeepsDuplicates(t *testing.T) {
	r := &commands.Result{}
	r.Append(&commands.Result{Inclusions: []string{"lib"}})
	r.Append(&commands.Result{Inclusions: []string{"lib"}, Exclusions: []string{"kotlin"}})
	r.Append(nil)

	assert.Equal(t, []string{"lib", "lib"}, r.Inclusions)
	assert.Equal(t, []string{"kotlin"}, r.Exclusions)
	assert.False(t, r.Empty())
	assert.True(t, (&commands.Result{}).Empty())
}

func TestResultFilter(t *testing.T) {
	paths := []string{
		"/pkg/smali/com/old/A.smali",
		"/pkg/smali/kotlin/B.smali",
		"/pkg/smali_classes2/com/old/C.smali",
		"/pkg/res/values/strings.xml",
	}

	tests := []struct {
		name   string
		result *commands.Result
		want   []string
	}{
		{
			name:   "nil result keeps everything",
			result: nil,
			want:   paths,
		},
		{
			name:   "exclusions drop matches",
			result: &commands.Result{Exclusions: []string{"kotlin"}},
			want:   []string{paths[0], paths[2], paths[3]},
		},
		{
			name:   "inclusions restrict",
			result: &commands.Result{Inclusions: []string{"/smali"}},
			want:   []string{paths[0], paths[1], paths[2]},
		},
		{
			name:   "exclusions win over inclusions",
			result: &commands.Result{Inclusions: []string{"/smali"}, Exclusions: []string{"classes2", "kotlin"}},
			want:   []string{paths[0]},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Filter(paths))
		})
	}
}
