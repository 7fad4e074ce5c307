package progress_test

import (
	"testing"

	"github.com/arthur-debert/apkren/pkg/progress"
	"github.com/stretchr/testify/assert"
)

func TestHelpersToleratesNil(t *testing.T) {
	assert.NotPanics(t, func() {
		progress.Title(nil, "title")
		progress.Message(nil, "message")
	})
}

func TestRecorder(t *testing.T) {
	rec := &progress.Recorder{}
	progress.Title(rec, "Renaming OBB internal")
	progress.Message(rec, "catalog.json")
	progress.Message(rec, "settings.json")

	assert.Equal(t, []progress.Update{
		{Kind: progress.KindTitle, Data: "Renaming OBB internal"},
		{Kind: progress.KindContent, Data: "catalog.json"},
		{Kind: progress.KindContent, Data: "settings.json"},
	}, rec.Updates())
	assert.Equal(t, []string{"catalog.json", "settings.json"}, rec.Messages())
}
