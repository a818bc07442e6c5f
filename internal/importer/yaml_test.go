package importer

import (
	"path/filepath"
	"testing"
	"time"

	"dayflow/internal/day"
	"dayflow/internal/model"
	"dayflow/internal/repo"
	"dayflow/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) *repo.Repository {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "dayflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return repo.New(s)
}

func TestImport(t *testing.T) {
	r := newTestRepo(t)
	d := day.Of(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local))

	yamlStr := `
tasks:
  - title: "Write report"
    subtasks:
      - "Gather sources"
      - text: "Draft intro"
        checked: true
  - title: "Clean desk"
`
	count, err := Import(r, d, yamlStr)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	listed, err := r.ListForDay(d)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	// Newest first, so "Clean desk" leads.
	assert.Equal(t, "Clean desk", listed[0].Title)
	assert.Empty(t, listed[0].Subtasks)

	assert.Equal(t, "Write report", listed[1].Title)
	require.Len(t, listed[1].Subtasks, 2)
	assert.Equal(t, model.Subtask{Text: "Gather sources"}, listed[1].Subtasks[0])
	assert.Equal(t, model.Subtask{Text: "Draft intro", Checked: true}, listed[1].Subtasks[1])
}

func TestImportRejectsEmptyDocument(t *testing.T) {
	r := newTestRepo(t)

	_, err := Import(r, day.Today(), "tasks: []")
	assert.Error(t, err)
}

func TestImportRejectsMissingTitle(t *testing.T) {
	r := newTestRepo(t)

	_, err := Import(r, day.Today(), "tasks:\n  - subtasks: [\"a\"]")
	assert.Error(t, err)
}

func TestImportRejectsInvalidYAML(t *testing.T) {
	r := newTestRepo(t)

	_, err := Import(r, day.Today(), "tasks: [unclosed")
	assert.Error(t, err)
}

func TestExportRoundTrip(t *testing.T) {
	r := newTestRepo(t)
	d := day.Of(time.Date(2024, time.June, 10, 0, 0, 0, 0, time.Local))

	task := model.Task{
		Title: "Write report",
		Subtasks: []model.Subtask{
			{Text: "Gather sources"},
			{Text: "Draft intro", Checked: true},
		},
	}

	out, err := Export(task)
	require.NoError(t, err)

	count, err := Import(r, d, out)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	listed, err := r.ListForDay(d)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, task.Title, listed[0].Title)
	assert.Equal(t, task.Subtasks, listed[0].Subtasks)
}
