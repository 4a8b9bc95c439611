package snapshot

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verdix/verdix/internal/models"
	"github.com/verdix/verdix/internal/store"
)

func TestExportLoad(t *testing.T) {
	ctx := context.Background()
	schema := store.Schema{
		"Scores": {"Team Name", "Problem Sol-Fit", "Comment"},
		"Config": models.TrackColumns,
	}
	source := store.NewMemoryStore(schema)
	require.NoError(t, source.Append(ctx, "Scores", []interface{}{"Rocket Labs", 5, "Great, \"really\" great"}))
	require.NoError(t, source.Append(ctx, "Scores", []interface{}{"GreenLeaf", 3, "multi\nline"}))

	var buf bytes.Buffer
	require.NoError(t, Export(ctx, source, schema, &buf))

	loaded, err := Load(ctx, &buf, schema)
	require.NoError(t, err)

	rows, err := loaded.ReadAll(ctx, "Scores")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Great, \"really\" great", rows[0].Get("Comment"))
	assert.Equal(t, "multi\nline", rows[1].Get("Comment"))
	assert.Equal(t, "3", rows[1].Get("Problem Sol-Fit"))

	rows, err = loaded.ReadAll(ctx, "Config")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestLoadMatchesColumnsByHeader(t *testing.T) {
	ctx := context.Background()
	exported := store.Schema{"Scores": {"Comment", "Team Name"}}
	source := store.NewMemoryStore(exported)
	require.NoError(t, source.Append(ctx, "Scores", []interface{}{"ok", "Rocket Labs"}))

	var buf bytes.Buffer
	require.NoError(t, Export(ctx, source, exported, &buf))

	loaded, err := Load(ctx, &buf, store.Schema{"Scores": {"Team Name", "A", "Comment"}})
	require.NoError(t, err)
	rows, err := loaded.ReadAll(ctx, "Scores")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.Row{"Team Name": "Rocket Labs", "A": "", "Comment": "ok"}, rows[0])
}
