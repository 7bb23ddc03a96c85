package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFileKnowledge_TeachAndLookup(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "conocimiento.json")

	repo := NewFileKnowledgeRepository(newTestLogger(), path)

	t.Run("Lookup on unknown key returns ErrMoveNotFound", func(t *testing.T) {
		// When: looking up a position that was never taught
		_, err := repo.Lookup(ctx, "_________")

		// Then: the miss is reported with the sentinel error
		require.ErrorIs(t, err, ErrMoveNotFound)
	})

	t.Run("Teach then Lookup returns the taught move", func(t *testing.T) {
		// Given: a taught position
		err := repo.Teach(ctx, "____X____", 0)
		require.NoError(t, err)

		// When: looking the position up
		cell, err := repo.Lookup(ctx, "____X____")

		// Then: the taught cell comes back
		require.NoError(t, err)
		assert.Equal(t, 0, cell)

		// And: looking it up again gives the same answer
		cell, err = repo.Lookup(ctx, "____X____")
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
	})

	t.Run("Teach overwrites an existing entry", func(t *testing.T) {
		// Given: a position taught twice
		require.NoError(t, repo.Teach(ctx, "X________", 4))
		require.NoError(t, repo.Teach(ctx, "X________", 8))

		// When: looking the position up
		cell, err := repo.Lookup(ctx, "X________")

		// Then: the later teaching wins
		require.NoError(t, err)
		assert.Equal(t, 8, cell)
	})
}

func TestFileKnowledge_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "conocimiento.json")

	// Given: a repository with a few taught positions
	repo := NewFileKnowledgeRepository(newTestLogger(), path)
	require.NoError(t, repo.Teach(ctx, "____X____", 0))
	require.NoError(t, repo.Teach(ctx, "X___O____", 2))
	require.NoError(t, repo.Teach(ctx, "XO__X____", 8))

	// When: a fresh repository loads the same file
	reloaded := NewFileKnowledgeRepository(newTestLogger(), path)

	// Then: every pair survives the round trip
	moves, err := reloaded.All(ctx)
	require.NoError(t, err)

	expected := map[string]int{
		"____X____": 0,
		"X___O____": 2,
		"XO__X____": 8,
	}
	assert.Equal(t, expected, moves)
}

func TestFileKnowledge_FileFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "conocimiento.json")

	// Given: positions taught out of key order
	repo := NewFileKnowledgeRepository(newTestLogger(), path)
	require.NoError(t, repo.Teach(ctx, "X________", 4))
	require.NoError(t, repo.Teach(ctx, "____X____", 0))

	// When: reading the file as external tooling would
	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	// Then: it is indented JSON with the keys sorted
	expected, err := json.MarshalIndent(map[string]int{
		"X________": 4,
		"____X____": 0,
	}, "", "  ")
	require.NoError(t, err)

	assert.Equal(t, string(expected), string(raw))
}

func TestFileKnowledge_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("Missing file loads as empty knowledge", func(t *testing.T) {
		// Given: a path with no file behind it
		path := filepath.Join(t.TempDir(), "missing.json")

		// When: the repository loads
		repo := NewFileKnowledgeRepository(newTestLogger(), path)

		// Then: it starts empty without failing
		moves, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, moves)
	})

	t.Run("Corrupt file loads as empty knowledge", func(t *testing.T) {
		// Given: a file that is not valid JSON
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("{not json at all"), 0o644))

		// When: the repository loads
		repo := NewFileKnowledgeRepository(newTestLogger(), path)

		// Then: it starts empty without failing
		moves, err := repo.All(ctx)
		require.NoError(t, err)
		assert.Empty(t, moves)
	})

	t.Run("Teach after corrupt load repairs the file", func(t *testing.T) {
		// Given: a repository that started from a corrupt file
		path := filepath.Join(t.TempDir(), "corrupt.json")
		require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
		repo := NewFileKnowledgeRepository(newTestLogger(), path)

		// When: teaching a move
		require.NoError(t, repo.Teach(ctx, "____X____", 0))

		// Then: the file is valid JSON again
		reloaded := NewFileKnowledgeRepository(newTestLogger(), path)
		cell, err := reloaded.Lookup(ctx, "____X____")
		require.NoError(t, err)
		assert.Equal(t, 0, cell)
	})
}

func TestFileKnowledge_TeachWriteError(t *testing.T) {
	ctx := context.Background()

	// Given: a destination inside a directory that does not exist
	path := filepath.Join(t.TempDir(), "no-such-dir", "conocimiento.json")
	repo := NewFileKnowledgeRepository(newTestLogger(), path)

	// When: teaching a move
	err := repo.Teach(ctx, "____X____", 0)

	// Then: the write failure propagates instead of being swallowed
	require.Error(t, err)
}
