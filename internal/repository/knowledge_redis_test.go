package repository

import (
	"testing"

	"github.com/rubenmarcos/gato-experto/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisKnowledge_TeachAndLookup(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisKnowledgeRepository(st.Storage)

	// When: looking up a position that was never taught
	_, err := repo.Lookup(ctx, "_________")

	// Then: the miss is reported with the sentinel error
	require.ErrorIs(t, err, ErrMoveNotFound)

	// Given: a taught position
	require.NoError(t, repo.Teach(ctx, "____X____", 0))

	// When: looking the position up
	cell, err := repo.Lookup(ctx, "____X____")

	// Then: the taught cell comes back
	require.NoError(t, err)
	assert.Equal(t, 0, cell)

	// And: teaching again overwrites the entry
	require.NoError(t, repo.Teach(ctx, "____X____", 6))

	cell, err = repo.Lookup(ctx, "____X____")
	require.NoError(t, err)
	assert.Equal(t, 6, cell)
}

func TestRedisKnowledge_All(t *testing.T) {
	ctx, st := suite.New(t)

	repo := NewRedisKnowledgeRepository(st.Storage)

	// Given: a few taught positions
	require.NoError(t, repo.Teach(ctx, "____X____", 0))
	require.NoError(t, repo.Teach(ctx, "X___O____", 2))

	// When: listing the whole store
	moves, err := repo.All(ctx)

	// Then: every pair is present
	require.NoError(t, err)
	assert.Equal(t, map[string]int{
		"____X____": 0,
		"X___O____": 2,
	}, moves)
}
