package repository

import (
	"context"
	"errors"
)

var ErrMoveNotFound = errors.New("no stored move for board state")

// KnowledgeRepository - the persistent mapping from board keys to the cell
// index the bot was taught to play in that position.
type KnowledgeRepository interface {
	Lookup(ctx context.Context, boardKey string) (int, error)
	Teach(ctx context.Context, boardKey string, cell int) error
	All(ctx context.Context) (map[string]int, error)
}
