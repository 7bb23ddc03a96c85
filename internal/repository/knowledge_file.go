package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

// fileKnowledge keeps the whole mapping in memory and mirrors it to a single
// JSON file. The file is indented and key-sorted so it stays hand-editable.
type fileKnowledge struct {
	logger *slog.Logger
	path   string
	moves  map[string]int
}

// NewFileKnowledgeRepository - loads the knowledge file at path. A missing or
// corrupt file means the bot simply knows nothing yet; that is never an error.
func NewFileKnowledgeRepository(logger *slog.Logger, path string) KnowledgeRepository {
	that := &fileKnowledge{
		logger: logger.With("component", "knowledge-file"),
		path:   path,
		moves:  make(map[string]int),
	}

	that.load()

	return that
}

func (that *fileKnowledge) load() {
	raw, err := os.ReadFile(that.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			that.logger.Warn("could not read knowledge file, starting empty", "path", that.path, "error", err)
		}
		return
	}

	moves := make(map[string]int)
	if err = json.Unmarshal(raw, &moves); err != nil {
		that.logger.Warn("knowledge file is corrupt, starting empty", "path", that.path, "error", err)
		return
	}

	that.moves = moves
}

func (that *fileKnowledge) Lookup(_ context.Context, boardKey string) (int, error) {
	cell, ok := that.moves[boardKey]
	if !ok {
		return 0, ErrMoveNotFound
	}

	return cell, nil
}

// Teach - records the move and rewrites the whole file. Teach events are rare
// (one per novel position), so the full rewrite is fine; a write failure
// propagates because silently losing a taught move would be worse.
func (that *fileKnowledge) Teach(_ context.Context, boardKey string, cell int) error {
	that.moves[boardKey] = cell

	if err := that.save(); err != nil {
		return fmt.Errorf("failed to persist taught move: %w", err)
	}

	return nil
}

func (that *fileKnowledge) All(_ context.Context) (map[string]int, error) {
	moves := make(map[string]int, len(that.moves))
	for key, cell := range that.moves {
		moves[key] = cell
	}

	return moves, nil
}

func (that *fileKnowledge) save() error {
	// MarshalIndent sorts map keys, which keeps diffs of the file stable.
	raw, err := json.MarshalIndent(that.moves, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal knowledge: %w", err)
	}

	if err = os.WriteFile(that.path, raw, 0o644); err != nil {
		return fmt.Errorf("could not write knowledge file: %w", err)
	}

	return nil
}
