package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

type sqliteKnowledge struct {
	conn *sql.DB
}

// NewSQLiteKnowledgeRepository - knowledge store backed by the sqlite
// knowledge table, one row per board state.
func NewSQLiteKnowledgeRepository(conn *sql.DB) KnowledgeRepository {
	return &sqliteKnowledge{
		conn: conn,
	}
}

func (that *sqliteKnowledge) Lookup(ctx context.Context, boardKey string) (int, error) {
	query := `SELECT move FROM knowledge WHERE board_key = ?`

	var cell int

	err := that.conn.QueryRowContext(ctx, query, boardKey).Scan(&cell)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrMoveNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("can't find stored move: %w", err)
	}

	return cell, nil
}

func (that *sqliteKnowledge) Teach(ctx context.Context, boardKey string, cell int) error {
	query := `INSERT INTO knowledge (board_key, move) VALUES (?, ?)
		ON CONFLICT(board_key) DO UPDATE SET move = excluded.move`

	_, err := that.conn.ExecContext(ctx, query, boardKey, cell)
	if err != nil {
		return fmt.Errorf("can't save taught move: %w", err)
	}

	return nil
}

func (that *sqliteKnowledge) All(ctx context.Context) (map[string]int, error) {
	query := `SELECT board_key, move FROM knowledge`

	rows, err := that.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("can't list stored moves: %w", err)
	}
	defer rows.Close()

	moves := make(map[string]int)

	for rows.Next() {
		var (
			boardKey string
			cell     int
		)

		if err = rows.Scan(&boardKey, &cell); err != nil {
			return nil, fmt.Errorf("can't scan stored move: %w", err)
		}

		moves[boardKey] = cell
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("can't iterate stored moves: %w", err)
	}

	return moves, nil
}
