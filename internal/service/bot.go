package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rubenmarcos/gato-experto/internal/entity"
	"github.com/rubenmarcos/gato-experto/internal/repository"
)

// Advice classifies what the knowledge store had to say about a position.
type Advice string

const (
	// AdviceValid - a stored move exists and the target cell is still free.
	AdviceValid Advice = "valid"
	// AdviceStale - a stored move exists but no longer fits the board, for
	// example after the file was edited by hand. It must not be trusted.
	AdviceStale Advice = "stale"
	// AdviceAbsent - the position was never taught.
	AdviceAbsent Advice = "absent"
)

type BotService interface {
	SuggestTurn(ctx context.Context, game *entity.Game) (int, Advice, error)
	Teach(ctx context.Context, game *entity.Game, cell int) error
}

type botService struct {
	knowledgeRepo repository.KnowledgeRepository
}

func NewBotService(knowledgeRepo repository.KnowledgeRepository) BotService {
	return &botService{
		knowledgeRepo: knowledgeRepo,
	}
}

// SuggestTurn - looks the current position up in the knowledge store. The
// stored cell is re-checked against the board before it is trusted; stored
// data may outlive the game state it was taught for.
func (that *botService) SuggestTurn(ctx context.Context, game *entity.Game) (int, Advice, error) {
	cell, err := that.knowledgeRepo.Lookup(ctx, game.BoardKey())

	if errors.Is(err, repository.ErrMoveNotFound) {
		return 0, AdviceAbsent, nil
	}

	if err != nil {
		return 0, AdviceAbsent, fmt.Errorf("failed to look up stored move: %w", err)
	}

	if !game.IsValidMove(cell) {
		return cell, AdviceStale, nil
	}

	return cell, AdviceValid, nil
}

// Teach - records the human-supplied move for the current position.
func (that *botService) Teach(ctx context.Context, game *entity.Game, cell int) error {
	if err := that.knowledgeRepo.Teach(ctx, game.BoardKey(), cell); err != nil {
		return fmt.Errorf("failed to teach move: %w", err)
	}

	return nil
}
