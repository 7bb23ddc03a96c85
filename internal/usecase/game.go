package usecase

import (
	"context"
	"fmt"

	"github.com/rubenmarcos/gato-experto/internal/entity"
	"github.com/rubenmarcos/gato-experto/internal/service"
)

type GameUseCase interface {
	NewRound() *entity.Game

	ApplyHumanTurn(game *entity.Game, cell int) error

	SuggestBotTurn(ctx context.Context, game *entity.Game) (int, service.Advice, error)
	ApplyBotTurn(game *entity.Game, cell int) error
	TeachBotTurn(ctx context.Context, game *entity.Game, cell int) error
}

type gameUseCase struct {
	botService service.BotService
}

func NewGameUseCase(botService service.BotService) GameUseCase {
	return &gameUseCase{
		botService: botService,
	}
}

func (that *gameUseCase) NewRound() *entity.Game {
	return entity.NewGame()
}

func (that *gameUseCase) ApplyHumanTurn(game *entity.Game, cell int) error {
	if err := game.MakeTurn(entity.PlayerHuman, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

func (that *gameUseCase) SuggestBotTurn(ctx context.Context, game *entity.Game) (int, service.Advice, error) {
	cell, advice, err := that.botService.SuggestTurn(ctx, game)
	if err != nil {
		return 0, advice, fmt.Errorf("failed to suggest turn: %w", err)
	}

	return cell, advice, nil
}

func (that *gameUseCase) ApplyBotTurn(game *entity.Game, cell int) error {
	if err := game.MakeTurn(entity.PlayerBot, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}

// TeachBotTurn - records the taught move before playing it, so the knowledge
// survives even if the round is abandoned right after.
func (that *gameUseCase) TeachBotTurn(ctx context.Context, game *entity.Game, cell int) error {
	if err := that.botService.Teach(ctx, game, cell); err != nil {
		return fmt.Errorf("failed to teach move: %w", err)
	}

	if err := game.MakeTurn(entity.PlayerBot, cell); err != nil {
		return fmt.Errorf("failed to make turn: %w", err)
	}

	return nil
}
