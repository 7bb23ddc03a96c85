package entity

import (
	"fmt"
	"strings"

	"github.com/rubenmarcos/gato-experto/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerHuman = "X"
	PlayerBot   = "O"
	PlayerTie   = "-"

	EmptyCell = ""

	// emptyKeyCell replaces EmptyCell in board keys so every key is exactly 9 characters.
	emptyKeyCell = "_"
)

var WinCombos = [][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

type Game struct {
	Board  [9]string `json:"board"`
	Turn   string    `json:"player_turn"`
	Winner string    `json:"winner"`
	Status string    `json:"status"`
}

// NewGame - creates a fresh round. The human plays X and always starts.
func NewGame() *Game {
	return &Game{
		Board:  [9]string{EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell, EmptyCell},
		Turn:   PlayerHuman,
		Status: StatusOngoing,
	}
}

// DetermineGameResult - scans the win combos (rows, columns, diagonals, in that
// order) and returns the winning mark, PlayerTie on a full board, or EmptyCell
// while the game continues.
func (that *Game) DetermineGameResult() string {
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	// the game will continue until all the squares are full
	for _, cell := range that.Board {
		if cell == EmptyCell {
			return EmptyCell
		}
	}

	return PlayerTie
}

func (that *Game) UpdateGameState() {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins
	case PlayerHuman, PlayerBot:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// tie
	case PlayerTie:
		that.Winner = PlayerTie
		that.Status = StatusFinished
		that.Turn = EmptyCell
	// game continue
	default:
		that.Status = StatusOngoing
	}
}

func (that *Game) MakeTurn(playerMark string, cell int) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if cell < 0 || cell >= len(that.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[cell] != EmptyCell {
		return apperror.ErrCellOccupied
	}

	that.Board[cell] = playerMark

	// It's simple logic for a game changing move
	if that.Turn == PlayerHuman {
		that.Turn = PlayerBot
	} else {
		that.Turn = PlayerHuman
	}

	that.UpdateGameState()

	return nil
}

// IsValidMove - reports whether cell is on the board and still empty.
func (that *Game) IsValidMove(cell int) bool {
	return cell >= 0 && cell < len(that.Board) && that.Board[cell] == EmptyCell
}

// BoardKey - serializes the board into the knowledge store key: the 9 cell
// marks in index order, empty cells as underscores. Two boards share a key
// only if every cell matches.
func (that *Game) BoardKey() string {
	var builder strings.Builder

	for _, mark := range that.Board {
		if mark == EmptyCell {
			builder.WriteString(emptyKeyCell)
			continue
		}
		builder.WriteString(mark)
	}

	return builder.String()
}

// AvailableMoves - returns the empty cell indices in ascending order.
func (that *Game) AvailableMoves() []int {
	moves := make([]int, 0, len(that.Board))
	for idx, mark := range that.Board {
		if mark == EmptyCell {
			moves = append(moves, idx)
		}
	}

	return moves
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}
