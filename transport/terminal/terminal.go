package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/rubenmarcos/gato-experto/internal/entity"
	"github.com/rubenmarcos/gato-experto/internal/service"
)

const (
	msgWelcome      = "Bienvenido al juego del gato experto. Tú juegas con 'X' y comienzas."
	msgBotTurn      = "Turno de la IA..."
	msgTeachIntro   = "No conozco la mejor jugada para esta posición. Enséñame cuál debería jugar."
	msgTeachHowTo   = "Introduce el número de la casilla (1-9) en la que debería jugar la IA."
	msgTie          = "¡Empate!"
	msgHumanWins    = "¡Felicidades! Has ganado."
	msgBotWins      = "La IA ha ganado. Gracias por enseñarme."
	msgFarewell     = "Hasta luego. ¡Gracias por ayudarme a aprender!"
	msgInvalidMove  = "Jugada inválida. Intenta nuevamente."
	msgInvalidTeach = "Entrada inválida. Asegúrate de elegir una casilla disponible (1-9)."

	promptHumanMove = "Selecciona tu jugada (1-9): "
	promptTeachMove = "Movimiento correcto para la IA: "
	promptPlayAgain = "¿Quieres jugar otra partida? (s/n): "

	answerPlayAgain = "s"
	rowSeparator    = "---------"
)

// ErrInputClosed - stdin reached end of input. The reference behavior loops
// on its prompts forever; here a closed input stream ends the session cleanly
// instead of spinning.
var ErrInputClosed = errors.New("input stream closed")

type uGame interface {
	NewRound() *entity.Game

	ApplyHumanTurn(game *entity.Game, cell int) error

	SuggestBotTurn(ctx context.Context, game *entity.Game) (int, service.Advice, error)
	ApplyBotTurn(game *entity.Game, cell int) error
	TeachBotTurn(ctx context.Context, game *entity.Game, cell int) error
}

// Terminal - the console session: board rendering, prompts and the
// round/replay loop. Reader and writer are injected so tests can script a
// whole session.
type Terminal struct {
	logger *slog.Logger
	uGame  uGame

	in  *bufio.Scanner
	out io.Writer
}

func New(logger *slog.Logger, uGame uGame, in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		logger: logger.With("component", "terminal"),
		uGame:  uGame,
		in:     bufio.NewScanner(in),
		out:    out,
	}
}

// Run - plays rounds until the human declines the replay prompt or the input
// stream closes.
func (that *Terminal) Run(ctx context.Context) error {
	for {
		if err := that.playRound(ctx); err != nil {
			if errors.Is(err, ErrInputClosed) {
				fmt.Fprintln(that.out, msgFarewell)
				return nil
			}

			return fmt.Errorf("round failed: %w", err)
		}

		fmt.Fprint(that.out, promptPlayAgain)

		answer, err := that.readLine()
		if err != nil || !strings.EqualFold(strings.TrimSpace(answer), answerPlayAgain) {
			fmt.Fprintln(that.out, msgFarewell)
			return nil
		}
	}
}

func (that *Terminal) playRound(ctx context.Context) error {
	game := that.uGame.NewRound()

	fmt.Fprintln(that.out, msgWelcome)

	for {
		that.renderBoard(game)

		var err error
		if game.Turn == entity.PlayerHuman {
			err = that.humanTurn(game)
		} else {
			err = that.botTurn(ctx, game)
		}

		if err != nil {
			return err
		}

		if game.IsFinished() {
			that.renderBoard(game)
			that.announceResult(game)

			return nil
		}
	}
}

// humanTurn - prompts until the human names a free cell. There is no retry
// cap; invalid input only re-prompts.
func (that *Terminal) humanTurn(game *entity.Game) error {
	for {
		fmt.Fprint(that.out, promptHumanMove)

		line, err := that.readLine()
		if err != nil {
			return err
		}

		cell, ok := parseCell(line)
		if ok && game.IsValidMove(cell) {
			if err = that.uGame.ApplyHumanTurn(game, cell); err != nil {
				return fmt.Errorf("failed to apply human turn: %w", err)
			}

			return nil
		}

		fmt.Fprintln(that.out, msgInvalidMove)
	}
}

func (that *Terminal) botTurn(ctx context.Context, game *entity.Game) error {
	fmt.Fprintln(that.out, msgBotTurn)

	cell, advice, err := that.uGame.SuggestBotTurn(ctx, game)
	if err != nil {
		return fmt.Errorf("failed to resolve bot turn: %w", err)
	}

	if advice == service.AdviceValid {
		if err = that.uGame.ApplyBotTurn(game, cell); err != nil {
			return fmt.Errorf("failed to apply bot turn: %w", err)
		}

		return nil
	}

	if advice == service.AdviceStale {
		that.logger.Debug("stored move no longer fits the board", "board_key", game.BoardKey(), "cell", cell)
	}

	return that.teachFlow(ctx, game)
}

// teachFlow - the bot has no usable move for this position: ask the human for
// the correct cell, record it, and play it this turn.
func (that *Terminal) teachFlow(ctx context.Context, game *entity.Game) error {
	fmt.Fprintln(that.out, msgTeachIntro)
	fmt.Fprintln(that.out, msgTeachHowTo)

	for {
		fmt.Fprint(that.out, promptTeachMove)

		line, err := that.readLine()
		if err != nil {
			return err
		}

		cell, ok := parseCell(line)
		if ok && game.IsValidMove(cell) {
			if err = that.uGame.TeachBotTurn(ctx, game, cell); err != nil {
				return fmt.Errorf("failed to teach bot turn: %w", err)
			}

			return nil
		}

		fmt.Fprintln(that.out, msgInvalidTeach)
	}
}

// renderBoard - prints the grid; free cells show their 1-based number so the
// player knows what to type.
func (that *Terminal) renderBoard(game *entity.Game) {
	rows := make([]string, 0, 3)

	for start := 0; start < len(game.Board); start += 3 {
		cells := make([]string, 0, 3)

		for idx := start; idx < start+3; idx++ {
			if game.Board[idx] == entity.EmptyCell {
				cells = append(cells, strconv.Itoa(idx+1))
				continue
			}
			cells = append(cells, game.Board[idx])
		}

		rows = append(rows, strings.Join(cells, " | "))
	}

	fmt.Fprintf(that.out, "\n%s\n\n", strings.Join(rows, "\n"+rowSeparator+"\n"))
}

func (that *Terminal) announceResult(game *entity.Game) {
	switch game.Winner {
	case entity.PlayerTie:
		fmt.Fprintln(that.out, msgTie)
	case entity.PlayerHuman:
		fmt.Fprintln(that.out, msgHumanWins)
	case entity.PlayerBot:
		fmt.Fprintln(that.out, msgBotWins)
	}
}

func (that *Terminal) readLine() (string, error) {
	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("%w: %w", ErrInputClosed, err)
		}

		return "", ErrInputClosed
	}

	return that.in.Text(), nil
}

// parseCell - converts a 1-based console answer into a 0-based cell index.
func parseCell(line string) (int, bool) {
	number, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, false
	}

	return number - 1, true
}
