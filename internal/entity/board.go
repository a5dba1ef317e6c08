package entity

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
)

type Symbol string

const (
	SymbolNone Symbol = ""
	SymbolX    Symbol = "X"
	SymbolO    Symbol = "O"
)

// Opponent returns the symbol that moves after this one.
func (that Symbol) Opponent() Symbol {
	switch that {
	case SymbolX:
		return SymbolO
	case SymbolO:
		return SymbolX
	default:
		return SymbolNone
	}
}

func (that Symbol) IsValid() bool {
	return that == SymbolX || that == SymbolO
}

type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWin        Outcome = "win"
	OutcomeDraw       Outcome = "draw"
)

// Terminal is the evaluated state of a board. Winner is set only for OutcomeWin.
type Terminal struct {
	Outcome Outcome `json:"outcome"`
	Winner  Symbol  `json:"winner,omitempty"`
}

func (that Terminal) IsTerminal() bool {
	return that.Outcome == OutcomeWin || that.Outcome == OutcomeDraw
}

const BoardSize = 9

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board is a 3x3 grid indexed 0-8 in row-major order.
type Board struct {
	Cells    [BoardSize]Symbol `json:"cells"`
	Turn     Symbol            `json:"turn"`
	Terminal Terminal          `json:"terminal"`
}

func NewBoard() *Board {
	return &Board{
		Turn:     SymbolX,
		Terminal: Terminal{Outcome: OutcomeInProgress},
	}
}

// ValidateCell checks the index and occupancy of a cell without looking at whose turn it is.
func (that *Board) ValidateCell(cell int) error {
	if cell < 0 || cell >= BoardSize {
		return fmt.Errorf("%w: cell %d is out of range", apperror.ErrIllegalMove, cell)
	}

	if that.Cells[cell] != SymbolNone {
		return fmt.Errorf("%w: cell %d is already occupied", apperror.ErrIllegalMove, cell)
	}

	return nil
}

// ApplyMove places symbol on cell, flips the turn and re-evaluates the terminal state.
// The board is left untouched when the move is rejected.
func (that *Board) ApplyMove(cell int, symbol Symbol) (Terminal, error) {
	if that.Terminal.IsTerminal() {
		return that.Terminal, fmt.Errorf("%w: board is already decided", apperror.ErrIllegalMove)
	}

	if err := that.ValidateCell(cell); err != nil {
		return that.Terminal, err
	}

	if !symbol.IsValid() || symbol != that.Turn {
		return that.Terminal, fmt.Errorf("%w: symbol %q does not hold the turn", apperror.ErrIllegalMove, symbol)
	}

	that.Cells[cell] = symbol
	that.Turn = symbol.Opponent()
	that.Terminal = that.Evaluate()

	return that.Terminal, nil
}

// Evaluate scans the winning triples, then checks for a full board.
func (that *Board) Evaluate() Terminal {
	for _, combo := range WinCombos {
		a, b, c := that.Cells[combo[0]], that.Cells[combo[1]], that.Cells[combo[2]]
		if a != SymbolNone && a == b && b == c {
			return Terminal{Outcome: OutcomeWin, Winner: a}
		}
	}

	// the game continues until every cell is taken
	for _, cell := range that.Cells {
		if cell == SymbolNone {
			return Terminal{Outcome: OutcomeInProgress}
		}
	}

	return Terminal{Outcome: OutcomeDraw}
}

func (that *Board) MovesPlayed() int {
	played := 0
	for _, cell := range that.Cells {
		if cell != SymbolNone {
			played++
		}
	}

	return played
}
