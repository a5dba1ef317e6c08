package entity

import (
	"testing"

	"github.com/rocketscienceinc/tictactoe-relay/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_Evaluate(t *testing.T) {
	t.Run("Returns win for X on a completed row", func(t *testing.T) {
		// Given: a board where X owns the top row
		board := &Board{
			Cells: [BoardSize]Symbol{
				SymbolX, SymbolX, SymbolX,
				SymbolO, SymbolO, SymbolNone,
				SymbolNone, SymbolNone, SymbolNone,
			},
		}

		// When: evaluating the board
		terminal := board.Evaluate()

		// Then: X wins
		assert.Equal(t, Terminal{Outcome: OutcomeWin, Winner: SymbolX}, terminal)
	})

	t.Run("Returns win for O on a diagonal", func(t *testing.T) {
		// Given: a board where O owns the anti-diagonal
		board := &Board{
			Cells: [BoardSize]Symbol{
				SymbolX, SymbolX, SymbolO,
				SymbolX, SymbolO, SymbolNone,
				SymbolO, SymbolNone, SymbolNone,
			},
		}

		// When: evaluating the board
		terminal := board.Evaluate()

		// Then: O wins
		assert.Equal(t, Terminal{Outcome: OutcomeWin, Winner: SymbolO}, terminal)
	})

	t.Run("Returns draw on a full board without a triple", func(t *testing.T) {
		// Given: a full board with no completed triple
		board := &Board{
			Cells: [BoardSize]Symbol{
				SymbolX, SymbolO, SymbolX,
				SymbolO, SymbolX, SymbolO,
				SymbolO, SymbolX, SymbolO,
			},
		}

		// When: evaluating the board
		terminal := board.Evaluate()

		// Then: the game is a draw
		assert.Equal(t, Terminal{Outcome: OutcomeDraw}, terminal)
	})

	t.Run("Returns in progress while cells are free", func(t *testing.T) {
		// Given: a partially filled board
		board := &Board{
			Cells: [BoardSize]Symbol{
				SymbolX, SymbolO, SymbolNone,
				SymbolNone, SymbolX, SymbolNone,
				SymbolNone, SymbolNone, SymbolO,
			},
		}

		// When: evaluating the board
		terminal := board.Evaluate()

		// Then: the game continues
		assert.Equal(t, Terminal{Outcome: OutcomeInProgress}, terminal)
		assert.False(t, terminal.IsTerminal())
	})
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Successful move flips the turn", func(t *testing.T) {
		// Given: a fresh board
		board := NewBoard()

		// When: X plays the center
		terminal, err := board.ApplyMove(4, SymbolX)

		// Then: the cell is taken and O holds the turn
		require.NoError(t, err)
		assert.Equal(t, OutcomeInProgress, terminal.Outcome)
		assert.Equal(t, SymbolX, board.Cells[4])
		assert.Equal(t, SymbolO, board.Turn)
	})

	t.Run("Rejects out of range cells", func(t *testing.T) {
		for _, cell := range []int{-1, 9, 20} {
			// Given: a fresh board
			board := NewBoard()

			// When: a move targets a cell outside the grid
			_, err := board.ApplyMove(cell, SymbolX)

			// Then: the move is illegal and nothing changes
			require.ErrorIs(t, err, apperror.ErrIllegalMove)
			assert.Equal(t, NewBoard(), board)
		}
	})

	t.Run("Rejects an occupied cell", func(t *testing.T) {
		// Given: X owns cell 0
		board := NewBoard()
		_, err := board.ApplyMove(0, SymbolX)
		require.NoError(t, err)

		// When: O plays the same cell
		_, err = board.ApplyMove(0, SymbolO)

		// Then: the move is illegal and the board keeps X there
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, SymbolX, board.Cells[0])
		assert.Equal(t, SymbolO, board.Turn)
	})

	t.Run("Rejects the symbol that does not hold the turn", func(t *testing.T) {
		// Given: a fresh board where X moves first
		board := NewBoard()

		// When: O tries to move
		_, err := board.ApplyMove(1, SymbolO)

		// Then: the move is illegal
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, SymbolNone, board.Cells[1])
	})

	t.Run("Rejects moves once the board is decided", func(t *testing.T) {
		// Given: X has completed the left column
		board := NewBoard()
		for _, move := range []struct {
			cell   int
			symbol Symbol
		}{{0, SymbolX}, {1, SymbolO}, {3, SymbolX}, {2, SymbolO}, {6, SymbolX}} {
			_, err := board.ApplyMove(move.cell, move.symbol)
			require.NoError(t, err)
		}
		require.Equal(t, Terminal{Outcome: OutcomeWin, Winner: SymbolX}, board.Terminal)

		// When: O keeps playing
		_, err := board.ApplyMove(8, SymbolO)

		// Then: the board refuses
		require.ErrorIs(t, err, apperror.ErrIllegalMove)
		assert.Equal(t, SymbolNone, board.Cells[8])
	})

	t.Run("Turn parity follows the number of accepted moves", func(t *testing.T) {
		// Given: a fresh board and a legal sequence without a winner
		board := NewBoard()
		sequence := []int{0, 1, 2, 4, 3, 5, 7, 6, 8}

		for n, cell := range sequence {
			// When: the side holding the turn plays
			_, err := board.ApplyMove(cell, board.Turn)
			require.NoError(t, err)

			// Then: X holds the turn after an even count, O after an odd one
			if (n+1)%2 == 0 {
				assert.Equal(t, SymbolX, board.Turn)
			} else {
				assert.Equal(t, SymbolO, board.Turn)
			}
			assert.Equal(t, n+1, board.MovesPlayed())
		}
	})
}
