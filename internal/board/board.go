package board

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Board is a square grid of marks. Cells go from Empty to a mark once and never back.
type Board struct {
	cells [][]entity.Mark
}

// New - allocates a size x size board with every cell empty.
func New(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidSize, size)
	}

	cells := make([][]entity.Mark, size)
	for i := range cells {
		cells[i] = make([]entity.Mark, size)
	}

	return &Board{cells: cells}, nil
}

// FromRows - builds a board from a square snapshot, e.g. one returned by Rows.
func FromRows(rows [][]entity.Mark) (*Board, error) {
	b, err := New(len(rows))
	if err != nil {
		return nil, err
	}

	for i, row := range rows {
		if len(row) != len(rows) {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", apperror.ErrInvalidSize, i, len(row), len(rows))
		}
		copy(b.cells[i], row)
	}

	return b, nil
}

func (that *Board) Size() int {
	return len(that.cells)
}

func (that *Board) inBounds(at entity.Coord) bool {
	return at.Row >= 0 && at.Row < len(that.cells) && at.Col >= 0 && at.Col < len(that.cells)
}

// Place - writes mark into an empty in-bounds cell. Nothing changes on error.
func (that *Board) Place(at entity.Coord, mark entity.Mark) error {
	if mark == entity.Empty {
		return apperror.ErrInvalidMark
	}

	if !that.inBounds(at) {
		return fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, at)
	}

	if that.cells[at.Row][at.Col] != entity.Empty {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, at)
	}

	that.cells[at.Row][at.Col] = mark

	return nil
}

func (that *Board) ValueAt(at entity.Coord) (entity.Mark, error) {
	if !that.inBounds(at) {
		return entity.Empty, fmt.Errorf("%w: %s", apperror.ErrOutOfBounds, at)
	}

	return that.cells[at.Row][at.Col], nil
}

// Rows - returns a copy of every row, top to bottom.
func (that *Board) Rows() [][]entity.Mark {
	rows := make([][]entity.Mark, len(that.cells))
	for i, row := range that.cells {
		rows[i] = append([]entity.Mark(nil), row...)
	}

	return rows
}

// Columns - returns every column, left to right.
func (that *Board) Columns() [][]entity.Mark {
	size := len(that.cells)

	columns := make([][]entity.Mark, size)
	for col := range columns {
		columns[col] = make([]entity.Mark, size)
		for row := range that.cells {
			columns[col][row] = that.cells[row][col]
		}
	}

	return columns
}

// Diagonals - returns the main diagonal followed by the anti-diagonal.
func (that *Board) Diagonals() [][]entity.Mark {
	size := len(that.cells)

	main := make([]entity.Mark, size)
	anti := make([]entity.Mark, size)
	for i := range that.cells {
		main[i] = that.cells[i][i]
		anti[i] = that.cells[i][size-1-i]
	}

	return [][]entity.Mark{main, anti}
}

func (that *Board) IsFull() bool {
	for _, row := range that.cells {
		for _, cell := range row {
			if cell == entity.Empty {
				return false
			}
		}
	}

	return true
}

// String renders the grid for console output.
func (that *Board) String() string {
	lines := make([]string, len(that.cells))
	for i, row := range that.cells {
		cells := make([]string, len(row))
		for j, cell := range row {
			if cell == entity.Empty {
				cells[j] = " "
				continue
			}
			cells[j] = string(cell)
		}
		lines[i] = strings.Join(cells, " | ")
	}

	separator := "\n" + strings.Repeat("-", len(that.cells)*4-3) + "\n"

	return strings.Join(lines, separator)
}
