package outcome

import (
	"slices"

	"github.com/rocketscienceinc/tictactoe-engine/internal/board"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type LineKind string

const (
	LineRow      LineKind = "row"
	LineColumn   LineKind = "column"
	LineDiagonal LineKind = "diagonal"
)

// Line is one row, column or diagonal. Diagonal 0 is the main one, 1 the anti-diagonal.
type Line struct {
	Kind  LineKind
	Index int
	Cells []entity.Coord
}

type Outcome struct {
	Status entity.Status
	Mark   entity.Mark
	Line   *Line
}

func (that Outcome) IsFinished() bool {
	return that.Status == entity.StatusWon || that.Status == entity.StatusDraw
}

// Evaluate - reports a win for the first fully matching line (rows, columns, diagonals),
// then a draw when every row is full, otherwise the game is still in progress.
func Evaluate(b *board.Board, marks []entity.Mark) Outcome {
	if mark, line, ok := findWinner(b, marks); ok {
		return Outcome{
			Status: entity.StatusWon,
			Mark:   mark,
			Line:   line,
		}
	}

	if countFullRows(b.Rows()) == b.Size() {
		return Outcome{Status: entity.StatusDraw}
	}

	return Outcome{Status: entity.StatusInProgress}
}

func findWinner(b *board.Board, marks []entity.Mark) (entity.Mark, *Line, bool) {
	size := b.Size()

	segments := make([][]entity.Mark, 0, 2*size+2)
	segments = append(segments, b.Rows()...)
	segments = append(segments, b.Columns()...)
	segments = append(segments, b.Diagonals()...)

	for i, segment := range segments {
		first := segment[0]
		if !slices.Contains(marks, first) {
			continue
		}

		if allEqual(segment, first) {
			line := lineAt(i, size)
			return first, &line, true
		}
	}

	return entity.Empty, nil, false
}

func allEqual(segment []entity.Mark, mark entity.Mark) bool {
	for _, cell := range segment {
		if cell != mark {
			return false
		}
	}

	return true
}

func countFullRows(rows [][]entity.Mark) int {
	full := 0
	for _, row := range rows {
		if !slices.Contains(row, entity.Empty) {
			full++
		}
	}

	return full
}

// lineAt maps a segment position back to board coordinates.
func lineAt(segment, size int) Line {
	cells := make([]entity.Coord, size)

	switch {
	case segment < size:
		for i := range cells {
			cells[i] = entity.Coord{Row: segment, Col: i}
		}
		return Line{Kind: LineRow, Index: segment, Cells: cells}
	case segment < 2*size:
		col := segment - size
		for i := range cells {
			cells[i] = entity.Coord{Row: i, Col: col}
		}
		return Line{Kind: LineColumn, Index: col, Cells: cells}
	default:
		diagonal := segment - 2*size
		for i := range cells {
			if diagonal == 0 {
				cells[i] = entity.Coord{Row: i, Col: i}
			} else {
				cells[i] = entity.Coord{Row: i, Col: size - 1 - i}
			}
		}
		return Line{Kind: LineDiagonal, Index: diagonal, Cells: cells}
	}
}
