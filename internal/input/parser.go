package input

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const Separator = ","

// Parser turns free-form "row,col" text into a board coordinate.
// Base is the number the first row and column are written as (0 or 1).
type Parser struct {
	Base int
}

func NewParser(base int) Parser {
	return Parser{Base: base}
}

// Sanitize - drops everything but digits and the separator.
func Sanitize(raw string) string {
	var sb strings.Builder
	sb.Grow(len(raw))

	for _, r := range raw {
		if (r >= '0' && r <= '9') || string(r) == Separator {
			sb.WriteRune(r)
		}
	}

	return sb.String()
}

func (that Parser) Parse(raw string) (entity.Coord, error) {
	parts := strings.Split(Sanitize(raw), Separator)
	if len(parts) != 2 {
		return entity.Coord{}, fmt.Errorf("%w: want 2 values, got %d in %q", apperror.ErrMalformedInput, len(parts), raw)
	}

	values := make([]int, len(parts))
	for i, part := range parts {
		value, err := strconv.Atoi(part)
		if err != nil {
			return entity.Coord{}, fmt.Errorf("%w: %q is not an integer", apperror.ErrMalformedInput, part)
		}
		values[i] = value
	}

	return entity.Coord{
		Row: values[0] - that.Base,
		Col: values[1] - that.Base,
	}, nil
}
