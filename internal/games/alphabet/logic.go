package alphabet

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

// Size is the board dimension.
const Size = 4

// Letter is a tile rank. The displayed letter and the merge rank are the
// same value: A = 1, B = 2, and so on. Zero is an empty cell.
type Letter uint8

const (
	Empty   Letter = 0
	LetterA Letter = 1
)

// Value is the tile's score value, 2^rank. Empty cells are worth nothing.
func (l Letter) Value() int {
	if l == Empty {
		return 0
	}
	return 1 << l
}

func (l Letter) String() string {
	switch {
	case l == Empty:
		return ""
	case l <= 26:
		return string(rune('A' + l - 1))
	default:
		return fmt.Sprintf("Z%d", l-26)
	}
}

// Cell is one board position. Moved marks a tile produced by a merge in the
// most recent move and only drives the slide highlight.
type Cell struct {
	Letter Letter
	Moved  bool
}

// Empty reports whether the cell holds no tile.
func (c Cell) Empty() bool {
	return c.Letter == Empty
}

// Grid is the Size x Size board, indexed [row][col].
type Grid [Size][Size]Cell

// Line is one row or column, ordered from the edge tiles slide towards.
type Line [Size]Cell

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Valid reports whether d is one of the four move directions.
func (d Direction) Valid() bool {
	return d >= DirUp && d <= DirRight
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection maps a key or direction name to a Direction.
// Unrecognised input reports false.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToLower(s) {
	case "up", "arrowup", "w", "k":
		return DirUp, true
	case "down", "arrowdown", "s", "j":
		return DirDown, true
	case "left", "arrowleft", "a", "h":
		return DirLeft, true
	case "right", "arrowright", "d", "l":
		return DirRight, true
	default:
		return 0, false
	}
}

// DirectionForAction maps a platform action to a move direction. The four
// directional actions are named like directions; every other action name
// fails to parse.
func DirectionForAction(a core.Action) (Direction, bool) {
	return ParseDirection(a.String())
}

// MoveResult is the outcome of ApplyMove.
type MoveResult struct {
	Grid  Grid
	Score int  // Score gained from merges
	Moved bool // Whether any tile changed position or rank
}

// NewGame returns an empty board seeded with two A tiles.
func NewGame(rng *rand.Rand) Grid {
	var g Grid
	g, _, _ = SpawnTile(g, rng)
	g, _, _ = SpawnTile(g, rng)
	return g
}

// SpawnTile places an A tile on a uniformly chosen empty cell.
// A full board is returned unchanged with ok == false.
func SpawnTile(g Grid, rng *rand.Rand) (Grid, core.Coord, bool) {
	empty := EmptyCells(g)
	if len(empty) == 0 {
		return g, core.Coord{}, false
	}

	pos := empty[rng.Intn(len(empty))]
	g[pos.Y][pos.X] = Cell{Letter: LetterA}
	return g, pos, true
}

// SlideAndMerge compacts a line towards index 0 and merges equal neighbours.
// Each tile merges at most once per call: the pair scan runs a single pass
// and the merged tile is never compared again.
func SlideAndMerge(line Line) (Line, int) {
	tiles := make([]Cell, 0, Size)
	for _, c := range line {
		if !c.Empty() {
			tiles = append(tiles, Cell{Letter: c.Letter})
		}
	}

	score := 0
	for i := 0; i < len(tiles)-1; i++ {
		if tiles[i].Empty() || tiles[i].Letter != tiles[i+1].Letter {
			continue
		}
		score += tiles[i].Letter.Value()
		tiles[i] = Cell{Letter: tiles[i].Letter + 1, Moved: true}
		tiles[i+1] = Cell{}
	}

	var out Line
	w := 0
	for _, c := range tiles {
		if c.Empty() {
			continue
		}
		out[w] = c
		w++
	}
	return out, score
}

// lineCoords lists the board positions of line i, leading edge first.
func lineCoords(dir Direction, i int) [Size]core.Coord {
	var cs [Size]core.Coord
	for k := range Size {
		switch dir {
		case DirLeft:
			cs[k] = core.Coord{X: k, Y: i}
		case DirRight:
			cs[k] = core.Coord{X: Size - 1 - k, Y: i}
		case DirUp:
			cs[k] = core.Coord{X: i, Y: k}
		case DirDown:
			cs[k] = core.Coord{X: i, Y: Size - 1 - k}
		}
	}
	return cs
}

func sameLetters(a, b Line) bool {
	for i := range Size {
		if a[i].Letter != b[i].Letter {
			return false
		}
	}
	return true
}

// ApplyMove slides every row or column in the given direction.
// The input grid is never modified. When nothing moves, or the direction is
// invalid, the original grid comes back untouched with Moved == false.
func ApplyMove(g Grid, dir Direction) MoveResult {
	if !dir.Valid() {
		return MoveResult{Grid: g}
	}

	var next Grid
	total := 0
	moved := false

	for i := range Size {
		coords := lineCoords(dir, i)

		var line Line
		for k, c := range coords {
			line[k] = g[c.Y][c.X]
		}

		slid, score := SlideAndMerge(line)
		total += score
		if !sameLetters(line, slid) {
			moved = true
		}

		for k, c := range coords {
			next[c.Y][c.X] = slid[k]
		}
	}

	if !moved {
		return MoveResult{Grid: g}
	}
	return MoveResult{Grid: next, Score: total, Moved: true}
}

// EmptyCells returns the coordinates of all empty cells in row-major order.
func EmptyCells(g Grid) []core.Coord {
	var cells []core.Coord
	for y := range Size {
		for x := range Size {
			if g[y][x].Empty() {
				cells = append(cells, core.Coord{X: x, Y: y})
			}
		}
	}
	return cells
}

// HasPossibleMerge returns true if any adjacent tiles share a rank.
func HasPossibleMerge(g Grid) bool {
	for y := range Size {
		for x := range Size {
			l := g[y][x].Letter
			if l == Empty {
				continue
			}
			if x < Size-1 && g[y][x+1].Letter == l {
				return true
			}
			if y < Size-1 && g[y+1][x].Letter == l {
				return true
			}
		}
	}
	return false
}

// IsGameOver reports whether the board is full and no merge is available.
func IsGameOver(g Grid) bool {
	return len(EmptyCells(g)) == 0 && !HasPossibleMerge(g)
}

// TileSum is the total value of all tiles on the board.
func TileSum(g Grid) int {
	sum := 0
	for y := range Size {
		for x := range Size {
			sum += g[y][x].Letter.Value()
		}
	}
	return sum
}

// MaxLetter returns the highest rank on the board.
func MaxLetter(g Grid) Letter {
	var best Letter
	for y := range Size {
		for x := range Size {
			if g[y][x].Letter > best {
				best = g[y][x].Letter
			}
		}
	}
	return best
}

// ParseGrid builds a grid from rows of letters, '.' or '_' meaning empty.
// Used by tests and replay fixtures.
func ParseGrid(rows ...string) (Grid, error) {
	var g Grid
	if len(rows) != Size {
		return g, fmt.Errorf("alphabet: expected %d rows, got %d", Size, len(rows))
	}
	for y, row := range rows {
		if len(row) != Size {
			return g, fmt.Errorf("alphabet: row %d has %d cells, want %d", y, len(row), Size)
		}
		for x, ch := range row {
			switch {
			case ch == '.' || ch == '_':
			case ch >= 'A' && ch <= 'Z':
				g[y][x] = Cell{Letter: Letter(ch-'A') + 1}
			default:
				return g, fmt.Errorf("alphabet: invalid cell %q at (%d, %d)", ch, x, y)
			}
		}
	}
	return g, nil
}

// Rows renders the grid letters in the ParseGrid format.
func (g Grid) Rows() []string {
	rows := make([]string, Size)
	for y := range Size {
		var b strings.Builder
		for x := range Size {
			if g[y][x].Empty() {
				b.WriteByte('.')
			} else {
				b.WriteString(g[y][x].Letter.String())
			}
		}
		rows[y] = b.String()
	}
	return rows
}
