package alphabet

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/vovakirdan/blank-arcade/internal/core"
)

func mustGrid(t *testing.T, rows ...string) Grid {
	t.Helper()
	g, err := ParseGrid(rows...)
	if err != nil {
		t.Fatalf("ParseGrid: %v", err)
	}
	return g
}

func lineOf(t *testing.T, s string) Line {
	t.Helper()
	g := mustGrid(t, s, "....", "....", "....")
	return Line(g[0])
}

func lineString(l Line) string {
	var g Grid
	g[0] = l
	return g.Rows()[0]
}

func TestLetterValue(t *testing.T) {
	tests := []struct {
		letter Letter
		str    string
		value  int
	}{
		{Empty, "", 0},
		{LetterA, "A", 2},
		{LetterA + 1, "B", 4},
		{LetterA + 10, "K", 2048},
		{26, "Z", 1 << 26},
	}

	for _, tt := range tests {
		if got := tt.letter.String(); got != tt.str {
			t.Errorf("Letter(%d).String() = %q, want %q", tt.letter, got, tt.str)
		}
		if got := tt.letter.Value(); got != tt.value {
			t.Errorf("Letter(%d).Value() = %d, want %d", tt.letter, got, tt.value)
		}
	}
}

func TestSlideAndMerge(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		score    int
	}{
		{"simple merge", "AA..", "B...", 2},
		{"merge with trailing tile", "AAA.", "BA..", 2},
		{"double merge", "AAAA", "BB..", 4},
		{"mixed pairs", "AABB", "BC..", 6},
		{"no merge possible", "ABCD", "ABCD", 0},
		{"slide with gap", "..AA", "B...", 2},
		{"slide with multiple gaps", "A..A", "B...", 2},
		{"fresh merge does not merge again", "BAA.", "BB..", 2},
		{"no change needed", "BA..", "BA..", 0},
		{"empty row", "....", "....", 0},
		{"single tile", ".C..", "C...", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, score := SlideAndMerge(lineOf(t, tt.input))
			if got := lineString(result); got != tt.expected {
				t.Errorf("SlideAndMerge(%s) = %s, want %s", tt.input, got, tt.expected)
			}
			if score != tt.score {
				t.Errorf("SlideAndMerge(%s) score = %d, want %d", tt.input, score, tt.score)
			}
		})
	}
}

func TestSlideAndMergeMarksOnlyMergedTiles(t *testing.T) {
	result, _ := SlideAndMerge(lineOf(t, "AAB."))
	want := Line{{Letter: 2, Moved: true}, {Letter: 2}, {}, {}}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("SlideAndMerge flags mismatch (-want +got):\n%s", diff)
	}
}

func TestOneMergePerTilePerMove(t *testing.T) {
	g := mustGrid(t, "AAAA", "....", "....", "....")

	res := ApplyMove(g, DirLeft)

	if got := res.Grid.Rows()[0]; got != "BB.." {
		t.Errorf("row 0 = %s, want BB.. (one merge per tile per move)", got)
	}
	if res.Score != 4 {
		t.Errorf("score = %d, want 4", res.Score)
	}
}

func TestApplyMoveDirections(t *testing.T) {
	start := []string{
		"AA..",
		"B.B.",
		"AAAA",
		"...A",
	}

	tests := []struct {
		dir   Direction
		want  []string
		score int
	}{
		{DirLeft, []string{"B...", "C...", "BB..", "A..."}, 2 + 4 + 4},
		{DirRight, []string{"...B", "...C", "..BB", "...A"}, 2 + 4 + 4},
		{DirUp, []string{"ABBB", "B.A.", "A...", "...."}, 2 + 2},
		{DirDown, []string{"....", "A...", "B.B.", "ABAB"}, 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			res := ApplyMove(mustGrid(t, start...), tt.dir)
			if diff := cmp.Diff(tt.want, res.Grid.Rows()); diff != "" {
				t.Errorf("ApplyMove(%s) mismatch (-want +got):\n%s", tt.dir, diff)
			}
			if !res.Moved {
				t.Errorf("ApplyMove(%s) should report a change", tt.dir)
			}
			if res.Score != tt.score {
				t.Errorf("ApplyMove(%s) score = %d, want %d", tt.dir, res.Score, tt.score)
			}
		})
	}
}

func TestApplyMoveNoOpKeepsGrid(t *testing.T) {
	g := mustGrid(t,
		"BA..",
		"C...",
		"....",
		"A...",
	)
	// Flags left over from the previous move must survive a no-op untouched.
	g[0][0].Moved = true

	res := ApplyMove(g, DirLeft)

	if res.Moved {
		t.Error("ApplyMove should not report a change for left-aligned tiles")
	}
	if res.Score != 0 {
		t.Errorf("no-op score = %d, want 0", res.Score)
	}
	if diff := cmp.Diff(g, res.Grid); diff != "" {
		t.Errorf("no-op move changed the grid (-want +got):\n%s", diff)
	}
}

func TestApplyMoveInvalidDirection(t *testing.T) {
	g := mustGrid(t, "AA..", "....", "....", "....")

	res := ApplyMove(g, Direction(42))

	if res.Moved || res.Score != 0 {
		t.Errorf("invalid direction should be ignored, got %+v", res)
	}
	if res.Grid != g {
		t.Error("invalid direction should return the grid unchanged")
	}
}

func TestApplyMoveLeavesInputUntouched(t *testing.T) {
	g := mustGrid(t, "AA..", "....", "....", "....")
	before := g

	ApplyMove(g, DirLeft)

	if g != before {
		t.Error("ApplyMove must not modify its input")
	}
}

func TestApplyMoveResetsFlags(t *testing.T) {
	g := mustGrid(t, "AA..", "...C", "....", "....")
	g[1][3].Moved = true

	res := ApplyMove(g, DirLeft)

	if res.Grid[1][0].Moved {
		t.Error("a slid tile should not keep the previous move's flag")
	}
	if !res.Grid[0][0].Moved {
		t.Error("a merged tile should be flagged")
	}
}

func TestTileSumConservedByMoves(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for range 200 {
		var g Grid
		for y := range Size {
			for x := range Size {
				if rng.Intn(3) > 0 {
					g[y][x] = Cell{Letter: Letter(1 + rng.Intn(4))}
				}
			}
		}

		for _, dir := range []Direction{DirUp, DirDown, DirLeft, DirRight} {
			res := ApplyMove(g, dir)
			if TileSum(res.Grid) != TileSum(g) {
				t.Fatalf("%s: tile sum %d -> %d\n%v", dir, TileSum(g), TileSum(res.Grid), g.Rows())
			}

			// Each merge scores half of the tile it produced.
			merged := 0
			for y := range Size {
				for x := range Size {
					if res.Grid[y][x].Moved {
						merged += res.Grid[y][x].Letter.Value() / 2
					}
				}
			}
			if res.Score != merged {
				t.Fatalf("%s: score %d, merged tiles account for %d", dir, res.Score, merged)
			}
		}
	}
}

func TestSpawnTile(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	g := mustGrid(t, "AB..", "....", "....", "....")

	next, pos, ok := SpawnTile(g, rng)

	if !ok {
		t.Fatal("SpawnTile should succeed on a board with empty cells")
	}
	if !g[pos.Y][pos.X].Empty() {
		t.Errorf("spawned on occupied cell %v", pos)
	}
	if next[pos.Y][pos.X] != (Cell{Letter: LetterA}) {
		t.Errorf("spawned cell = %+v, want plain A", next[pos.Y][pos.X])
	}
	if TileSum(next) != TileSum(g)+2 {
		t.Errorf("spawn should add exactly 2, sum %d -> %d", TileSum(g), TileSum(next))
	}
}

func TestSpawnTileFullBoard(t *testing.T) {
	g := mustGrid(t, "ABAB", "BABA", "ABAB", "BABA")

	next, _, ok := SpawnTile(g, rand.New(rand.NewSource(1)))

	if ok {
		t.Error("SpawnTile should report false on a full board")
	}
	if next != g {
		t.Error("SpawnTile should not change a full board")
	}
}

func TestNewGame(t *testing.T) {
	g := NewGame(rand.New(rand.NewSource(99)))

	if n := len(EmptyCells(g)); n != Size*Size-2 {
		t.Errorf("new game should have 2 tiles, has %d empty cells", n)
	}
	if TileSum(g) != 4 {
		t.Errorf("new game tile sum = %d, want two A tiles", TileSum(g))
	}
}

func TestIsGameOver(t *testing.T) {
	tests := []struct {
		name string
		rows []string
		want bool
	}{
		{"full board, no merges", []string{"ABCD", "BCDA", "CDAB", "DABC"}, true},
		{"full board, horizontal merge", []string{"AACD", "BCDA", "CDAB", "DABC"}, false},
		{"full board, vertical merge", []string{"ABCD", "ACDA", "CDAB", "DABC"}, false},
		{"empty cell", []string{"ABCD", "BCDA", "CD.B", "DABC"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsGameOver(mustGrid(t, tt.rows...)); got != tt.want {
				t.Errorf("IsGameOver = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"left", DirLeft, true},
		{"ArrowRight", DirRight, true},
		{"k", DirUp, true},
		{"S", DirDown, true},
		{"space", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseDirection(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestDirectionForAction(t *testing.T) {
	want := map[core.Action]Direction{
		core.ActionUp:    DirUp,
		core.ActionDown:  DirDown,
		core.ActionLeft:  DirLeft,
		core.ActionRight: DirRight,
	}
	for a := core.ActionNone; a <= core.ActionPause; a++ {
		d, ok := DirectionForAction(a)
		wd, wok := want[a]
		if ok != wok || d != wd {
			t.Errorf("DirectionForAction(%v) = %v, %v; want %v, %v", a, d, ok, wd, wok)
		}
	}
}

func TestParseGridErrors(t *testing.T) {
	if _, err := ParseGrid("AAAA"); err == nil {
		t.Error("expected error for missing rows")
	}
	if _, err := ParseGrid("AA", "....", "....", "...."); err == nil {
		t.Error("expected error for short row")
	}
	if _, err := ParseGrid("A1..", "....", "....", "...."); err == nil {
		t.Error("expected error for invalid cell")
	}
}
