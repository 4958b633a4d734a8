package puzzle

import (
	"math/rand"
	"testing"
)

func newTestBoard(t *testing.T, gridSize int, seed int64) *Board {
	t.Helper()
	b, err := NewBoardWithRand(gridSize, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("NewBoardWithRand(%d): %v", gridSize, err)
	}
	b.ShuffleGrace = 0
	return b
}

func TestShuffleIsPermutation(t *testing.T) {
	for _, gridSize := range []int{2, 3, 4, 5} {
		for seed := int64(0); seed < 50; seed++ {
			b := newTestBoard(t, gridSize, seed)
			slots := b.Slots()
			if len(slots) != gridSize*gridSize {
				t.Fatalf("grid %d seed %d: got %d slots", gridSize, seed, len(slots))
			}
			seen := make(map[int]bool, len(slots))
			for _, v := range slots {
				if v < 0 || v >= len(slots) {
					t.Fatalf("grid %d seed %d: value %d out of range", gridSize, seed, v)
				}
				if seen[v] {
					t.Fatalf("grid %d seed %d: value %d appears twice", gridSize, seed, v)
				}
				seen[v] = true
			}
		}
	}
}

func TestShuffleNeverIdentity(t *testing.T) {
	// 2x2 boards hit the identity often enough to exercise the correction.
	for seed := int64(0); seed < 500; seed++ {
		b := newTestBoard(t, 2, seed)
		identity := true
		for i, v := range b.Slots() {
			if v != i {
				identity = false
				break
			}
		}
		if identity {
			t.Fatalf("seed %d: fresh board already solved", seed)
		}
		if b.Solved() {
			t.Fatalf("seed %d: fresh board reports solved", seed)
		}
		if b.Moves() != 0 {
			t.Fatalf("seed %d: fresh board has %d moves", seed, b.Moves())
		}
	}
}

func TestSwapSameSlotIsNoop(t *testing.T) {
	b := newTestBoard(t, 4, 1)
	before := b.Slots()
	if err := b.Swap(3, 3); err != nil {
		t.Fatalf("Swap(3,3): %v", err)
	}
	if b.Moves() != 0 {
		t.Fatalf("move counter advanced on self-swap: %d", b.Moves())
	}
	for i, v := range b.Slots() {
		if v != before[i] {
			t.Fatalf("slot %d changed on self-swap", i)
		}
	}
}

func TestSwapInvalidSlot(t *testing.T) {
	b := newTestBoard(t, 4, 1)
	cases := []struct {
		name string
		a, b int
	}{
		{"negative_a", -1, 0},
		{"negative_b", 0, -1},
		{"a_too_big", 16, 0},
		{"b_too_big", 0, 16},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := b.Swap(tc.a, tc.b); err != ErrInvalidSlot {
				t.Fatalf("Swap(%d,%d)=%v, want ErrInvalidSlot", tc.a, tc.b, err)
			}
		})
	}
	if b.Moves() != 0 {
		t.Fatalf("invalid swaps advanced the move counter: %d", b.Moves())
	}
}

func TestSwapCountsMoves(t *testing.T) {
	b := newTestBoard(t, 4, 1)
	if err := b.Swap(0, 1); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if err := b.Swap(2, 7); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if b.Moves() != 2 {
		t.Fatalf("moves=%d, want 2", b.Moves())
	}
}

// solve walks the board to the identity permutation with selection-sort style
// swaps.
func solve(t *testing.T, b *Board) {
	t.Helper()
	for i := 0; i < len(b.Slots()); i++ {
		slots := b.Slots()
		if slots[i] == i {
			continue
		}
		j := i + 1
		for ; j < len(slots); j++ {
			if slots[j] == i {
				break
			}
		}
		if err := b.Swap(i, j); err != nil {
			t.Fatalf("Swap(%d,%d): %v", i, j, err)
		}
	}
}

func TestSolvedIffIdentity(t *testing.T) {
	b := newTestBoard(t, 4, 7)
	if b.Solved() {
		t.Fatal("board solved before any move")
	}
	solve(t, b)
	if !b.Solved() {
		t.Fatalf("identity permutation not reported solved: %v", b.Slots())
	}
}

func TestSolvedIsTerminalUntilShuffle(t *testing.T) {
	b := newTestBoard(t, 3, 11)
	solve(t, b)
	if !b.Solved() {
		t.Fatal("expected solved board")
	}
	finalMoves := b.Moves()

	// Further swaps are ignored: solved stays true, counter frozen.
	if err := b.Swap(0, 1); err != nil {
		t.Fatalf("Swap after solve: %v", err)
	}
	if !b.Solved() {
		t.Fatal("solved state lost after post-solve swap attempt")
	}
	if b.Moves() != finalMoves {
		t.Fatalf("move counter advanced after solve: %d -> %d", finalMoves, b.Moves())
	}

	b.Shuffle()
	if b.Solved() {
		t.Fatal("shuffle did not clear solved state")
	}
	if b.Moves() != 0 {
		t.Fatalf("shuffle did not reset move counter: %d", b.Moves())
	}
}

func TestShuffleGraceBlocksSwaps(t *testing.T) {
	b, err := NewBoardWithRand(4, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatalf("NewBoardWithRand: %v", err)
	}
	// Default grace applies right after the constructor's shuffle.
	if err := b.Swap(0, 1); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if b.Moves() != 0 {
		t.Fatalf("swap applied inside shuffle grace window: moves=%d", b.Moves())
	}
	b.ShuffleGrace = 0
	if err := b.Swap(0, 1); err != nil {
		t.Fatalf("Swap: %v", err)
	}
	if b.Moves() != 1 {
		t.Fatalf("swap not applied after grace window: moves=%d", b.Moves())
	}
}

func TestNewBoardRejectsTinyGrids(t *testing.T) {
	for _, gridSize := range []int{-1, 0, 1} {
		if _, err := NewBoard(gridSize); err == nil {
			t.Fatalf("NewBoard(%d) accepted", gridSize)
		}
	}
}
