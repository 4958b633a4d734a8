package puzzle

import (
	"errors"
	"fmt"
	"math/rand"
	"time"
)

var ErrInvalidSlot = errors.New("puzzle: slot out of range")

// DefaultGridSize matches the shipped 4x4 boards.
const DefaultGridSize = 4

// DefaultShuffleGrace is the post-shuffle window during which swaps are
// ignored while the client plays its deal-in animation.
const DefaultShuffleGrace = 300 * time.Millisecond

// Board holds one puzzle instance: a permutation of [0, gridSize²) mapping
// board slot -> correct piece index. The identity permutation is the solved
// state. The permutation is always a bijection; the only mutation is a
// pairwise swap of two slots.
type Board struct {
	gridSize int
	slots    []int
	moves    int
	solved   bool

	shuffledAt time.Time

	// ShuffleGrace can be zeroed in tests to make swaps take effect
	// immediately after a shuffle.
	ShuffleGrace time.Duration

	rng *rand.Rand
}

// NewBoard deals a shuffled board. gridSize must be at least 2.
func NewBoard(gridSize int) (*Board, error) {
	return NewBoardWithRand(gridSize, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewBoardWithRand is NewBoard with a caller-supplied randomness source.
func NewBoardWithRand(gridSize int, rng *rand.Rand) (*Board, error) {
	if gridSize < 2 {
		return nil, fmt.Errorf("puzzle: grid size %d too small", gridSize)
	}
	b := &Board{
		gridSize:     gridSize,
		slots:        make([]int, gridSize*gridSize),
		ShuffleGrace: DefaultShuffleGrace,
		rng:          rng,
	}
	b.Shuffle()
	return b, nil
}

// Shuffle re-deals the board: an unbiased Fisher-Yates permutation, corrected
// away from the identity so a fresh game is never already solved. Resets the
// move counter and the solved flag.
func (b *Board) Shuffle() {
	for i := range b.slots {
		b.slots[i] = i
	}
	for i := len(b.slots) - 1; i > 0; i-- {
		j := b.rng.Intn(i + 1)
		b.slots[i], b.slots[j] = b.slots[j], b.slots[i]
	}
	if b.isIdentity() {
		b.slots[0], b.slots[1] = b.slots[1], b.slots[0]
	}
	b.moves = 0
	b.solved = false
	b.shuffledAt = time.Now()
}

// Swap exchanges the pieces at two slots and advances the move counter.
// Swapping a slot with itself is a no-op. Swaps are ignored once the board is
// solved and during the post-shuffle grace window.
func (b *Board) Swap(slotA, slotB int) error {
	if !b.validSlot(slotA) || !b.validSlot(slotB) {
		return ErrInvalidSlot
	}
	if slotA == slotB || b.solved {
		return nil
	}
	if b.ShuffleGrace > 0 && time.Since(b.shuffledAt) < b.ShuffleGrace {
		return nil
	}
	b.slots[slotA], b.slots[slotB] = b.slots[slotB], b.slots[slotA]
	b.moves++
	if b.isIdentity() {
		b.solved = true
	}
	return nil
}

func (b *Board) Solved() bool { return b.solved }

func (b *Board) Moves() int { return b.moves }

func (b *Board) GridSize() int { return b.gridSize }

// Slots returns a copy of the current permutation.
func (b *Board) Slots() []int {
	out := make([]int, len(b.slots))
	copy(out, b.slots)
	return out
}

func (b *Board) validSlot(s int) bool {
	return s >= 0 && s < len(b.slots)
}

func (b *Board) isIdentity() bool {
	for i, v := range b.slots {
		if v != i {
			return false
		}
	}
	return true
}
