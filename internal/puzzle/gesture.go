package puzzle

// NoSlot marks the absence of a gesture target.
const NoSlot = -1

// Gesture folds both input modalities (pointer drag-and-drop, touch
// press-and-slide) into the board's swap primitive. Pressing a slot arms a
// pending source; releasing over a different valid slot performs the swap;
// anything else cancels with no state change.
type Gesture struct {
	board  *Board
	source int
	hover  int
}

func NewGesture(b *Board) *Gesture {
	return &Gesture{board: b, source: NoSlot, hover: NoSlot}
}

// Reset clears any in-progress gesture, e.g. after a re-shuffle.
func (g *Gesture) Reset() {
	g.source = NoSlot
	g.hover = NoSlot
}

// Source returns the armed slot, or NoSlot.
func (g *Gesture) Source() int { return g.source }

// Hover returns the slot a touch is currently over, or NoSlot.
func (g *Gesture) Hover() int { return g.hover }

// PointerDown arms slot as the drag source. Ignored once solved.
func (g *Gesture) PointerDown(slot int) error {
	if !g.board.validSlot(slot) {
		return ErrInvalidSlot
	}
	if g.board.Solved() {
		return nil
	}
	g.source = slot
	return nil
}

// PointerDrop completes a drag on the given slot. Dropping on the source slot
// cancels. Reports whether a swap was performed.
func (g *Gesture) PointerDrop(slot int) (bool, error) {
	if !g.board.validSlot(slot) {
		g.Reset()
		return false, ErrInvalidSlot
	}
	src := g.source
	g.Reset()
	if src == NoSlot || src == slot || g.board.Solved() {
		return false, nil
	}
	before := g.board.Moves()
	if err := g.board.Swap(src, slot); err != nil {
		return false, err
	}
	return g.board.Moves() > before, nil
}

// Cancel abandons the in-flight gesture (release outside any slot).
func (g *Gesture) Cancel() {
	g.Reset()
}

// TouchStart arms slot, same as PointerDown.
func (g *Gesture) TouchStart(slot int) error {
	return g.PointerDown(slot)
}

// TouchMove projects the touch point into grid coordinates and updates the
// hover target. A point outside the board box clears the target.
func (g *Gesture) TouchMove(x, y, width, height float64) {
	if g.source == NoSlot || g.board.Solved() {
		return
	}
	slot, ok := ProjectTouch(x, y, width, height, g.board.GridSize())
	if !ok {
		g.hover = NoSlot
		return
	}
	g.hover = slot
}

// TouchEnd releases the touch: a valid hover target different from the source
// performs the swap, anything else cancels. Reports whether a swap happened.
func (g *Gesture) TouchEnd() (bool, error) {
	src, tgt := g.source, g.hover
	g.Reset()
	if src == NoSlot || tgt == NoSlot || src == tgt || g.board.Solved() {
		return false, nil
	}
	before := g.board.Moves()
	if err := g.board.Swap(src, tgt); err != nil {
		return false, err
	}
	return g.board.Moves() > before, nil
}

// ProjectTouch maps a point within a width x height board box onto a slot
// index. Coordinates on the far edges clamp onto the last row/column; points
// outside the box yield no target.
func ProjectTouch(x, y, width, height float64, gridSize int) (int, bool) {
	if width <= 0 || height <= 0 {
		return NoSlot, false
	}
	if x < 0 || y < 0 || x > width || y > height {
		return NoSlot, false
	}
	col := int(x / width * float64(gridSize))
	row := int(y / height * float64(gridSize))
	if col >= gridSize {
		col = gridSize - 1
	}
	if row >= gridSize {
		row = gridSize - 1
	}
	return row*gridSize + col, true
}
