package puzzle

// PieceRegion gives the source-image row/column for a piece by its correct
// index. Pure display arithmetic, no board state involved.
func PieceRegion(correctIndex, gridSize int) (row, col int) {
	return correctIndex / gridSize, correctIndex % gridSize
}

// BackgroundOffset converts a piece's region into proportional CSS
// background-position percentages, assuming the image is scaled to
// gridSize*100% of the cell in both axes.
func BackgroundOffset(correctIndex, gridSize int) (xPercent, yPercent float64) {
	row, col := PieceRegion(correctIndex, gridSize)
	denom := float64(gridSize - 1)
	if denom <= 0 {
		return 0, 0
	}
	return float64(col) / denom * 100, float64(row) / denom * 100
}
