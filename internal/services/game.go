package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/puzlabu/puzlabu-backend/internal/platform/logger"
	"github.com/puzlabu/puzlabu-backend/internal/puzzle"
)

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrUnknownPuzzle = errors.New("unknown puzzle image")
)

// GameState is the wire snapshot of one game session.
type GameState struct {
	ID       uuid.UUID   `json:"id"`
	PuzzleID string      `json:"puzzle_id"`
	GridSize int         `json:"grid_size"`
	Slots    []int       `json:"slots"`
	Pieces   []PieceView `json:"pieces"`
	Moves    int         `json:"moves"`
	Solved   bool        `json:"solved"`
	Source   int         `json:"source"`
	Hover    int         `json:"hover"`
}

// PieceView carries the display geometry of the piece sitting in one slot:
// its background-position percentages against the scaled source image.
type PieceView struct {
	Index   int     `json:"index"`
	OffsetX float64 `json:"offset_x"`
	OffsetY float64 `json:"offset_y"`
}

// GameService owns the in-memory game sessions. Each session holds exactly
// one board; idle sessions are swept out after gameTTL.
type GameService interface {
	Create(puzzleID string, gridSize int) (*GameState, error)
	Get(gameID uuid.UUID) (*GameState, error)
	PointerDown(gameID uuid.UUID, slot int) (*GameState, error)
	PointerDrop(gameID uuid.UUID, slot int) (*GameState, error)
	PointerCancel(gameID uuid.UUID) (*GameState, error)
	TouchStart(gameID uuid.UUID, slot int) (*GameState, error)
	TouchMove(gameID uuid.UUID, x, y, width, height float64) (*GameState, error)
	TouchEnd(gameID uuid.UUID) (*GameState, error)
	Restart(gameID uuid.UUID) (*GameState, error)
	StartSweeper(ctx context.Context)
}

type gameSession struct {
	id         uuid.UUID
	puzzleID   string
	board      *puzzle.Board
	gesture    *puzzle.Gesture
	lastActive time.Time
}

type gameService struct {
	log     *logger.Logger
	catalog CatalogService

	mu       sync.Mutex
	sessions map[uuid.UUID]*gameSession

	gameTTL       time.Duration
	sweepInterval time.Duration
}

func NewGameService(log *logger.Logger, catalog CatalogService, gameTTL time.Duration) GameService {
	if gameTTL <= 0 {
		gameTTL = 30 * time.Minute
	}
	return &gameService{
		log:           log.With("service", "GameService"),
		catalog:       catalog,
		sessions:      make(map[uuid.UUID]*gameSession),
		gameTTL:       gameTTL,
		sweepInterval: time.Minute,
	}
}

func (gs *gameService) Create(puzzleID string, gridSize int) (*GameState, error) {
	if _, ok := gs.catalog.Get(puzzleID); !ok {
		return nil, ErrUnknownPuzzle
	}
	if gridSize == 0 {
		gridSize = puzzle.DefaultGridSize
	}
	board, err := puzzle.NewBoard(gridSize)
	if err != nil {
		return nil, err
	}
	session := &gameSession{
		id:         uuid.New(),
		puzzleID:   puzzleID,
		board:      board,
		gesture:    puzzle.NewGesture(board),
		lastActive: time.Now(),
	}

	gs.mu.Lock()
	gs.sessions[session.id] = session
	gs.mu.Unlock()

	gs.log.Debug("Game created", "game_id", session.id, "puzzle_id", puzzleID, "grid_size", gridSize)
	return snapshot(session), nil
}

func (gs *gameService) Get(gameID uuid.UUID) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error { return nil })
}

func (gs *gameService) PointerDown(gameID uuid.UUID, slot int) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		return s.gesture.PointerDown(slot)
	})
}

func (gs *gameService) PointerDrop(gameID uuid.UUID, slot int) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		_, err := s.gesture.PointerDrop(slot)
		return err
	})
}

func (gs *gameService) PointerCancel(gameID uuid.UUID) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		s.gesture.Cancel()
		return nil
	})
}

func (gs *gameService) TouchStart(gameID uuid.UUID, slot int) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		return s.gesture.TouchStart(slot)
	})
}

func (gs *gameService) TouchMove(gameID uuid.UUID, x, y, width, height float64) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		s.gesture.TouchMove(x, y, width, height)
		return nil
	})
}

func (gs *gameService) TouchEnd(gameID uuid.UUID) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		_, err := s.gesture.TouchEnd()
		return err
	})
}

func (gs *gameService) Restart(gameID uuid.UUID) (*GameState, error) {
	return gs.withSession(gameID, func(s *gameSession) error {
		s.board.Shuffle()
		s.gesture.Reset()
		return nil
	})
}

func (gs *gameService) withSession(gameID uuid.UUID, fn func(*gameSession) error) (*GameState, error) {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	session, ok := gs.sessions[gameID]
	if !ok {
		return nil, ErrGameNotFound
	}
	session.lastActive = time.Now()
	if err := fn(session); err != nil {
		return nil, err
	}
	return snapshot(session), nil
}

// StartSweeper drops sessions idle longer than gameTTL until ctx is done.
func (gs *gameService) StartSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(gs.sweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				gs.sweep()
			}
		}
	}()
}

func (gs *gameService) sweep() {
	cutoff := time.Now().Add(-gs.gameTTL)
	gs.mu.Lock()
	defer gs.mu.Unlock()
	for id, session := range gs.sessions {
		if session.lastActive.Before(cutoff) {
			delete(gs.sessions, id)
			gs.log.Debug("Game expired", "game_id", id, "puzzle_id", session.puzzleID)
		}
	}
}

func snapshot(s *gameSession) *GameState {
	slots := s.board.Slots()
	gridSize := s.board.GridSize()
	pieces := make([]PieceView, len(slots))
	for i, correctIndex := range slots {
		x, y := puzzle.BackgroundOffset(correctIndex, gridSize)
		pieces[i] = PieceView{Index: correctIndex, OffsetX: x, OffsetY: y}
	}
	return &GameState{
		ID:       s.id,
		PuzzleID: s.puzzleID,
		GridSize: gridSize,
		Slots:    slots,
		Pieces:   pieces,
		Moves:    s.board.Moves(),
		Solved:   s.board.Solved(),
		Source:   s.gesture.Source(),
		Hover:    s.gesture.Hover(),
	}
}
