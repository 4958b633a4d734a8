package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/puzlabu/puzlabu-backend/internal/http/middleware"
	"github.com/puzlabu/puzlabu-backend/internal/http/response"
	"github.com/puzlabu/puzlabu-backend/internal/services"
)

type GameHandler struct {
	games   services.GameService
	catalog services.CatalogService
}

func NewGameHandler(games services.GameService, catalog services.CatalogService) *GameHandler {
	return &GameHandler{games: games, catalog: catalog}
}

type createGameRequest struct {
	PuzzleID string `json:"puzzle_id"`
	GridSize int    `json:"grid_size"`
}

// Create starts a game. The demo image is playable without activation;
// everything else requires an unlock token on the request.
func (h *GameHandler) Create(c *gin.Context) {
	var req createGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}
	img, ok := h.catalog.Get(req.PuzzleID)
	if !ok {
		response.RespondError(c, http.StatusNotFound, "unknown_puzzle", services.ErrUnknownPuzzle)
		return
	}
	if !img.Demo {
		if _, unlocked := c.Get(middleware.UnlockDeviceKey); !unlocked {
			response.RespondError(c, http.StatusUnauthorized, "locked", errors.New("this image requires activation"))
			return
		}
	}
	state, err := h.games.Create(req.PuzzleID, req.GridSize)
	if err != nil {
		h.respondGameError(c, err)
		return
	}
	response.RespondCreated(c, state)
}

func (h *GameHandler) Get(c *gin.Context) {
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}
	state, err := h.games.Get(gameID)
	if err != nil {
		h.respondGameError(c, err)
		return
	}
	response.RespondOK(c, state)
}

type pointerRequest struct {
	Action string `json:"action"`
	Slot   int    `json:"slot"`
}

func (h *GameHandler) Pointer(c *gin.Context) {
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}
	var req pointerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	var state *services.GameState
	var err error
	switch req.Action {
	case "down":
		state, err = h.games.PointerDown(gameID, req.Slot)
	case "drop":
		state, err = h.games.PointerDrop(gameID, req.Slot)
	case "cancel":
		state, err = h.games.PointerCancel(gameID)
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_action", errors.New("action must be down, drop or cancel"))
		return
	}
	if err != nil {
		h.respondGameError(c, err)
		return
	}
	response.RespondOK(c, state)
}

type touchRequest struct {
	Action string  `json:"action"`
	Slot   int     `json:"slot"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (h *GameHandler) Touch(c *gin.Context) {
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}
	var req touchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_json", err)
		return
	}

	var state *services.GameState
	var err error
	switch req.Action {
	case "start":
		state, err = h.games.TouchStart(gameID, req.Slot)
	case "move":
		state, err = h.games.TouchMove(gameID, req.X, req.Y, req.Width, req.Height)
	case "end":
		state, err = h.games.TouchEnd(gameID)
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_action", errors.New("action must be start, move or end"))
		return
	}
	if err != nil {
		h.respondGameError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (h *GameHandler) Restart(c *gin.Context) {
	gameID, ok := h.gameID(c)
	if !ok {
		return
	}
	state, err := h.games.Restart(gameID)
	if err != nil {
		h.respondGameError(c, err)
		return
	}
	response.RespondOK(c, state)
}

func (h *GameHandler) gameID(c *gin.Context) (uuid.UUID, bool) {
	gameID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_game_id", err)
		return uuid.Nil, false
	}
	return gameID, true
}

func (h *GameHandler) respondGameError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrGameNotFound):
		response.RespondError(c, http.StatusNotFound, "game_not_found", err)
	case errors.Is(err, services.ErrUnknownPuzzle):
		response.RespondError(c, http.StatusNotFound, "unknown_puzzle", err)
	default:
		response.RespondError(c, http.StatusBadRequest, "invalid_move", err)
	}
}
