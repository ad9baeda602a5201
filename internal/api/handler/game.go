package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/quarto/internal/api/request"
	"github.com/mcoot/quarto/internal/api/response"
	"github.com/mcoot/quarto/internal/events"
	"github.com/mcoot/quarto/internal/host"
	"github.com/mcoot/quarto/internal/model"
)

// GameHandler handles game endpoints
type GameHandler struct {
	host *host.Host
	bus  *events.Bus
}

// NewGameHandler creates a new game handler
func NewGameHandler(h *host.Host, bus *events.Bus) *GameHandler {
	return &GameHandler{
		host: h,
		bus:  bus,
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	cfg, err := req.Config()
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.host.CreateGame(r.Context(), cfg)
	if err != nil {
		WriteError(w, err)
		return
	}

	game := response.GameFromSnapshot(snap)
	response.Created(w, "/api/v1/games/"+game.ID, game)
}

// List handles GET /api/v1/games
func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.host.Games(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.GameList{Games: make([]response.Game, len(snaps))}
	for i, snap := range snaps {
		resp.Games[i] = response.GameFromSnapshot(snap)
	}
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.host.Game(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Select handles POST /api/v1/games/{id}/select
func (h *GameHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req request.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	piece, err := model.ParsePiece(req.Piece)
	if err != nil {
		WriteError(w, err)
		return
	}

	snap, err := h.host.SelectPiece(r.Context(), gameID(r), piece)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Place handles POST /api/v1/games/{id}/place
func (h *GameHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req request.PlaceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	snap, err := h.host.PlacePiece(r.Context(), gameID(r), model.Position{Row: req.Row, Col: req.Col})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Claim handles POST /api/v1/games/{id}/claim. A call that finds no line is
// not an error: the response reports win=false.
func (h *GameHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req request.ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	result, snap, err := h.host.ClaimWin(r.Context(), gameID(r), model.Player(req.Player))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ClaimResponse{
		Win:     result.IsWin(),
		Victory: response.VictoryFromModel(result),
		Game:    response.GameFromSnapshot(snap),
	})
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	snap, err := h.host.Reset(r.Context(), gameID(r))
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GameFromSnapshot(snap))
}

// Delete handles DELETE /api/v1/games/{id}
func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.host.Delete(r.Context(), gameID(r)); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Events handles GET /api/v1/games/{id}/events as a server-sent event stream
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	id := gameID(r)
	if _, err := h.host.Game(r.Context(), id); err != nil {
		WriteError(w, err)
		return
	}

	sub := h.bus.Subscribe("sse", id)
	defer h.bus.Unsubscribe(sub)

	events.ServeSSE(w, r, sub, renderEvent)
}

func renderEvent(event model.Event) ([]byte, error) {
	return json.Marshal(response.EventFromModel(event))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}
