package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"trivia-rooms/internal/app"
	"trivia-rooms/internal/domain"
)

// Handler exposes the room and scoring flows as a JSON API.
type Handler struct {
	service *app.RoomService
}

func NewHandler(service *app.RoomService) *Handler {
	return &Handler{service: service}
}

// Register mounts all routes on the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /categories", h.Categories)
	mux.HandleFunc("POST /score", h.ScoreSolo)
	mux.HandleFunc("POST /rooms", h.CreateRoom)
	mux.HandleFunc("GET /rooms/{code}", h.GetRoom)
	mux.HandleFunc("POST /rooms/{code}/join", h.Join)
	mux.HandleFunc("POST /rooms/{code}/submit", h.Submit)
	mux.HandleFunc("GET /rooms/{code}/results", h.Results)
}

// questionView is a Question stripped of its correct answer for display.
type questionView struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type roomView struct {
	Code          string         `json:"code"`
	Category      string         `json:"category"`
	QuestionCount int            `json:"questionCount"`
	Questions     []questionView `json:"questions"`
	Players       []string       `json:"players"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	room := h.service.CreateRoom(r.Context(), req.Category)
	writeJSON(w, http.StatusCreated, map[string]any{
		"code":          room.Code,
		"category":      room.Category,
		"questionCount": len(room.Questions),
	})
}

func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.service.GetRoom(r.PathValue("code"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newRoomView(room))
}

func (h *Handler) Join(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	username, err := h.service.Join(r.PathValue("code"), req.Username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"username": username})
}

func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string             `json:"username"`
		Answers  []domain.Selection `json:"answers"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := h.service.Submit(r.PathValue("code"), req.Username, req.Answers); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Results returns the leaderboard plus, when a username is given, that
// player's per-question detail. An unknown or absent username still gets
// placeholder detail so the page can show a room overview.
func (h *Handler) Results(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	lb, err := h.service.Leaderboard(code)
	if err != nil {
		h.writeError(w, err)
		return
	}
	username := r.URL.Query().Get("username")
	detail, err := h.service.PlayerDetail(code, username)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"leaderboard": lb,
		"username":    username,
		"detail":      detail,
	})
}

func (h *Handler) ScoreSolo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Total int                 `json:"total"`
		Items []domain.SoloAnswer `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	writeJSON(w, http.StatusOK, app.ScoreSolo(req.Total, req.Items))
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"categories": app.Categories})
}

// writeError maps lookup misses to 404 so clients can route the user back to
// the join page; anything else is a server fault.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrRoomNotFound) || errors.Is(err, domain.ErrPlayerNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func newRoomView(room domain.Room) roomView {
	questions := make([]questionView, 0, len(room.Questions))
	for _, q := range room.Questions {
		questions = append(questions, questionView{Question: q.Text, Options: q.Options})
	}
	return roomView{
		Code:          room.Code,
		Category:      room.Category,
		QuestionCount: len(room.Questions),
		Questions:     questions,
		Players:       room.Players,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
