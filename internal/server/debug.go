package server

import (
	"encoding/json"
	"net/http"

	"github.com/Lilllllly06/TemporalMaze/internal/engine"
)

// DebugHandler предоставляет доступ к внутреннему состоянию сервиса
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/sessions", h.handleSessions)
	mux.HandleFunc("/debug/state", h.handleState)
}

// /debug/sessions - сводка по активным партиям
func (h *DebugHandler) handleSessions(w http.ResponseWriter, r *http.Request) {
	type Summary struct {
		Sessions    int `json:"sessions"`
		Subscribers int `json:"subscribers"`
	}
	writeJSON(w, Summary{
		Sessions:    h.Service.SessionCount(),
		Subscribers: h.Service.Hub.SubscriberCount(),
	})
}

// /debug/state?session=<id> - полный снимок одной партии.
// Читает состояние вне цикла сессии: точность "примерно сейчас", для дебага сойдет.
func (h *DebugHandler) handleState(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("session")
	state, ok := h.Service.Snapshot(id)
	if !ok {
		http.Error(w, "Session not found", http.StatusNotFound)
		return
	}
	writeJSON(w, state)
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug_client.html)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")

	// Если data == nil, возвращаем пустой массив [], а не null
	if data == nil {
		w.Write([]byte("[]"))
		return
	}

	json.NewEncoder(w).Encode(data)
}
