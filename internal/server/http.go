package server

import (
	"context"
	"encoding/json"
	"net/http"
	_ "net/http/pprof" // Profiling

	"github.com/Lilllllly06/TemporalMaze/internal/engine"
	"github.com/Lilllllly06/TemporalMaze/internal/version"
	"github.com/Lilllllly06/TemporalMaze/pkg/logger"
)

type Server struct {
	Service *engine.GameService
	Addr    string

	httpSrv *http.Server
}

func New(service *engine.GameService, addr string) *Server {
	return &Server{
		Service: service,
		Addr:    addr,
	}
}

// Run запускает HTTP сервер
func (s *Server) Run() error {
	mux := http.DefaultServeMux

	// Регистрируем роуты
	mux.HandleFunc("/ws", enableCORS(s.handleWS))
	mux.HandleFunc("/health", enableCORS(s.handleHealth))
	mux.HandleFunc("/version", enableCORS(s.handleVersion))

	// Debug Routes
	debugHandler := NewDebugHandler(s.Service)
	debugHandler.RegisterRoutes(mux)

	s.httpSrv = &http.Server{Addr: s.Addr, Handler: mux}

	logger.Log.Infof("⏳  TemporalMaze Server running on %s", s.Addr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown мягко останавливает HTTP-сервер.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Разрешаем запросы с фронтенда
		w.Header().Set("Access-Control-Allow-Origin", "*")
		// Разрешаем заголовки, если фронт шлет что-то нестандартное
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		next(w, r)
	}
}

// handleWS обрабатывает подключение по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.Error("Upgrade error:", err)
		return
	}

	client := NewClient(s.Service, conn)

	// Запускаем пампы
	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(version.Info())
}
