// Package server is the dashboard UI: a current-reading view, a
// historical charts view, and a websocket feed pushing live updates.
package server

import (
	"context"
	"encoding/json"
	"html/template"
	"net/http"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/Thoxh/smart-biodigester-dashboard/internal/alarm"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/chart"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/domain"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/feed"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/history"
	"github.com/Thoxh/smart-biodigester-dashboard/internal/service"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

type Server struct {
	router  *mux.Router
	tmpl    *template.Template
	svcs    *service.Services
	feed    *feed.Feed
	history *history.Service

	clientsMu sync.RWMutex
	clients   map[string]*websocket.Conn
	broadcast chan any
}

func New(svcs *service.Services, f *feed.Feed, hist *history.Service) *Server {
	funcMap := template.FuncMap{
		"toJSON": toJSON,
		"fmtVal": domain.FormatValue,
	}
	tmpl := template.Must(template.New("base").Funcs(funcMap).ParseGlob("templates/*.html"))

	s := &Server{
		router:    mux.NewRouter(),
		tmpl:      tmpl,
		svcs:      svcs,
		feed:      f,
		history:   hist,
		clients:   make(map[string]*websocket.Conn),
		broadcast: make(chan any, 256),
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/ws", s.handleWebSocket)
	s.router.HandleFunc("/charts", s.handleCharts).Methods(http.MethodGet)
	s.router.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
}

// Handler wraps the router with panic recovery.
func (s *Server) Handler() http.Handler {
	return handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(s.router)
}

// Start launches the broadcast pump and the feed watcher; both stop
// when ctx is canceled.
func (s *Server) Start(ctx context.Context) {
	go s.handleBroadcast(ctx)
	go s.watchFeed(ctx)
}

func (s *Server) watchFeed(ctx context.Context) {
	id, ch := s.feed.Subscribe()
	defer s.feed.Unsubscribe(id)

	for {
		select {
		case <-ctx.Done():
			return
		case r, ok := <-ch:
			if !ok {
				return
			}
			s.broadcast <- readingMessage("reading", &r, s.svcs.Ranges)
		}
	}
}

func (s *Server) handleBroadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.broadcast:
			var dead []string
			s.clientsMu.RLock()
			for id, conn := range s.clients {
				if err := conn.WriteJSON(msg); err != nil {
					log.Debug().Str("client", id).Err(err).Msg("dropping websocket client")
					dead = append(dead, id)
				}
			}
			s.clientsMu.RUnlock()
			if len(dead) > 0 {
				s.clientsMu.Lock()
				for _, id := range dead {
					if conn, ok := s.clients[id]; ok {
						conn.Close()
						delete(s.clients, id)
					}
				}
				s.clientsMu.Unlock()
			}
		}
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}
	id := uuid.NewString()

	s.clientsMu.Lock()
	s.clients[id] = conn
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, id)
		s.clientsMu.Unlock()
		conn.Close()
	}()

	if reading, ready := s.feed.Current(); ready {
		conn.WriteJSON(readingMessage("init", reading, s.svcs.Ranges))
	}

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	_, ready := s.feed.Current()
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"status": "ok", "feed_ready": ready})
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	win := chart.Window1d
	if q := r.URL.Query().Get("window"); q != "" {
		if parsed, err := chart.ParseWindow(q); err == nil {
			win = parsed
		}
	}

	// Exactly one fetch per window change; a failed fetch falls back
	// to the previous working set.
	if err := s.history.SetWindow(r.Context(), win); err != nil {
		log.Error().Err(err).Str("window", string(win)).Msg("keeping previous working set")
	}
	_, readings := s.history.Snapshot()
	charts := chart.BuildAll(readings, win, s.svcs.Charts)

	type windowOption struct {
		Value    chart.Window
		Label    string
		Selected bool
	}
	options := make([]windowOption, 0, len(chart.Windows()))
	for _, w := range chart.Windows() {
		options = append(options, windowOption{Value: w, Label: w.Label(), Selected: w == win})
	}

	s.render(w, "charts.html", map[string]any{
		"Title":      "History",
		"Windows":    options,
		"Window":     win,
		"Empty":      len(readings) == 0,
		"ChartsJSON": toJSON(charts),
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "template error", http.StatusInternalServerError)
	}
}

func toJSON(v any) template.JS {
	b, _ := json.Marshal(v)
	return template.JS(b)
}

func readingMessage(kind string, r *domain.SensorReading, ranges alarm.Ranges) map[string]any {
	return map[string]any{
		"type":    kind,
		"reading": r,
		"status":  alarm.Evaluate(r, ranges),
	}
}
