// Package server exposes the tracker over a local HTTP API with a
// server-sent event stream of ledger changes.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/theirongolddev/selforge/internal/tracker"
)

// Config controls the server runtime behavior.
type Config struct {
	Addr           string
	AllowedOrigins []string
	Days           int
	EventsBuffer   int
	Logger         *log.Logger
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"startedAt"`
	Addr            string    `json:"addr"`
	CurrentStreak   int       `json:"currentStreak"`
	EventCount      int       `json:"eventCount"`
	SubscriberCount int       `json:"subscriberCount"`
}

// Service serves the HTTP API.
type Service struct {
	cfg     Config
	tracker *tracker.Tracker
	logger  *log.Logger

	mu        sync.RWMutex
	startedAt time.Time
	events    []tracker.Event
	nextSubID int
	subs      map[int]chan tracker.Event
}

// maxBodyBytes caps request bodies.
const maxBodyBytes = 64 << 10

// New returns a Service for t.
func New(cfg Config, t *tracker.Tracker) *Service {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8788"
	}
	if cfg.Days < 1 {
		cfg.Days = 7
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	return &Service{
		cfg:       cfg,
		tracker:   t,
		logger:    logger,
		startedAt: time.Now(),
		subs:      make(map[int]chan tracker.Event),
	}
}

// Handler returns the router wrapped in request logging and CORS.
func (s *Service) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/v1/status", s.handleStatus).Methods(http.MethodGet)
	r.HandleFunc("/v1/today", s.handleToday).Methods(http.MethodGet)
	r.HandleFunc("/v1/days", s.handleDays).Methods(http.MethodGet)
	r.HandleFunc("/v1/days/{date}", s.handleDay).Methods(http.MethodGet)
	r.HandleFunc("/v1/streak", s.handleStreak).Methods(http.MethodGet)
	r.HandleFunc("/v1/log", s.handleLog).Methods(http.MethodPost)
	r.HandleFunc("/v1/preview", s.handlePreview).Methods(http.MethodPost)
	r.HandleFunc("/v1/goals/{key}", s.handleGoal).Methods(http.MethodPut)
	r.HandleFunc("/v1/school", s.handleSchool).Methods(http.MethodPut)
	r.HandleFunc("/v1/study", s.handleAddStudy).Methods(http.MethodPost)
	r.HandleFunc("/v1/study/{id}", s.handleUpdateStudy).Methods(http.MethodPatch)
	r.HandleFunc("/v1/study/{id}", s.handleDeleteStudy).Methods(http.MethodDelete)
	r.HandleFunc("/v1/protocol", s.handleProtocol).Methods(http.MethodGet)
	r.HandleFunc("/v1/protocol", s.handleAddProtocol).Methods(http.MethodPost)
	r.HandleFunc("/v1/measurements", s.handleMeasurements).Methods(http.MethodGet)
	r.HandleFunc("/v1/measurements/{period}", s.handleSetMeasurements).Methods(http.MethodPut)
	r.HandleFunc("/v1/events", s.handleEvents).Methods(http.MethodGet)
	r.HandleFunc("/v1/stream", s.handleStream).Methods(http.MethodGet)

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(s.loggingMiddleware(r))
}

// Run serves until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	changes := make(chan tracker.Event, 64)
	id := s.tracker.Subscribe(changes)
	defer s.tracker.Unsubscribe(id)

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()
	s.logger.Printf("selforge api listening on http://%s", s.cfg.Addr)

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case ev := <-changes:
			s.publishEvent(ev)
		case err := <-errCh:
			return fmt.Errorf("selforge http server: %w", err)
		}
	}
}

func (s *Service) publishEvent(ev tracker.Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) addSubscriber(ch chan tracker.Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Status{
		StartedAt:       s.startedAt,
		Addr:            s.cfg.Addr,
		CurrentStreak:   s.tracker.State().CurrentStreak,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}
