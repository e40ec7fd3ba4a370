package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"

	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/streak"
	"github.com/theirongolddev/selforge/internal/tracker"
)

type todayResponse struct {
	Date          string           `json:"date"`
	CurrentStreak int              `json:"currentStreak"`
	Day           model.DailyData  `json:"day"`
	Summary       model.DaySummary `json:"summary"`
	Countdown     model.Countdown  `json:"countdown"`
}

type protocolRequest struct {
	Subject         string `json:"subject"`
	Topic           string `json:"topic"`
	DurationSeconds int    `json:"durationSeconds"`
}

type measurementsResponse struct {
	Weekly    model.BodyMeasurements `json:"weekly"`
	Monthly   model.BodyMeasurements `json:"monthly"`
	WeightKg  float64                `json:"weightKg"`
	Countdown model.Countdown        `json:"countdown"`
}

type streakResponse struct {
	Current int                        `json:"current"`
	Longest int                        `json:"longest"`
	History []model.StreakHistoryEntry `json:"history"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Summary string `json:"summary,omitempty"`
}

type textRequest struct {
	Text string `json:"text"`
}

type goalRequest struct {
	Completed *bool `json:"completed"`
}

type schoolRequest struct {
	Went *bool `json:"went"`
}

type studyRequest struct {
	Subject string `json:"subject"`
	Chapter string `json:"chapter"`
	Status  string `json:"status"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return false
	}
	return true
}

// writeTrackerError maps tracker errors to status codes.
func writeTrackerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tracker.ErrInvalid):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, tracker.ErrUnrecognized):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.snapshotStatus())
}

func (s *Service) handleToday(w http.ResponseWriter, _ *http.Request) {
	snap := s.tracker.Snapshot()
	writeJSON(w, http.StatusOK, todayResponse{
		Date:          snap.Today.Key,
		CurrentStreak: snap.Streak,
		Day:           s.tracker.Today(),
		Summary:       snap.Today,
		Countdown:     s.tracker.Countdown(),
	})
}

func (s *Service) handleDays(w http.ResponseWriter, r *http.Request) {
	n := s.cfg.Days
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > 366 {
			writeError(w, http.StatusBadRequest, "n must be between 1 and 366")
			return
		}
		n = v
	}
	writeJSON(w, http.StatusOK, s.tracker.Days(n))
}

func (s *Service) handleDay(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse(model.DateLayout, date); err != nil {
		writeError(w, http.StatusBadRequest, "invalid date format, want YYYY-MM-DD")
		return
	}
	d, ok := s.tracker.Day(date)
	if !ok {
		writeError(w, http.StatusNotFound, "no record for "+date)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleStreak(w http.ResponseWriter, _ *http.Request) {
	st := s.tracker.State()
	writeJSON(w, http.StatusOK, streakResponse{
		Current: st.CurrentStreak,
		Longest: streak.Longest(st),
		History: st.StreakHistory,
	})
}

func (s *Service) handleLog(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	res, err := s.tracker.LogText(r.Context(), req.Text)
	if errors.Is(err, tracker.ErrUnrecognized) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "could not determine entry type", Summary: res.Entry.Summary})
		return
	}
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Service) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.Preview(r.Context(), req.Text))
}

func (s *Service) handleGoal(w http.ResponseWriter, r *http.Request) {
	key, err := model.ParseGoalKey(mux.Vars(r)["key"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var req goalRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Completed == nil {
		writeError(w, http.StatusBadRequest, "completed is required")
		return
	}
	d, err := s.tracker.ToggleGoal(key, *req.Completed)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleSchool(w http.ResponseWriter, r *http.Request) {
	var req schoolRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Went == nil {
		writeError(w, http.StatusBadRequest, "went is required")
		return
	}
	d, err := s.tracker.SetWentToSchool(*req.Went)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Service) handleAddStudy(w http.ResponseWriter, r *http.Request) {
	var req studyRequest
	if !decode(w, r, &req) {
		return
	}
	status := model.StudyPending
	if req.Status != "" {
		st, err := model.ParseStudyStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = st
	}
	topic, err := s.tracker.AddStudyTopic(req.Subject, req.Chapter, status)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, topic)
}

func (s *Service) handleUpdateStudy(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req studyRequest
	if !decode(w, r, &req) {
		return
	}
	var status model.StudyStatus
	if req.Status != "" {
		st, err := model.ParseStudyStatus(req.Status)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		status = st
	}

	if req.Subject != "" || req.Chapter != "" {
		if err := s.tracker.RenameStudyTopic(id, req.Subject, req.Chapter); err != nil {
			writeTrackerError(w, err)
			return
		}
	}
	if status != "" {
		if err := s.tracker.SetStudyStatus(id, status); err != nil {
			writeTrackerError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, s.tracker.Today())
}

func (s *Service) handleDeleteStudy(w http.ResponseWriter, r *http.Request) {
	if err := s.tracker.DeleteStudyTopic(mux.Vars(r)["id"]); err != nil {
		writeTrackerError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Service) handleProtocol(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.State().ProtocolSessions)
}

func (s *Service) handleAddProtocol(w http.ResponseWriter, r *http.Request) {
	var req protocolRequest
	if !decode(w, r, &req) {
		return
	}
	p, err := s.tracker.AddProtocolSession(req.Subject, req.Topic, time.Duration(req.DurationSeconds)*time.Second)
	if err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Service) measurements() measurementsResponse {
	st := s.tracker.State()
	return measurementsResponse{
		Weekly:    st.WeeklyMeasurements,
		Monthly:   st.MonthlyMeasurements,
		WeightKg:  st.MeasuredWeightKg(),
		Countdown: s.tracker.Countdown(),
	}
}

func (s *Service) handleMeasurements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.measurements())
}

func (s *Service) handleSetMeasurements(w http.ResponseWriter, r *http.Request) {
	period, err := model.ParseMeasurementPeriod(mux.Vars(r)["period"])
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var req model.MeasurementUpdate
	if !decode(w, r, &req) {
		return
	}
	if _, err := s.tracker.SetMeasurements(period, req); err != nil {
		writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.measurements())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]tracker.Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	writeJSON(w, http.StatusOK, events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan tracker.Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current state immediately.
	writeSSE(w, s.tracker.Snapshot())
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev tracker.Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}
