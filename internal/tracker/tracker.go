// Package tracker is the single writer of the application state. It joins
// parsing, enrichment, the ledger reducers, the streak calculator and the
// store behind one mutex.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/theirongolddev/selforge/internal/ledger"
	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/pipeline"
	"github.com/theirongolddev/selforge/internal/portion"
	"github.com/theirongolddev/selforge/internal/streak"
)

var (
	// ErrUnrecognized is returned when text is neither food nor exercise.
	ErrUnrecognized = errors.New("tracker: unrecognized entry")
	// ErrNotFound is returned when a study topic ID does not exist today.
	ErrNotFound = errors.New("tracker: not found")
	// ErrInvalid is returned for missing or out-of-range input.
	ErrInvalid = errors.New("tracker: invalid input")
)

// Parser classifies free text.
type Parser interface {
	Parse(ctx context.Context, text string) model.ParsedEntry
}

// Enricher attaches nutrition and burn values to a parsed entry.
type Enricher interface {
	Enrich(ctx context.Context, entry model.ParsedEntry) model.EnrichedEntry
}

// Store persists the whole state.
type Store interface {
	Load(name string) (model.AppState, error)
	Save(name string, st model.AppState) error
}

// Event types published to subscribers.
const (
	EventSnapshot = "snapshot"
	EventFood     = "food_logged"
	EventActivity = "activity_logged"
	EventStudy    = "study_changed"
	EventGoal     = "goal_changed"
	EventSchool   = "school_changed"
	EventProfile  = "profile_changed"
	EventImport   = "state_imported"
	EventFocus    = "focus_logged"
	EventMeasure  = "measurements_changed"
)

// Event is emitted after every committed mutation.
type Event struct {
	ID        int64            `json:"id"`
	Type      string           `json:"type"`
	Timestamp time.Time        `json:"timestamp"`
	Streak    int              `json:"currentStreak"`
	Today     model.DaySummary `json:"today"`
}

// Result describes what a logging call recorded.
type Result struct {
	Entry    model.EnrichedEntry `json:"entry"`
	Food     []model.FoodEntry   `json:"food,omitempty"`
	Activity *model.GymActivity  `json:"activity,omitempty"`
	Today    model.DaySummary    `json:"today"`
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock sets the time source used to pick "today".
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		if now != nil {
			t.now = now
		}
	}
}

// WithName sets the store row name.
func WithName(name string) Option {
	return func(t *Tracker) {
		if name != "" {
			t.name = name
		}
	}
}

// WithLogger sets the logger for store and subscriber problems.
func WithLogger(l *log.Logger) Option {
	return func(t *Tracker) { t.logger = l }
}

// Tracker owns the loaded state. It is safe for concurrent use.
type Tracker struct {
	parser   Parser
	enricher Enricher
	store    Store
	name     string
	now      func() time.Time
	logger   *log.Logger

	mu          sync.RWMutex
	state       model.AppState
	day         string
	nextEventID int64
	nextSubID   int
	subs        map[int]chan<- Event
}

// New loads the state and returns a Tracker.
func New(store Store, parser Parser, enricher Enricher, opts ...Option) (*Tracker, error) {
	t := &Tracker{
		parser:   parser,
		enricher: enricher,
		store:    store,
		name:     "selforge",
		now:      time.Now,
		subs:     make(map[int]chan<- Event),
	}
	for _, o := range opts {
		o(t)
	}

	st, err := store.Load(t.name)
	if err != nil {
		return nil, fmt.Errorf("loading state: %w", err)
	}
	t.state = st
	t.rollover(t.now())
	return t, nil
}

// rollover makes sure today's record exists and the streak reflects the
// current date. Callers must hold mu for writing.
func (t *Tracker) rollover(now time.Time) string {
	date := now.Format(model.DateLayout)
	if date != t.day {
		t.state = streak.Apply(ledger.Touch(t.state, date), now)
		t.day = date
	}
	return date
}

// mutate runs fn on today's record, recomputes the streak, saves, and
// publishes an event. The in-memory state only changes if the save
// succeeds.
func (t *Tracker) mutate(eventType string, fn func(s model.AppState, date string) (model.AppState, error)) (model.AppState, string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	date := t.rollover(now)

	next, err := fn(t.state, date)
	if err != nil {
		return t.state, date, err
	}
	next = streak.Apply(next, now)
	if err := t.store.Save(t.name, next); err != nil {
		return t.state, date, fmt.Errorf("saving state: %w", err)
	}
	t.state = next

	t.nextEventID++
	t.publish(Event{
		ID:        t.nextEventID,
		Type:      eventType,
		Timestamp: now,
		Streak:    next.CurrentStreak,
		Today:     pipeline.SummarizeDate(next, date),
	})
	return next, date, nil
}

// publish delivers ev without blocking. Slow subscribers miss events.
// Callers must hold mu.
func (t *Tracker) publish(ev Event) {
	for id, ch := range t.subs {
		select {
		case ch <- ev:
		default:
			if t.logger != nil {
				t.logger.Printf("subscriber %d is full, dropped event %d", id, ev.ID)
			}
		}
	}
}

// Subscribe registers ch for change events and returns its ID.
func (t *Tracker) Subscribe(ch chan<- Event) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextSubID++
	id := t.nextSubID
	t.subs[id] = ch
	return id
}

// Unsubscribe removes a subscriber.
func (t *Tracker) Unsubscribe(id int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.subs, id)
}

// Snapshot returns an event describing the current state without
// publishing it.
func (t *Tracker) Snapshot() Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	date := t.rollover(now)
	return Event{
		ID:        t.nextEventID,
		Type:      EventSnapshot,
		Timestamp: now,
		Streak:    t.state.CurrentStreak,
		Today:     pipeline.SummarizeDate(t.state, date),
	}
}

// Preview parses and enriches text without recording it.
func (t *Tracker) Preview(ctx context.Context, text string) model.EnrichedEntry {
	return t.enricher.Enrich(ctx, t.parser.Parse(ctx, text))
}

// LogText parses, enriches and records text on today's date. Food with
// several items is recorded in one step. Unknown text returns an error
// wrapping ErrUnrecognized that carries the diagnostic summary; nothing is
// written. A cancelled ctx discards the enriched result.
func (t *Tracker) LogText(ctx context.Context, text string) (Result, error) {
	enriched := t.Preview(ctx, text)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if enriched.Kind == model.KindUnknown {
		return Result{Entry: enriched}, fmt.Errorf("%w: %s", ErrUnrecognized, enriched.Summary)
	}
	return t.record(enriched)
}

// AddFood records a single food from a structured form. unit may be
// empty; it is resolved by the portion estimator.
func (t *Tracker) AddFood(ctx context.Context, name string, quantity float64, unit string) (Result, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Result{}, fmt.Errorf("%w: food name is required", ErrInvalid)
	}
	p := portion.Estimate(quantity, unit, name)
	entry, err := model.NewParsedFood([]model.ParsedFoodItem{{
		Name:            name,
		QuantityGrams:   p.Grams,
		DisplayQuantity: p.DisplayUnit,
		OriginalText:    strings.TrimSpace(p.DisplayUnit + " " + name),
	}})
	if err != nil {
		return Result{}, err
	}
	return t.enrichAndRecord(ctx, entry)
}

// AddGym records a strength exercise from a structured form.
func (t *Tracker) AddGym(ctx context.Context, g model.ParsedGym) (Result, error) {
	if strings.TrimSpace(g.ExerciseName) == "" || g.Sets <= 0 || g.Reps <= 0 {
		return Result{}, fmt.Errorf("%w: exercise, sets and reps are required", ErrInvalid)
	}
	g.WeightKg = max(g.WeightKg, 0)
	return t.enrichAndRecord(ctx, g)
}

// AddCardio records a cardio activity from a structured form.
func (t *Tracker) AddCardio(ctx context.Context, c model.ParsedCardio) (Result, error) {
	if strings.TrimSpace(c.ActivityType) == "" || c.DurationMinutes <= 0 {
		return Result{}, fmt.Errorf("%w: activity and a positive duration are required", ErrInvalid)
	}
	return t.enrichAndRecord(ctx, c)
}

func (t *Tracker) enrichAndRecord(ctx context.Context, entry model.ParsedEntry) (Result, error) {
	enriched := t.enricher.Enrich(ctx, entry)
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	return t.record(enriched)
}

func (t *Tracker) record(enriched model.EnrichedEntry) (Result, error) {
	eventType := EventActivity
	if enriched.Kind == model.KindFood {
		eventType = EventFood
	}

	var applied ledger.Applied
	next, date, err := t.mutate(eventType, func(s model.AppState, date string) (model.AppState, error) {
		var err error
		s, applied, err = ledger.ApplyEnriched(s, date, enriched)
		if errors.Is(err, ledger.ErrUnrecognized) {
			return s, fmt.Errorf("%w: %s", ErrUnrecognized, enriched.Summary)
		}
		return s, err
	})
	if err != nil {
		return Result{Entry: enriched}, err
	}
	return Result{
		Entry:    enriched,
		Food:     applied.Food,
		Activity: applied.Activity,
		Today:    pipeline.SummarizeDate(next, date),
	}, nil
}

// AddStudyTopic adds a topic to today's plan.
func (t *Tracker) AddStudyTopic(subject, chapter string, status model.StudyStatus) (model.StudyTopic, error) {
	if strings.TrimSpace(subject) == "" {
		return model.StudyTopic{}, fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	var added model.StudyTopic
	_, _, err := t.mutate(EventStudy, func(s model.AppState, date string) (model.AppState, error) {
		s, added = ledger.AddStudyTopic(s, date, model.StudyTopic{Subject: subject, Chapter: chapter, Status: status})
		return s, nil
	})
	return added, err
}

// SetStudyStatus changes the status of one of today's topics.
func (t *Tracker) SetStudyStatus(id string, status model.StudyStatus) error {
	return t.updateStudy(id, func(s model.AppState, date string) (model.AppState, bool) {
		return ledger.SetStudyStatus(s, date, id, status)
	})
}

// RenameStudyTopic changes a topic's subject and chapter. Empty values
// leave the field unchanged.
func (t *Tracker) RenameStudyTopic(id, subject, chapter string) error {
	return t.updateStudy(id, func(s model.AppState, date string) (model.AppState, bool) {
		return ledger.UpdateStudyTopic(s, date, id, func(tp *model.StudyTopic) {
			if v := strings.TrimSpace(subject); v != "" {
				tp.Subject = v
			}
			if v := strings.TrimSpace(chapter); v != "" {
				tp.Chapter = v
			}
		})
	})
}

// DeleteStudyTopic removes one of today's topics.
func (t *Tracker) DeleteStudyTopic(id string) error {
	return t.updateStudy(id, func(s model.AppState, date string) (model.AppState, bool) {
		return ledger.DeleteStudyTopic(s, date, id)
	})
}

func (t *Tracker) updateStudy(id string, fn func(s model.AppState, date string) (model.AppState, bool)) error {
	_, _, err := t.mutate(EventStudy, func(s model.AppState, date string) (model.AppState, error) {
		next, ok := fn(s, date)
		if !ok {
			return s, fmt.Errorf("%w: study topic %s", ErrNotFound, id)
		}
		return next, nil
	})
	return err
}

// ToggleGoal sets a goal by hand for today.
func (t *Tracker) ToggleGoal(key model.GoalKey, completed bool) (model.DailyData, error) {
	next, date, err := t.mutate(EventGoal, func(s model.AppState, date string) (model.AppState, error) {
		return ledger.ToggleGoal(s, date, key, completed), nil
	})
	return next.DailyData[date], err
}

// SetWentToSchool records today's school attendance.
func (t *Tracker) SetWentToSchool(went bool) (model.DailyData, error) {
	next, date, err := t.mutate(EventSchool, func(s model.AppState, date string) (model.AppState, error) {
		return ledger.SetWentToSchool(s, date, went), nil
	})
	return next.DailyData[date], err
}

// SetProfile stores the user's profile and marks onboarding complete. The
// first call also starts the result countdowns.
func (t *Tracker) SetProfile(p model.Profile) error {
	_, _, err := t.mutate(EventProfile, func(s model.AppState, _ string) (model.AppState, error) {
		s.Profile = p
		return ledger.MarkStarted(s, t.now()), nil
	})
	return err
}

// AddProtocolSession records a timed focus session ending now.
func (t *Tracker) AddProtocolSession(subject, topic string, duration time.Duration) (model.ProtocolSession, error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return model.ProtocolSession{}, fmt.Errorf("%w: subject is required", ErrInvalid)
	}
	if duration < time.Second {
		return model.ProtocolSession{}, fmt.Errorf("%w: duration must be at least one second", ErrInvalid)
	}
	var added model.ProtocolSession
	_, _, err := t.mutate(EventFocus, func(s model.AppState, _ string) (model.AppState, error) {
		s, added = ledger.AddProtocolSession(s, model.ProtocolSession{
			Subject:         subject,
			Topic:           strings.TrimSpace(topic),
			DurationSeconds: int(duration / time.Second),
		}, t.now())
		return s, nil
	})
	return added, err
}

// SetMeasurements updates the weekly or monthly measurement set and returns
// the result.
func (t *Tracker) SetMeasurements(period model.MeasurementPeriod, u model.MeasurementUpdate) (model.BodyMeasurements, error) {
	if period != model.MeasureWeekly && period != model.MeasureMonthly {
		return model.BodyMeasurements{}, fmt.Errorf("%w: unknown period %q", ErrInvalid, period)
	}
	if err := u.Validate(); err != nil {
		return model.BodyMeasurements{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	next, _, err := t.mutate(EventMeasure, func(s model.AppState, _ string) (model.AppState, error) {
		return ledger.SetMeasurements(s, period, u), nil
	})
	if err != nil {
		return model.BodyMeasurements{}, err
	}
	return next.Measurements(period), nil
}

// BodyWeightKg returns the latest measured weight, or 0 when none was
// recorded.
func (t *Tracker) BodyWeightKg() float64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.MeasuredWeightKg()
}

// Countdown returns the days left in the current result cycles.
func (t *Tracker) Countdown() model.Countdown {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return pipeline.Countdowns(t.state.UserStartTimestamp, t.now())
}

// Import merges a previously exported state into the ledger. Dates that
// already have a record are left alone.
func (t *Tracker) Import(incoming model.AppState) (ledger.MergeStats, error) {
	var stats ledger.MergeStats
	_, _, err := t.mutate(EventImport, func(s model.AppState, _ string) (model.AppState, error) {
		s, stats = ledger.Merge(s, incoming)
		return s, nil
	})
	return stats, err
}

// Today returns today's record.
func (t *Tracker) Today() model.DailyData {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.DailyData[t.rollover(t.now())]
}

// Day returns the record for date. ok is false when nothing was recorded.
func (t *Tracker) Day(date string) (model.DailyData, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.state.Day(date)
}

// Days summarizes the last n days, most recent first.
func (t *Tracker) Days(n int) []model.DaySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	t.rollover(now)
	since, until := pipeline.DateRange(now, n)
	return pipeline.SummarizeDays(t.state, since, until)
}

// State returns the current state. The maps and slices it holds are never
// mutated after being returned.
func (t *Tracker) State() model.AppState {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rollover(t.now())
	return t.state
}
