// Package store persists the application state in SQLite as a versioned
// JSON document.
package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/theirongolddev/selforge/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// DefaultName is the row key for the application state.
const DefaultName = "selforge"

// ErrNewerVersion is returned when the stored state was written by a newer
// schema than this build understands.
var ErrNewerVersion = errors.New("store: state written by a newer version")

// Store provides SQLite-backed state persistence.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating store dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening store db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Load reads and migrates the named state. A missing row yields a fresh
// state at CurrentVersion.
func (s *Store) Load(name string) (model.AppState, error) {
	var version int
	var payload string
	err := s.db.QueryRow("SELECT version, payload FROM app_state WHERE name = ?", name).Scan(&version, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return model.NewAppState(CurrentVersion), nil
	}
	if err != nil {
		return model.AppState{}, fmt.Errorf("loading state: %w", err)
	}
	return Decode([]byte(payload), version)
}

// Save writes the state at CurrentVersion.
func (s *Store) Save(name string, st model.AppState) error {
	st.Version = CurrentVersion
	payload, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(`INSERT OR REPLACE INTO app_state (name, version, payload, saved_at)
		VALUES (?, ?, ?, ?)`, name, CurrentVersion, string(payload), now)
	if err != nil {
		return fmt.Errorf("saving state: %w", err)
	}
	return nil
}

// SavedAt returns when the named state was last written. ok is false when
// nothing has been saved.
func (s *Store) SavedAt(name string) (t time.Time, ok bool, err error) {
	var raw string
	err = s.db.QueryRow("SELECT saved_at FROM app_state WHERE name = ?", name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, err
	}
	t, err = time.Parse(time.RFC3339, raw)
	return t, err == nil, err
}

// Decode migrates a raw JSON document from version to CurrentVersion and
// decodes it. A version of zero or less is read from the document itself,
// defaulting to 1.
func Decode(data []byte, version int) (model.AppState, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return model.AppState{}, fmt.Errorf("decoding state: %w", err)
	}
	if raw == nil {
		raw = map[string]any{}
	}
	if version <= 0 {
		version = 1
		if v, ok := raw["version"].(float64); ok && v >= 1 {
			version = int(v)
		}
	}
	if version > CurrentVersion {
		return model.AppState{}, fmt.Errorf("%w: %d > %d", ErrNewerVersion, version, CurrentVersion)
	}

	Migrate(raw, version)

	migrated, err := json.Marshal(raw)
	if err != nil {
		return model.AppState{}, fmt.Errorf("re-encoding state: %w", err)
	}
	st := model.NewAppState(CurrentVersion)
	if err := json.Unmarshal(migrated, &st); err != nil {
		return model.AppState{}, fmt.Errorf("decoding migrated state: %w", err)
	}
	return normalize(st), nil
}

// Migrate upgrades raw in place from version to CurrentVersion and
// rewrites legacy key spellings.
func Migrate(raw map[string]any, from int) {
	for v := max(from, 1); v < CurrentVersion; v++ {
		migrations[v-1](raw)
	}
	canonicalize(raw)
	raw["version"] = CurrentVersion
}

// normalize fills nil collections so callers never see null slices.
func normalize(st model.AppState) model.AppState {
	st.Version = CurrentVersion
	if st.DailyData == nil {
		st.DailyData = map[string]model.DailyData{}
	}
	if st.StreakHistory == nil {
		st.StreakHistory = []model.StreakHistoryEntry{}
	}
	if st.ProtocolSessions == nil {
		st.ProtocolSessions = []model.ProtocolSession{}
	}
	for k, d := range st.DailyData {
		if d.Date == "" {
			d.Date = k
		}
		if d.StudyTopics == nil {
			d.StudyTopics = []model.StudyTopic{}
		}
		if d.GymActivities == nil {
			d.GymActivities = []model.GymActivity{}
		}
		if d.FoodEntries == nil {
			d.FoodEntries = []model.FoodEntry{}
		}
		st.DailyData[k] = d
	}
	return st
}
