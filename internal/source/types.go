package source

import (
	"encoding/json"
	"time"
)

// PersistKey is the storage key the browser app persists its state under.
const PersistKey = "axiom-app-storage"

// Envelope is the persisted wrapper written by the browser app: the state
// document plus the schema version it was written at.
type Envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// DiscoveredFile is a backup file found during directory scanning.
type DiscoveredFile struct {
	Path    string
	ModTime time.Time
	Size    int64
}
