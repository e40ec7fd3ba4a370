// Package source reads state backups exported from the browser app or
// from another selforge store.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/theirongolddev/selforge/internal/model"
	"github.com/theirongolddev/selforge/internal/store"
)

// ErrNotBackup is returned when a document has no recognizable state.
var ErrNotBackup = errors.New("source: not a state backup")

// ParseResult holds the decoded state of one backup.
type ParseResult struct {
	State model.AppState
	// Version is the schema version the backup was written at.
	Version int
	Err     error
}

// ParseFile reads a backup file. See Parse for the accepted shapes.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()
	return Parse(f)
}

// Parse decodes a backup and migrates it to the current schema. Three
// shapes are accepted:
//   - the persisted envelope {"state": {...}, "version": n}
//   - a localStorage dump {"axiom-app-storage": "<envelope as a string>"}
//   - a bare state document, as written by the store
func Parse(r io.Reader) ParseResult {
	data, err := io.ReadAll(io.LimitReader(r, maxBackupBytes))
	if err != nil {
		return ParseResult{Err: err}
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '{' {
		return ParseResult{Err: ErrNotBackup}
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding backup: %w", err)}
	}

	if raw, ok := top[PersistKey]; ok {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return ParseResult{Err: fmt.Errorf("decoding %s: %w", PersistKey, err)}
		}
		data = []byte(inner)
		top = nil
		if err := json.Unmarshal(data, &top); err != nil {
			return ParseResult{Err: fmt.Errorf("decoding %s: %w", PersistKey, err)}
		}
	}

	version := 1
	state, isEnvelope := top["state"]
	switch {
	case isEnvelope:
		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			return ParseResult{Err: fmt.Errorf("decoding envelope: %w", err)}
		}
		data = state
		version = max(env.Version, 1)
	case top["dailyData"] == nil:
		return ParseResult{Err: ErrNotBackup}
	default:
		if v, ok := top["version"]; ok {
			_ = json.Unmarshal(v, &version)
		}
		version = max(version, 1)
	}

	st, err := store.Decode(data, version)
	if err != nil {
		return ParseResult{Err: err}
	}
	return ParseResult{State: st, Version: version}
}
