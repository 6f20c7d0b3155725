package store

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// ManagerOption customises a Manager.
type ManagerOption func(*Manager)

// WithLogger attaches a structured logger; the default discards everything.
func WithLogger(logger zerolog.Logger) ManagerOption {
	return func(m *Manager) {
		m.log = logger
	}
}

// Manager applies the load and save policy on top of a Store and the shipped
// defaults. It holds no per-request state; one Manager serves a process.
type Manager struct {
	store    Store
	defaults *Defaults
	log      zerolog.Logger
}

// NewManager wires a Manager. Both collaborators are required.
func NewManager(s Store, defaults *Defaults, options ...ManagerOption) *Manager {
	m := &Manager{
		store:    s,
		defaults: defaults,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Load resolves the formatter for (code, userID): the stored record when one
// exists, the shipped default otherwise. The returned document's Source tag
// records which path was taken.
func (m *Manager) Load(code, userID string) (formatter.Document, error) {
	exists, err := m.store.Exists(code, userID)
	if err != nil {
		return formatter.Document{}, fmt.Errorf("store: check formatter %s/%s: %w", code, userID, err)
	}

	if exists {
		doc, err := m.store.Read(code, userID)
		if err != nil {
			return formatter.Document{}, fmt.Errorf("store: read formatter %s/%s: %w", code, userID, err)
		}
		doc.Source = formatter.SourceDatabase
		m.log.Debug().Str("code", code).Str("user", userID).Str("source", string(doc.Source)).Msg("formatter loaded")
		return doc, nil
	}

	doc, err := m.defaults.Load(code)
	if err != nil {
		return formatter.Document{}, err
	}
	m.log.Debug().Str("code", code).Str("user", userID).Str("source", string(doc.Source)).Msg("formatter loaded")
	return doc, nil
}

// Save writes the document for (code, userID), choosing create or update by
// prior existence. There is no concurrent-write protection: assuming one
// editor per (code, user), the last writer wins.
func (m *Manager) Save(code, userID string, doc formatter.Document) (SaveResult, error) {
	result, err := m.store.Write(code, userID, doc)
	if err != nil {
		m.log.Error().Err(err).Str("code", code).Str("user", userID).Msg("formatter save failed")
		return SaveResult{Success: false, Action: result.Action}, fmt.Errorf("store: write formatter %s/%s: %w", code, userID, err)
	}
	m.log.Info().Str("code", code).Str("user", userID).Str("action", result.Action).Msg("formatter saved")
	return result, nil
}
