package store

import (
	"errors"
	"sync"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
)

// ErrNotFound reports that neither a saved nor a default formatter exists for
// a screen code. Defaults ship with every valid code, so hitting this at
// runtime means a broken deployment rather than a normal miss.
var ErrNotFound = errors.New("store: formatter not found")

// Save actions reported back in the response contract.
const (
	ActionCreate = "create"
	ActionUpdate = "update"
)

// SaveResult reports the outcome of a formatter write.
type SaveResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action"`
}

// Store persists formatter documents keyed by screen code and user. The
// "default" user holds the shared per-code configuration.
type Store interface {
	Exists(code, userID string) (bool, error)
	Read(code, userID string) (formatter.Document, error)
	Write(code, userID string, doc formatter.Document) (SaveResult, error)
}

// Memory is an in-process Store used by tests and previews.
type Memory struct {
	mu   sync.RWMutex
	docs map[string]formatter.Document
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string]formatter.Document)}
}

func memoryKey(code, userID string) string {
	return code + "\x00" + userID
}

func (m *Memory) Exists(code, userID string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.docs[memoryKey(code, userID)]
	return ok, nil
}

func (m *Memory) Read(code, userID string) (formatter.Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	doc, ok := m.docs[memoryKey(code, userID)]
	if !ok {
		return formatter.Document{}, ErrNotFound
	}
	return doc, nil
}

func (m *Memory) Write(code, userID string, doc formatter.Document) (SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := memoryKey(code, userID)
	action := ActionCreate
	if _, ok := m.docs[key]; ok {
		action = ActionUpdate
	}
	m.docs[key] = doc
	return SaveResult{Success: true, Action: action}, nil
}
