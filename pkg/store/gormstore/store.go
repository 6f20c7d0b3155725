// Package gormstore persists formatter documents in a screen_formatters
// table through jinzhu/gorm. The caller owns the connection and its driver
// registration.
package gormstore

import (
	"fmt"

	"github.com/jinzhu/gorm"

	"github.com/goliatone/go-screenfmt/pkg/formatter"
	"github.com/goliatone/go-screenfmt/pkg/store"
)

// ScreenFormatter is the persisted record: one formatter document per screen
// code and user, stored as encoded JSON.
type ScreenFormatter struct {
	gorm.Model
	Code      string `gorm:"not null;unique_index:uidx_code_user"`
	UserID    string `gorm:"column:user_id;not null;unique_index:uidx_code_user"`
	Formatter string `gorm:"type:text;not null"`
}

// Store implements store.Store over a gorm connection.
type Store struct {
	db *gorm.DB
}

// New wraps an open connection. Migrate must have run before first use.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Migrate creates or updates the screen_formatters table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&ScreenFormatter{}).Error; err != nil {
		return fmt.Errorf("gormstore: migrate: %w", err)
	}
	return nil
}

func (s *Store) find(code, userID string) (*ScreenFormatter, error) {
	var record ScreenFormatter
	err := s.db.Where("code = ? AND user_id = ?", code, userID).First(&record).Error
	if gorm.IsRecordNotFoundError(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gormstore: find %s/%s: %w", code, userID, err)
	}
	return &record, nil
}

// Exists reports whether a formatter record is saved for (code, userID).
func (s *Store) Exists(code, userID string) (bool, error) {
	record, err := s.find(code, userID)
	if err != nil {
		return false, err
	}
	return record != nil, nil
}

// Read loads and decodes the stored document for (code, userID).
func (s *Store) Read(code, userID string) (formatter.Document, error) {
	record, err := s.find(code, userID)
	if err != nil {
		return formatter.Document{}, err
	}
	if record == nil {
		return formatter.Document{}, store.ErrNotFound
	}

	doc, err := formatter.Decode([]byte(record.Formatter))
	if err != nil {
		return formatter.Document{}, fmt.Errorf("gormstore: decode %s/%s: %w", code, userID, err)
	}
	return doc, nil
}

// Write encodes and persists the document, updating the existing record when
// one is present and creating it otherwise.
func (s *Store) Write(code, userID string, doc formatter.Document) (store.SaveResult, error) {
	encoded, err := formatter.Encode(doc)
	if err != nil {
		return store.SaveResult{}, fmt.Errorf("gormstore: encode %s/%s: %w", code, userID, err)
	}

	record, err := s.find(code, userID)
	if err != nil {
		return store.SaveResult{}, err
	}

	if record != nil {
		record.Formatter = string(encoded)
		if err := s.db.Save(record).Error; err != nil {
			return store.SaveResult{Action: store.ActionUpdate}, fmt.Errorf("gormstore: update %s/%s: %w", code, userID, err)
		}
		return store.SaveResult{Success: true, Action: store.ActionUpdate}, nil
	}

	created := ScreenFormatter{Code: code, UserID: userID, Formatter: string(encoded)}
	if err := s.db.Create(&created).Error; err != nil {
		return store.SaveResult{Action: store.ActionCreate}, fmt.Errorf("gormstore: create %s/%s: %w", code, userID, err)
	}
	return store.SaveResult{Success: true, Action: store.ActionCreate}, nil
}
