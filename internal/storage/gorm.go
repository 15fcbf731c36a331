package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Entry is one row of the kv_entries table.
type Entry struct {
	Key       string    `gorm:"primaryKey;column:key"`
	Value     []byte    `gorm:"column:value"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

// TableName sets the table name for GORM.
func (Entry) TableName() string { return "kv_entries" }

// gormStore persists key-value entries through GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a Store backed by the given GORM database.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Get returns the value for key, or (nil, nil) when the key is absent.
func (s *gormStore) Get(key string) ([]byte, error) {
	var entry Entry
	if err := s.db.First(&entry, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return entry.Value, nil
}

// Set replaces the value for key, inserting the row if needed.
func (s *gormStore) Set(key string, value []byte) error {
	entry := Entry{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		UpdateAll: true,
	}).Create(&entry).Error
}
