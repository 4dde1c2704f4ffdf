package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"
)

// SlotEntryModel is the row a SQLiteSlot keeps its value in.
type SlotEntryModel struct {
	Key       string `gorm:"column:slot_key;primaryKey;type:varchar(128)"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (SlotEntryModel) TableName() string {
	return "session_slots"
}

// SQLiteSlot stores the value in a local SQLite database through GORM.
type SQLiteSlot struct {
	db  *gorm.DB
	key string
}

// NewSQLiteSlot opens (and migrates) the database at path.
func NewSQLiteSlot(path, key string) (*SQLiteSlot, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	return NewSQLiteSlotWithDB(db, key)
}

// NewSQLiteSlotWithDB creates a slot over an existing connection.
func NewSQLiteSlotWithDB(db *gorm.DB, key string) (*SQLiteSlot, error) {
	if err := db.AutoMigrate(&SlotEntryModel{}); err != nil {
		return nil, fmt.Errorf("migrating session database: %w", err)
	}
	return &SQLiteSlot{db: db, key: key}, nil
}

func (s *SQLiteSlot) Load(ctx context.Context) (string, error) {
	var entry SlotEntryModel
	err := s.db.WithContext(ctx).Where("slot_key = ?", s.key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("loading session: %w", err)
	}
	return entry.Value, nil
}

func (s *SQLiteSlot) Save(ctx context.Context, value string) error {
	entry := SlotEntryModel{Key: s.key, Value: value}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slot_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

func (s *SQLiteSlot) Clear(ctx context.Context) error {
	if err := s.db.WithContext(ctx).Where("slot_key = ?", s.key).Delete(&SlotEntryModel{}).Error; err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLiteSlot) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
