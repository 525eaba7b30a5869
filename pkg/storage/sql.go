package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type entry struct {
	Namespace string `gorm:"primaryKey;size:100"`
	Key       string `gorm:"column:storage_key;primaryKey;size:100"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (entry) TableName() string {
	return "client_storage"
}

// SQLStorage persists keys in a relational table through gorm.
type SQLStorage struct {
	db        *gorm.DB
	namespace string
}

func NewSQLStorage(db *gorm.DB, namespace string) (*SQLStorage, error) {
	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate client storage: %w", err)
	}
	return &SQLStorage{db: db, namespace: namespace}, nil
}

func (s *SQLStorage) Get(ctx context.Context, key string) (string, error) {
	var e entry
	err := s.db.WithContext(ctx).
		Where("namespace = ? AND storage_key = ?", s.namespace, key).
		First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return e.Value, nil
}

func (s *SQLStorage) Set(ctx context.Context, key, value string) error {
	e := entry{
		Namespace: s.namespace,
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "storage_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&e).Error
}

func (s *SQLStorage) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).
		Where("namespace = ? AND storage_key = ?", s.namespace, key).
		Delete(&entry{}).Error
}
