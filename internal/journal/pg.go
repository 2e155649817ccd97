package journal

import (
	"context"
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// ErrNotFound indicates no journal record exists for the given id
var ErrNotFound = errors.New("submission not found")

type pgStore struct {
	db *gorm.DB
}

// NewPGStore opens a Postgres-backed journal and migrates its schema
func NewPGStore(dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&SubmissionRecord{}); err != nil {
		return nil, err
	}

	return &pgStore{db: db}, nil
}

// NewStoreWithDB wraps an existing gorm connection, used by tests
func NewStoreWithDB(db *gorm.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) RecordSubmitted(ctx context.Context, record *SubmissionRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *pgStore) MarkCommitted(ctx context.Context, id string, digest string) error {
	return s.transition(ctx, id, map[string]any{
		"status": StatusCommitted,
		"digest": digest,
	})
}

func (s *pgStore) MarkAborted(ctx context.Context, id string, reason string) error {
	return s.transition(ctx, id, map[string]any{
		"status": StatusAborted,
		"reason": reason,
	})
}

// transition applies an update only while the record is still pending
func (s *pgStore) transition(ctx context.Context, id string, updates map[string]any) error {
	result := s.db.WithContext(ctx).
		Model(&SubmissionRecord{}).
		Where("id = ? AND status = ?", id, StatusSubmitted).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *pgStore) GetSubmission(ctx context.Context, id string) (*SubmissionRecord, error) {
	var record SubmissionRecord
	err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

func (s *pgStore) ListSubmissions(ctx context.Context, sender string, limit int) ([]SubmissionRecord, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit)
	if sender != "" {
		query = query.Where("sender = ?", sender)
	}

	var records []SubmissionRecord
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
