package journal

import (
	"context"
	"time"
)

//go:generate mockgen -source=journal.go -destination=../mocks/journal.go -package=mocks -mock_names=Store=MockJournalStore

// Submission statuses. A record moves submitted -> committed or
// submitted -> aborted and never changes again.
const (
	StatusSubmitted = "submitted"
	StatusCommitted = "committed"
	StatusAborted   = "aborted"
)

// SubmissionRecord is one broadcast mutation as tracked in the journal
type SubmissionRecord struct {
	ID        string    `gorm:"primaryKey;size:26" json:"id"`
	Digest    string    `gorm:"index;size:64" json:"digest"`
	Kind      string    `gorm:"size:32" json:"kind"`
	Sender    string    `gorm:"index;size:66" json:"sender"`
	Status    string    `gorm:"size:16" json:"status"`
	Reason    string    `json:"reason,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (SubmissionRecord) TableName() string {
	return "submissions"
}

// Recorder appends submission lifecycle transitions. Failures here never
// gate the broadcast itself.
type Recorder interface {
	RecordSubmitted(ctx context.Context, record *SubmissionRecord) error
	MarkCommitted(ctx context.Context, id string, digest string) error
	MarkAborted(ctx context.Context, id string, reason string) error
}

// Store is the full journal surface used by the API layer
type Store interface {
	Recorder

	GetSubmission(ctx context.Context, id string) (*SubmissionRecord, error)
	ListSubmissions(ctx context.Context, sender string, limit int) ([]SubmissionRecord, error)
}
