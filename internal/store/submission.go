package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/grandupright/quote-intake/internal/store/model"
	"gorm.io/gorm"
)

type Submission interface {
	Create(ctx context.Context, submission model.Submission) (*model.Submission, error)
	List(ctx context.Context) (model.SubmissionList, error)
	GetByJobReference(ctx context.Context, jobReference string) (*model.Submission, error)
}

type SubmissionStore struct {
	db *gorm.DB
}

// Make sure we conform to Submission interface
var _ Submission = (*SubmissionStore)(nil)

func NewSubmissionStore(db *gorm.DB) Submission {
	return &SubmissionStore{db: db}
}

func (s *SubmissionStore) Create(ctx context.Context, submission model.Submission) (*model.Submission, error) {
	result := s.getDB(ctx).Create(&submission)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("creating submission: %w", result.Error)
	}
	return &submission, nil
}

func (s *SubmissionStore) List(ctx context.Context) (model.SubmissionList, error) {
	var submissions model.SubmissionList
	result := s.getDB(ctx).Order("submitted_at").Find(&submissions)
	if result.Error != nil {
		return nil, result.Error
	}
	return submissions, nil
}

// GetByJobReference returns the newest submission carrying the reference.
// References can repeat under load, so the latest row wins.
func (s *SubmissionStore) GetByJobReference(ctx context.Context, jobReference string) (*model.Submission, error) {
	var submission model.Submission
	result := s.getDB(ctx).Order("submitted_at DESC").First(&submission, "job_reference = ?", jobReference)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("querying submission: %w", result.Error)
	}
	return &submission, nil
}

func (s *SubmissionStore) getDB(ctx context.Context) *gorm.DB {
	tx := FromContext(ctx)
	if tx != nil {
		return tx
	}
	return s.db
}
