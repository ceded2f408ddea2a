package srs

import (
	"time"

	"github.com/hakseup/topik-api/internal/domain"
)

// Service defines the interface for scheduling operations.
type Service interface {
	// Grade computes the next mastery record for one grading. A nil record
	// means the item has never been graded. The returned record is a new
	// instance; the input is never modified. Returns
	// domain.ErrInvalidQuality if the quality value is outside the closed
	// set.
	Grade(
		record *domain.MasteryRecord,
		quality domain.Quality,
		now time.Time,
	) (*domain.MasteryRecord, error)
}

// defaultService is the standard implementation of the Service interface.
type defaultService struct {
	params *Params
}

// NewDefaultService creates a scheduling service with default parameters.
func NewDefaultService() Service {
	return &defaultService{params: DefaultParams()}
}

// NewServiceWithParams creates a scheduling service with custom parameters.
func NewServiceWithParams(params *Params) Service {
	return &defaultService{params: params}
}

// Grade implements the Service interface.
func (s *defaultService) Grade(
	record *domain.MasteryRecord,
	quality domain.Quality,
	now time.Time,
) (*domain.MasteryRecord, error) {
	if !quality.Valid() {
		return nil, domain.ErrInvalidQuality
	}

	return gradeRecord(record, quality, now, s.params), nil
}
