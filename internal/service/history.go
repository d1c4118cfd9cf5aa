package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/stayscout/hotel-search-api/internal/entity"
	"github.com/stayscout/hotel-search-api/internal/repository"
)

// HistoryService manages a user's past searches.
type HistoryService struct {
	history repository.HistoryRepository
}

// NewHistoryService instantiates a history service.
func NewHistoryService(history repository.HistoryRepository) *HistoryService {
	return &HistoryService{history: history}
}

// List returns the user's recent searches, most recent first.
func (s *HistoryService) List(ctx context.Context, userID uuid.UUID) ([]entity.SearchRecord, error) {
	return s.history.ListByUser(ctx, userID)
}

// Record stores one executed search in the user's history.
func (s *HistoryService) Record(ctx context.Context, record *entity.SearchRecord) (*entity.SearchRecord, error) {
	return s.history.Add(ctx, record)
}
