package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/stayscout/hotel-search-api/internal/entity"
)

// historyListLimit bounds how many past searches are returned per user.
const historyListLimit = 50

// HistoryRepository declares persistence operations for search history.
type HistoryRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.SearchRecord, error)
	Add(ctx context.Context, record *entity.SearchRecord) (*entity.SearchRecord, error)
}

// PGXHistoryRepository implements HistoryRepository with pgx.
type PGXHistoryRepository struct {
	pool pgxPool
}

// NewPGXHistoryRepository instantiates a history repository.
func NewPGXHistoryRepository(pool *pgxpool.Pool) *PGXHistoryRepository {
	return &PGXHistoryRepository{pool: pool}
}

// ListByUser returns the user's recent searches, most recent first.
func (r *PGXHistoryRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.SearchRecord, error) {
	rows, err := r.pool.Query(ctx, `
        SELECT id, user_id, city, check_in, check_out, adults, budget, min_rating, created_at
        FROM search_history WHERE user_id = $1
        ORDER BY created_at DESC LIMIT $2
    `, userID, historyListLimit)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Add stores one search in the user's history.
func (r *PGXHistoryRepository) Add(ctx context.Context, record *entity.SearchRecord) (*entity.SearchRecord, error) {
	if record == nil {
		return nil, fmt.Errorf("history record is nil")
	}

	row := r.pool.QueryRow(ctx, `
        INSERT INTO search_history (user_id, city, check_in, check_out, adults, budget, min_rating)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, user_id, city, check_in, check_out, adults, budget, min_rating, created_at
    `, record.UserID, record.City, record.CheckIn, record.CheckOut, record.Adults, record.Budget, record.MinRating)

	var saved entity.SearchRecord
	if err := row.Scan(&saved.ID, &saved.UserID, &saved.City, &saved.CheckIn, &saved.CheckOut, &saved.Adults, &saved.Budget, &saved.MinRating, &saved.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert history: %w", err)
	}

	return &saved, nil
}

func scanRecords(rows pgx.Rows) ([]entity.SearchRecord, error) {
	var records []entity.SearchRecord
	for rows.Next() {
		var rec entity.SearchRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.City, &rec.CheckIn, &rec.CheckOut, &rec.Adults, &rec.Budget, &rec.MinRating, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return records, nil
}
