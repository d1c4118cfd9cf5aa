package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type stubHistoryRows struct {
	called bool
}

func (s *stubHistoryRows) Close()                                       {}
func (s *stubHistoryRows) Err() error                                   { return nil }
func (s *stubHistoryRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (s *stubHistoryRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (s *stubHistoryRows) Next() bool {
	if s.called {
		return false
	}
	s.called = true
	return true
}

func (s *stubHistoryRows) Scan(dest ...any) error {
	if !s.called {
		return errors.New("scan called before next")
	}
	budget := 200.0
	*dest[0].(*uuid.UUID) = uuid.MustParse("aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa")
	*dest[1].(*uuid.UUID) = uuid.MustParse("bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb")
	*dest[2].(*string) = "Bucharest"
	*dest[3].(*time.Time) = time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	*dest[4].(*time.Time) = time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC)
	*dest[5].(*int) = 2
	*dest[6].(**float64) = &budget
	*dest[7].(**float64) = nil
	*dest[8].(*time.Time) = time.Now()
	return nil
}

func (s *stubHistoryRows) Values() ([]any, error) { return nil, nil }
func (s *stubHistoryRows) RawValues() [][]byte    { return nil }
func (s *stubHistoryRows) Conn() *pgx.Conn        { return nil }

func TestScanRecords(t *testing.T) {
	records, err := scanRecords(&stubHistoryRows{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.City != "Bucharest" || rec.Adults != 2 {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.Budget == nil || *rec.Budget != 200.0 {
		t.Fatalf("expected budget 200, got %+v", rec.Budget)
	}
	if rec.MinRating != nil {
		t.Fatalf("expected nil min rating, got %v", *rec.MinRating)
	}
}

func TestPGXHistoryRepository_Add_Validation(t *testing.T) {
	repo := &PGXHistoryRepository{}
	if _, err := repo.Add(context.Background(), nil); err == nil {
		t.Fatalf("expected error for nil record")
	}
}
