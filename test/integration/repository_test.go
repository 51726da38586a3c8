package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/eydelrivero/tuber/internal/domain"
	pgRepo "github.com/eydelrivero/tuber/internal/repository/postgres"
)

var testDB *pgRepo.DB

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := postgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:16-alpine"),
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	testDB, err = pgRepo.New(ctx, connStr)
	if err != nil {
		panic(err)
	}

	_, err = testDB.Pool.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS searches (
            id BIGSERIAL PRIMARY KEY,
            term TEXT NOT NULL,
            result_type TEXT NOT NULL DEFAULT 'video',
            max_results INT NOT NULL,
            total_results BIGINT NOT NULL,
            row_count INT NOT NULL,
            with_stats BOOLEAN NOT NULL DEFAULT false,
            executed_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        );
    `)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)

	os.Exit(code)
}

func TestSearchHistoryRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSearchHistoryRepo(testDB)

	rec := &domain.SearchRecord{
		Term:         "go generics",
		ResultType:   domain.TypeVideo,
		MaxResults:   25,
		TotalResults: 1200,
		RowCount:     25,
		WithStats:    true,
	}

	if err := repo.Create(ctx, rec); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if rec.ID == 0 {
		t.Error("Create() should populate the record id")
	}
	if rec.ExecutedAt.IsZero() {
		t.Error("Create() should populate the execution time")
	}

	records, err := repo.ListRecent(ctx, 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(records) == 0 {
		t.Fatal("ListRecent() returned no records")
	}
	got := records[0]
	if got.Term != "go generics" {
		t.Errorf("Term = %q, want 'go generics'", got.Term)
	}
	if got.ResultType != domain.TypeVideo {
		t.Errorf("ResultType = %v, want video", got.ResultType)
	}
	if !got.WithStats {
		t.Error("WithStats = false, want true")
	}
}

func TestSearchHistoryRepository_ListRecentOrder(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSearchHistoryRepo(testDB)

	for _, term := range []string{"first query", "second query"} {
		rec := &domain.SearchRecord{
			Term:       term,
			ResultType: domain.TypeVideo,
			MaxResults: 5,
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create(%q) error = %v", term, err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	records, err := repo.ListRecent(ctx, 2)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ListRecent() returned %d records, want 2", len(records))
	}
	if records[0].Term != "second query" {
		t.Errorf("newest record term = %q, want 'second query'", records[0].Term)
	}
}

func TestSearchHistoryRepository_CountByTerm(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSearchHistoryRepo(testDB)

	for i := 0; i < 3; i++ {
		rec := &domain.SearchRecord{
			Term:       "repeated term",
			ResultType: domain.TypeChannel,
			MaxResults: 10,
		}
		if err := repo.Create(ctx, rec); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	count, err := repo.CountByTerm(ctx, "repeated term")
	if err != nil {
		t.Fatalf("CountByTerm() error = %v", err)
	}
	if count != 3 {
		t.Errorf("CountByTerm() = %d, want 3", count)
	}

	count, err = repo.CountByTerm(ctx, "never searched")
	if err != nil {
		t.Fatalf("CountByTerm() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountByTerm() = %d, want 0", count)
	}
}
