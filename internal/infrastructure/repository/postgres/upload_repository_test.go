package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/sweetykitty777/sentiment-analyzer/internal/core/domain"
)

func newUploadRepoWithMock(t *testing.T) (*UploadRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	return &UploadRepository{db: db}, mock, func() { _ = db.Close() }
}

func TestUploadCreateAssignsDenseEntryIDs(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	upload := &domain.Upload{
		Name:      "reviews.xlsx",
		Format:    domain.FormatSpreadsheet,
		Status:    domain.StatusPending,
		CreatedBy: "alice",
		CreatedAt: createdAt,
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO uploads").
		WithArgs("reviews.xlsx", "spreadsheet", "pending", "alice", createdAt).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectExec("INSERT INTO upload_entries").
		WithArgs(int64(7), 0, "good").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO upload_entries").
		WithArgs(int64(7), 1, "bad").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.Create(context.Background(), upload, []string{"good", "bad"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if upload.ID != 7 {
		t.Fatalf("expected assigned id 7, got %d", upload.ID)
	}
	if len(upload.Entries) != 2 || upload.Entries[0].ID != 0 || upload.Entries[1].ID != 1 {
		t.Fatalf("expected dense entry ids, got %+v", upload.Entries)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUploadGetByIDReturnsNotFound(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	mock.ExpectQuery("SELECT id, name, format, status, created_by, created_at").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUploadGetByIDLoadsEntriesWithSentiments(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	createdAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT id, name, format, status, created_by, created_at").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "format", "status", "created_by", "created_at"}).
			AddRow(int64(7), "reviews.xlsx", "spreadsheet", "ready", "alice", createdAt))
	mock.ExpectQuery("SELECT id, text, sentiment").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "text", "sentiment"}).
			AddRow(0, "good", "POSITIVE").
			AddRow(1, "pending text", nil))

	upload, err := repo.GetByID(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if len(upload.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(upload.Entries))
	}
	if upload.Entries[0].Sentiment == nil || *upload.Entries[0].Sentiment != domain.Positive {
		t.Fatalf("expected first entry POSITIVE, got %v", upload.Entries[0].Sentiment)
	}
	if upload.Entries[1].Sentiment != nil {
		t.Fatalf("expected unclassified second entry, got %v", *upload.Entries[1].Sentiment)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUploadDeleteReturnsNotFoundWhenNoRowsAffected(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	mock.ExpectExec("DELETE FROM uploads").
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), 99)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMarkProcessingGuardsTerminalStatus(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	// Guarded update matches nothing because the upload already finished;
	// the follow-up existence check turns that into a no-op.
	mock.ExpectExec("UPDATE uploads SET status").
		WithArgs(int64(7), "processing", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	if err := repo.MarkProcessing(context.Background(), 7); err != nil {
		t.Fatalf("MarkProcessing() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestMarkProcessingReturnsNotFound(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	mock.ExpectExec("UPDATE uploads SET status").
		WithArgs(int64(99), "processing", "pending").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

	err := repo.MarkProcessing(context.Background(), 99)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultsCommitsSentimentsAndStatus(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE upload_entries SET sentiment").
		WithArgs(int64(7), 0, "POSITIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE upload_entries SET sentiment").
		WithArgs(int64(7), 1, "NEGATIVE").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE uploads SET status").
		WithArgs(int64(7), "ready", "pending", "processing").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.SaveResults(context.Background(), 7, map[int]domain.Sentiment{
		0: domain.Positive,
		1: domain.Negative,
	}, domain.StatusReady)
	if err != nil {
		t.Fatalf("SaveResults() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestSaveResultsAbortsOnMissingEntry(t *testing.T) {
	repo, mock, done := newUploadRepoWithMock(t)
	defer done()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE upload_entries SET sentiment").
		WithArgs(int64(7), 0, "POSITIVE").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.SaveResults(context.Background(), 7, map[int]domain.Sentiment{
		0: domain.Positive,
	}, domain.StatusReady)
	if !domain.IsKind(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
