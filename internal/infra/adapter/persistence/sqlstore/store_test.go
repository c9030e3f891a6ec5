package sqlstore_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"

	"briefly/internal/domain/entity"
	"briefly/internal/infra/adapter/persistence/sqlstore"
)

var columns = []string{
	"id", "user_id", "input_type", "source", "summary",
	"key_points", "summary_length", "language", "created_at",
}

func sampleRecord() *entity.SummaryRecord {
	return &entity.SummaryRecord{
		ID:        uuid.MustParse("5b0c7a3e-0a62-4d1e-9c55-7f2d6f1a9b10"),
		UserID:    "user-1",
		InputType: entity.InputTypeRawText,
		Source:    entity.RawTextSourceLabel,
		Summary:   "Cats are great pets.",
		KeyPoints: []string{"Dogs are loyal", "Birds sing", "Fish swim"},
		Length:    entity.SummaryLengthShort,
		Language:  entity.LanguageEnglish,
		CreatedAt: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC),
	}
}

/* ──────────────────────────────── Save ──────────────────────────────── */

func TestStore_Save_Postgres(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rec := sampleRecord()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO summaries (id,user_id,input_type,source,summary,key_points,summary_length,language,created_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`)).
		WithArgs(rec.ID.String(), "user-1", "raw_text", "Text input", "Cats are great pets.",
			`["Dogs are loyal","Birds sing","Fish swim"]`, "short", "en", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := sqlstore.New(db, sq.Dollar)
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Save_SQLitePlaceholders(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectExec(regexp.QuoteMeta(`VALUES (?,?,?,?,?,?,?,?,?)`)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := sqlstore.New(db, sq.Question)
	if err := store.Save(context.Background(), sampleRecord()); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Save_AnonymousStoresNullUser(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rec := sampleRecord()
	rec.UserID = ""
	mock.ExpectExec(`INSERT INTO summaries`).
		WithArgs(sqlmock.AnyArg(), nil, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	store := sqlstore.New(db, sq.Dollar)
	if err := store.Save(context.Background(), rec); err != nil {
		t.Fatalf("Save err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Save_Error(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	boom := errors.New("connection reset")
	mock.ExpectExec(`INSERT INTO summaries`).WillReturnError(boom)

	store := sqlstore.New(db, sq.Dollar)
	err := store.Save(context.Background(), sampleRecord())
	if !errors.Is(err, boom) {
		t.Fatalf("want %v, got %v", boom, err)
	}
}

/* ──────────────────────────────── ListByUser ──────────────────────────────── */

func TestStore_ListByUser(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	want := sampleRecord()
	older := sampleRecord()
	older.ID = uuid.MustParse("0e7f1c2a-3b4d-4e5f-8a9b-0c1d2e3f4a5b")
	older.InputType = entity.InputTypeVideoReference
	older.Source = "https://youtu.be/dQw4w9WgXcQ"
	older.CreatedAt = want.CreatedAt.Add(-time.Hour)

	rows := sqlmock.NewRows(columns).
		AddRow(want.ID.String(), want.UserID, "raw_text", want.Source, want.Summary,
			[]byte(`["Dogs are loyal","Birds sing","Fish swim"]`), "short", "en", want.CreatedAt).
		AddRow(older.ID.String(), older.UserID, "video_reference", older.Source, older.Summary,
			[]byte(`["Dogs are loyal","Birds sing","Fish swim"]`), "short", "en", older.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, user_id, input_type, source, summary, key_points, summary_length, language, created_at FROM summaries WHERE user_id = $1 ORDER BY created_at DESC, id DESC LIMIT 5`)).
		WithArgs("user-1").
		WillReturnRows(rows)

	store := sqlstore.New(db, sq.Dollar)
	got, err := store.ListByUser(context.Background(), "user-1", 5)
	if err != nil {
		t.Fatalf("ListByUser err=%v", err)
	}
	if diff := cmp.Diff([]*entity.SummaryRecord{want, older}, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_ListByUser_ClampsLimit(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`LIMIT 100`).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(columns))

	store := sqlstore.New(db, sq.Dollar)
	got, err := store.ListByUser(context.Background(), "user-1", 5000)
	if err != nil {
		t.Fatalf("ListByUser err=%v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %#v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_ListByUser_BadKeyPoints(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rec := sampleRecord()
	mock.ExpectQuery(`FROM summaries`).
		WillReturnRows(sqlmock.NewRows(columns).AddRow(
			rec.ID.String(), rec.UserID, "raw_text", rec.Source, rec.Summary,
			[]byte(`not json`), "short", "en", rec.CreatedAt))

	store := sqlstore.New(db, sq.Dollar)
	if _, err := store.ListByUser(context.Background(), "user-1", 10); err == nil {
		t.Fatal("expected error for malformed key_points")
	}
}

/* ──────────────────────────────── DeleteOlderThan ──────────────────────────────── */

func TestStore_DeleteOlderThan(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	cutoff := time.Date(2026, 9, 18, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM summaries WHERE created_at < $1`)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 7))

	store := sqlstore.New(db, sq.Dollar)
	n, err := store.DeleteOlderThan(context.Background(), cutoff)
	if err != nil {
		t.Fatalf("DeleteOlderThan err=%v", err)
	}
	if n != 7 {
		t.Fatalf("want 7 removed, got %d", n)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ──────────────────────────────── Ping ──────────────────────────────── */

func TestStore_Ping(t *testing.T) {
	db, mock, _ := sqlmock.New(sqlmock.MonitorPingsOption(true))
	defer func() { _ = db.Close() }()

	mock.ExpectPing()

	store := sqlstore.New(db, sq.Dollar)
	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("Ping err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestStore_Breaker(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	store := sqlstore.New(db, sq.Question)
	if got := store.Breaker().Name(); got != "database" {
		t.Fatalf("Breaker().Name()=%q, want database", got)
	}
	if store.Breaker().IsOpen() {
		t.Fatal("new store breaker should be closed")
	}
}
