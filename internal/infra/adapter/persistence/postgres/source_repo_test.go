package postgres_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"news-dashboard/internal/domain/entity"
	"news-dashboard/internal/infra/adapter/persistence/postgres"
)

var sourceColumns = []string{
	"id", "source_id", "name", "description", "url", "country", "language",
}

/* ─────────────────────────────── GetOrCreate ─────────────────────────────── */

func TestSourceRepo_GetOrCreate_Inserts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sources`)).
		WithArgs("bbc-news", "BBC News", "British Broadcasting",
			"https://bbc.co.uk", "gb", "en").
		WillReturnRows(sqlmock.NewRows(sourceColumns).AddRow(
			int64(10), "bbc-news", "BBC News", "British Broadcasting",
			"https://bbc.co.uk", "gb", "en"))

	repo := postgres.NewSourceRepo(db)
	got, err := repo.GetOrCreate(context.Background(), &entity.Source{
		SourceID: "bbc-news", Name: "BBC News", Description: "British Broadcasting",
		URL: "https://bbc.co.uk", Country: "gb", Language: "en",
	})
	if err != nil {
		t.Fatalf("GetOrCreate err=%v", err)
	}
	want := &entity.Source{
		ID: 10, SourceID: "bbc-news", Name: "BBC News",
		Description: "British Broadcasting", URL: "https://bbc.co.uk",
		Country: "gb", Language: "en",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestSourceRepo_GetOrCreate_ConflictFallsBackToSelect(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO sources`)).
		WillReturnRows(sqlmock.NewRows(sourceColumns))
	mock.ExpectQuery(`SELECT .+ FROM sources WHERE source_id`).
		WithArgs("unknown").
		WillReturnRows(sqlmock.NewRows(sourceColumns).AddRow(
			int64(1), "unknown", "Unknown", "", "", "", ""))

	repo := postgres.NewSourceRepo(db)
	got, err := repo.GetOrCreate(context.Background(), &entity.Source{
		SourceID: "unknown", Name: "Unknown",
	})
	if err != nil {
		t.Fatalf("GetOrCreate err=%v", err)
	}
	if got.ID != 1 || got.SourceID != "unknown" {
		t.Fatalf("expected existing fallback source, got %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

/* ─────────────────────────────── ListWithCounts ─────────────────────────────── */

func TestSourceRepo_ListWithCounts(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	rows := sqlmock.NewRows(append(append([]string{}, sourceColumns...), "article_count")).
		AddRow(int64(10), "bbc-news", "BBC News", "British Broadcasting",
			"https://bbc.co.uk", "gb", "en", int64(7)).
		AddRow(int64(11), "reuters", "Reuters", "",
			"https://reuters.com", "us", "en", int64(0))

	mock.ExpectQuery(`FROM sources s`).WillReturnRows(rows)

	repo := postgres.NewSourceRepo(db)
	got, err := repo.ListWithCounts(context.Background())
	if err != nil {
		t.Fatalf("ListWithCounts err=%v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(got))
	}
	if got[0].Source.SourceID != "bbc-news" || got[0].ArticleCount != 7 {
		t.Fatalf("first source mismatch: %+v count=%d", got[0].Source, got[0].ArticleCount)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}
