package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jackc/pgx/v5/pgconn"

	"aniexo/internal/domain/entity"
	"aniexo/internal/infra/adapter/persistence/postgres"
)

/* ──────────────────────────────── ヘルパ ──────────────────────────────── */

func favRows(favs ...*entity.Favorite) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "user_id", "anime_id", "anime_title", "anime_image", "created_at"})
	for _, f := range favs {
		rows.AddRow(f.ID, f.UserID, f.AnimeID, f.AnimeTitle, f.AnimeImage, f.CreatedAt)
	}
	return rows
}

/* ──────────────────────────────── 1. List ──────────────────────────────── */

func TestFavoriteRepo_List(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now().UTC()
	want := []*entity.Favorite{
		{ID: 2, UserID: 1, AnimeID: 5114, AnimeTitle: "Fullmetal Alchemist: Brotherhood", AnimeImage: "https://cdn.example/5114.jpg", CreatedAt: now},
		{ID: 1, UserID: 1, AnimeID: 1, AnimeTitle: "Cowboy Bebop", CreatedAt: now.Add(-time.Hour)},
	}
	mock.ExpectQuery(regexp.QuoteMeta(`FROM favorites`)).
		WithArgs(int64(1)).
		WillReturnRows(favRows(want...))

	got, err := postgres.NewFavoriteRepo(db).List(context.Background(), 1)
	if err != nil {
		t.Fatalf("List err=%v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
}

func TestFavoriteRepo_List_Empty(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`FROM favorites`).WillReturnRows(favRows())

	got, err := postgres.NewFavoriteRepo(db).List(context.Background(), 1)
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("want empty non-nil slice, got %v err=%v", got, err)
	}
}

/* ──────────────────────────────── 2. Add ──────────────────────────────── */

func TestFavoriteRepo_Add(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO favorites`)).
		WithArgs(int64(1), int64(21), "One Piece", "img").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(10), time.Now()))

	f := &entity.Favorite{UserID: 1, AnimeID: 21, AnimeTitle: "One Piece", AnimeImage: "img"}
	if err := postgres.NewFavoriteRepo(db).Add(context.Background(), f); err != nil {
		t.Fatalf("Add err=%v", err)
	}
	if f.ID != 10 {
		t.Fatalf("id not scanned: %d", f.ID)
	}
}

func TestFavoriteRepo_Add_Duplicate(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO favorites`)).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := postgres.NewFavoriteRepo(db).Add(context.Background(), &entity.Favorite{UserID: 1, AnimeID: 21, AnimeTitle: "One Piece"})
	if !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("want ErrConflict, got %v", err)
	}
}

/* ──────────────────────────────── 3. Remove ──────────────────────────────── */

func TestFavoriteRepo_Remove(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		want     bool
	}{
		{"削除あり", 1, true},
		{"該当なし", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, _ := sqlmock.New()
			defer func() { _ = db.Close() }()

			mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM favorites`)).
				WithArgs(int64(1), int64(21)).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			got, err := postgres.NewFavoriteRepo(db).Remove(context.Background(), 1, 21)
			if err != nil || got != tt.want {
				t.Fatalf("Remove = %v, %v; want %v", got, err, tt.want)
			}
		})
	}
}
