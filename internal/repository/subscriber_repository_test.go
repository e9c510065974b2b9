package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/unclebandit/mailpulse-backend/internal/model"
)

func TestSubscriberRepository_UpsertForcesActiveStatus(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	joined := time.Now().UTC()
	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs("a@x.com", "Alice", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "joined_at"}).AddRow(3, joined))

	repo := &SubscriberRepository{DB: db}
	sub := &model.Subscriber{Email: "a@x.com", Name: "Alice"}
	if err := repo.UpsertByEmail(context.Background(), sub); err != nil {
		t.Fatalf("UpsertByEmail() error: %v", err)
	}
	if sub.ID != 3 {
		t.Errorf("expected assigned ID 3, got %d", sub.ID)
	}
	if sub.Status != model.SubscriberStatusActive {
		t.Errorf("expected active status, got %s", sub.Status)
	}
	if !sub.JoinedAt.Equal(joined) {
		t.Errorf("expected joined_at from the store, got %v", sub.JoinedAt)
	}
}

func TestSubscriberRepository_UpsertTwiceSameEmailKeepsRow(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	joined := time.Now().UTC().Add(-time.Hour)
	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs("a@x.com", "Alice", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "joined_at"}).AddRow(3, joined))
	mock.ExpectQuery("INSERT INTO subscribers").
		WithArgs("a@x.com", "Alice Smith", "active").
		WillReturnRows(sqlmock.NewRows([]string{"id", "joined_at"}).AddRow(3, joined))

	repo := &SubscriberRepository{DB: db}

	first := &model.Subscriber{Email: "a@x.com", Name: "Alice"}
	if err := repo.UpsertByEmail(context.Background(), first); err != nil {
		t.Fatalf("first upsert error: %v", err)
	}

	second := &model.Subscriber{Email: "a@x.com", Name: "Alice Smith"}
	if err := repo.UpsertByEmail(context.Background(), second); err != nil {
		t.Fatalf("second upsert error: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("same email must map to the same row, got %d and %d", first.ID, second.ID)
	}
	if !second.JoinedAt.Equal(joined) {
		t.Error("joined_at must not change on update")
	}
}

func TestSubscriberRepository_ListActive(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	rows := sqlmock.NewRows([]string{"id", "email", "name", "status", "joined_at"}).
		AddRow(1, "a@x.com", "Alice", "active", time.Now()).
		AddRow(2, "b@x.com", "Bob", "active", time.Now())

	mock.ExpectQuery("SELECT (.+) FROM subscribers").
		WithArgs("active").
		WillReturnRows(rows)

	repo := &SubscriberRepository{DB: db}
	subs, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive() error: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("expected 2 subscribers, got %d", len(subs))
	}
	if subs[0].Email != "a@x.com" {
		t.Errorf("unexpected first subscriber: %+v", subs[0])
	}
}

func TestSubscriberRepository_ListRecentPassesLimit(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT (.+) FROM subscribers").
		WithArgs(50).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "status", "joined_at"}))

	repo := &SubscriberRepository{DB: db}
	subs, err := repo.ListRecent(context.Background(), 50)
	if err != nil {
		t.Fatalf("ListRecent() error: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("expected empty result, got %d rows", len(subs))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
