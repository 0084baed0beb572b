package keywords

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresGetAllOrders(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	rows := pgxmock.NewRows([]string{"id", "keyword", "responses", "created_at", "updated_at"}).
		AddRow("id-1", "pain", []byte(`["General pain advice."]`), now, now).
		AddRow("id-2", "chest pain", []byte(`["Call 911 immediately."]`), now.Add(time.Second), now.Add(time.Second))

	mock.ExpectQuery("SELECT id, keyword, responses, created_at, updated_at").WillReturnRows(rows)

	repo := NewPostgresRepository(mock)
	snap, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "pain", snap[0].Keyword)
	assert.Equal(t, []string{"Call 911 immediately."}, snap[1].Responses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertInsertsWhenAbsent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, keyword, responses, created_at, updated_at FROM keyword_responses WHERE keyword").
		WithArgs("fever").
		WillReturnError(pgx.ErrNoRows)
	mock.ExpectQuery("INSERT INTO keyword_responses").
		WithArgs(pgxmock.AnyArg(), "fever", []byte(`["Rest and hydrate."]`)).
		WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))

	repo := NewPostgresRepository(mock)
	entry, err := repo.Upsert(context.Background(), "Fever", "Rest and hydrate.")
	require.NoError(t, err)
	assert.Equal(t, "fever", entry.Keyword)
	assert.Equal(t, []string{"Rest and hydrate."}, entry.Responses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresUpsertAppendsWhenPresent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, keyword, responses, created_at, updated_at FROM keyword_responses WHERE keyword").
		WithArgs("diet").
		WillReturnRows(pgxmock.NewRows([]string{"id", "keyword", "responses", "created_at", "updated_at"}).
			AddRow("id-1", "diet", []byte(`["Eat vegetables."]`), now, now))
	mock.ExpectQuery("UPDATE keyword_responses SET responses").
		WithArgs("id-1", []byte(`["Eat vegetables.","Avoid sugar."]`)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now.Add(time.Second)))

	repo := NewPostgresRepository(mock)
	entry, err := repo.Upsert(context.Background(), "diet", "Avoid sugar.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eat vegetables.", "Avoid sugar."}, entry.Responses)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM keyword_responses").
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewPostgresRepository(mock)
	assert.ErrorIs(t, repo.Delete(context.Background(), "missing"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
