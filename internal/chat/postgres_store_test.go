package chat

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedMessages(t *testing.T, messages []Message) []byte {
	t.Helper()
	raw, err := json.Marshal(messages)
	require.NoError(t, err)
	return raw
}

func TestPostgresCreateInserts(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO chats").
		WithArgs(pgxmock.AnyArg(), "user-1", "Headache chat", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	id, err := store.Create(context.Background(), "user-1", "Headache chat", []Message{
		{Text: "hi", Sender: SenderUser, Timestamp: time.Now().UTC()},
	})
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateDefaultsTitle(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO chats").
		WithArgs(pgxmock.AnyArg(), "user-1", "New Chat", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	store := NewPostgresStore(mock)
	_, err = store.Create(context.Background(), "user-1", "", nil)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	messages := []Message{{Text: "hi", Sender: SenderUser, Timestamp: time.Now().UTC()}}

	mock.ExpectExec("UPDATE chats SET messages = messages").
		WithArgs(id, encodedMessages(t, messages)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	store := NewPostgresStore(mock)
	require.NoError(t, store.Append(context.Background(), id.String(), messages))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendMissingChat(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	messages := []Message{{Text: "hi", Sender: SenderUser}}

	mock.ExpectExec("UPDATE chats SET messages = messages").
		WithArgs(id, encodedMessages(t, messages)).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	store := NewPostgresStore(mock)
	assert.ErrorIs(t, store.Append(context.Background(), id.String(), messages), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresAppendInvalidID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	err = store.Append(context.Background(), "not-a-uuid", []Message{{Text: "hi", Sender: SenderUser}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresGet(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectQuery("SELECT messages FROM chats").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"messages"}).
			AddRow([]byte(`[{"text":"hi","sender":"user","timestamp":"2026-01-02T03:04:05Z"}]`)))

	store := NewPostgresStore(mock)
	messages, err := store.Get(context.Background(), id.String())
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Text)
	assert.Equal(t, SenderUser, messages[0].Sender)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetInvalidIDIsEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store := NewPostgresStore(mock)
	messages, err := store.Get(context.Background(), "not-a-uuid")
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestPostgresListByOwner(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, COALESCE").
		WithArgs("user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "last", "updated_at", "is_active"}).
			AddRow("c2", "Second", "latest reply", now, true).
			AddRow("c1", "First", "older reply", now.Add(-time.Hour), true))

	store := NewPostgresStore(mock)
	summaries, err := store.ListByOwner(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "c2", summaries[0].ChatID)
	assert.Equal(t, "latest reply", summaries[0].LastMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSearchFiltersInGo(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	// the second row only matches on JSON structure, not message text, and
	// must be dropped by the in-Go recheck
	mock.ExpectQuery("SELECT id, title, messages, updated_at").
		WithArgs("user-1", `%migraine%`).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "messages", "updated_at"}).
			AddRow("c1", "General", []byte(`[{"text":"my migraine is back","sender":"user","timestamp":"2026-01-02T03:04:05Z"}]`), now).
			AddRow("c2", "Other", []byte(`[{"text":"hello","sender":"user","timestamp":"2026-01-02T03:04:05Z"}]`), now))

	store := NewPostgresStore(mock)
	results, err := store.Search(context.Background(), "user-1", "migraine")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "c1", results[0].ChatID)
	require.Len(t, results[0].MatchingMessages, 1)
	assert.Contains(t, results[0].MatchingMessages[0].Snippet, "migraine")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSearchEmptyQueryListsRecent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Now().UTC()
	mock.ExpectQuery("SELECT id, title, messages, updated_at").
		WithArgs("user-1", recentLimit).
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "messages", "updated_at"}).
			AddRow("c1", "General", []byte(`[]`), now))

	store := NewPostgresStore(mock)
	results, err := store.Search(context.Background(), "user-1", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.True(t, results[0].IsRecent)
	assert.Equal(t, "New chat", results[0].LastMessage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDelete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	id := uuid.New()
	mock.ExpectExec("DELETE FROM chats").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	store := NewPostgresStore(mock)
	assert.ErrorIs(t, store.Delete(context.Background(), id.String()), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
