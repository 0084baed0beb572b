package keywords

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryUpsertCreatesAndAppends(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "Diet", "Eat vegetables.")
	require.NoError(t, err)
	assert.Equal(t, "diet", created.Keyword, "stored keyword is case-folded")
	assert.Equal(t, []string{"Eat vegetables."}, created.Responses)

	appended, err := repo.Upsert(ctx, "diet", "Avoid sugar.")
	require.NoError(t, err)
	assert.Equal(t, created.ID, appended.ID)
	assert.Equal(t, []string{"Eat vegetables.", "Avoid sugar."}, appended.Responses)

	// Set semantics: duplicate response is not appended again.
	again, err := repo.Upsert(ctx, "diet", "Avoid sugar.")
	require.NoError(t, err)
	assert.Equal(t, []string{"Eat vegetables.", "Avoid sugar."}, again.Responses)
}

func TestInMemoryGetAllPreservesInsertionOrder(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "pain", "General pain advice.")
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, "chest pain", "Call 911 immediately.")
	require.NoError(t, err)

	snap, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 2)
	assert.Equal(t, "pain", snap[0].Keyword)
	assert.Equal(t, "chest pain", snap[1].Keyword)
}

func TestInMemoryGetAllReturnsCopies(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "fever", "Rest and hydrate.")
	require.NoError(t, err)

	snap, err := repo.GetAll(ctx)
	require.NoError(t, err)
	snap[0].Responses[0] = "mutated"

	fresh, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Rest and hydrate.", fresh[0].Responses[0])
}

func TestInMemoryReplace(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "sleep", "Sleep 7-9 hours.")
	require.NoError(t, err)

	replaced, err := repo.Replace(ctx, created.ID, "Sleep Hygiene", []string{"Keep a schedule.", "Limit screens."})
	require.NoError(t, err)
	assert.Equal(t, "sleep hygiene", replaced.Keyword)
	assert.Equal(t, []string{"Keep a schedule.", "Limit screens."}, replaced.Responses)

	_, err = repo.Replace(ctx, "missing-id", "x", []string{"y"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInMemoryReplaceValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "sleep", "Sleep 7-9 hours.")
	require.NoError(t, err)

	_, err = repo.Replace(ctx, created.ID, "  ", []string{"y"})
	assert.ErrorIs(t, err, ErrEmptyKeyword)

	_, err = repo.Replace(ctx, created.ID, "sleep", nil)
	assert.ErrorIs(t, err, ErrEmptyResponses)
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Upsert(ctx, "stress", "Try deep breathing.")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)

	snap, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, snap)
}
