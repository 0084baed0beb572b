package patients

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPatient(email, phone string) Patient {
	return Patient{
		Name:         "Jordan Smith",
		Email:        email,
		Phone:        phone,
		Age:          30,
		Gender:       "female",
		PasswordHash: "hash",
	}
}

func TestInMemoryCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, validPatient("jordan@example.com", "5551234567"))
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.False(t, created.IsApproved)

	byID, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "jordan@example.com", byID.Email)

	byEmail, err := repo.GetByEmail(ctx, "jordan@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
}

func TestInMemoryCreateRejectsDuplicates(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	_, err := repo.Create(ctx, validPatient("jordan@example.com", "5551234567"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, validPatient("jordan@example.com", "5559999999"))
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = repo.Create(ctx, validPatient("other@example.com", "5551234567"))
	assert.ErrorIs(t, err, ErrPhoneTaken)
}

func TestInMemoryApprove(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, validPatient("jordan@example.com", "5551234567"))
	require.NoError(t, err)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, repo.Approve(ctx, created.ID))

	approved, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)
	require.NotNil(t, approved.ApprovedAt)
	assert.WithinDuration(t, time.Now().UTC(), *approved.ApprovedAt, time.Minute)

	pending, err = repo.ListPending(ctx)
	require.NoError(t, err)
	assert.Empty(t, pending)

	assert.ErrorIs(t, repo.Approve(ctx, "missing"), ErrNotFound)
}

func TestInMemoryUpdate(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, validPatient("jordan@example.com", "5551234567"))
	require.NoError(t, err)

	name := "Jordan Lee"
	email := " Jordan.Lee@Example.com "
	require.NoError(t, repo.Update(ctx, created.ID, Update{Name: &name, Email: &email}))

	updated, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jordan Lee", updated.Name)
	assert.Equal(t, "jordan.lee@example.com", updated.Email)
	// untouched fields survive
	assert.Equal(t, "5551234567", updated.Phone)

	assert.ErrorIs(t, repo.Update(ctx, "missing", Update{Name: &name}), ErrNotFound)
}

func TestInMemoryDelete(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, validPatient("jordan@example.com", "5551234567"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), ErrNotFound)
}

func TestInMemoryListNewestFirst(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	first, err := repo.Create(ctx, validPatient("a@example.com", "5550000001"))
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	second, err := repo.Create(ctx, validPatient("b@example.com", "5550000002"))
	require.NoError(t, err)

	all, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)
	assert.Equal(t, first.ID, all[1].ID)
}
