package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fsdevblog/shortlinks/internal/db"
	"github.com/fsdevblog/shortlinks/internal/models"
	"github.com/fsdevblog/shortlinks/internal/repositories/memstore"
)

func newMemoryLinkService(t *testing.T) *LinkService {
	t.Helper()
	return NewLinkService(memstore.NewLinkRepo(db.NewMemStorage()), nil, nil)
}

func TestLinkService_CreateThenResolve(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	created, err := svc.Create(ctx, "user-1", models.LinkInput{
		OriginalURL: "https://example.com/docs?page=2",
		ShortCode:   "docs_2",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs?page=2", created.OriginalURL)
	assert.Equal(t, "docs_2", created.ShortCode)

	resolved, err := svc.Resolve(ctx, "docs_2")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)
	assert.Equal(t, "https://example.com/docs?page=2", resolved.OriginalURL)
}

func TestLinkService_InvalidCodeIsNotPersisted(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	_, err := svc.Create(ctx, "user-1", models.LinkInput{OriginalURL: "https://example.com", ShortCode: "a b"})
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Short code can only contain letters, numbers, hyphens, and underscores", err.Error())

	links, listErr := svc.ListByOwner(ctx, "user-1")
	require.NoError(t, listErr)
	assert.Empty(t, links)
}

func TestLinkService_PaddedShortCodeIsRejected(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	link, err := svc.Create(ctx, "u1", models.LinkInput{OriginalURL: "https://example.com", ShortCode: " abc "})
	require.ErrorIs(t, err, ErrValidation)
	assert.Nil(t, link)

	_, err = svc.Resolve(ctx, "abc")
	require.ErrorIs(t, err, ErrNotFound)

	links, err := svc.ListByOwner(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, links)
}

func TestLinkService_SequentialDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	_, err := svc.Create(ctx, "user-1", models.LinkInput{OriginalURL: "https://a.example.com", ShortCode: "same"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, "user-2", models.LinkInput{OriginalURL: "https://b.example.com", ShortCode: "same"})
	require.ErrorIs(t, err, ErrConflict)

	resolved, err := svc.Resolve(ctx, "same")
	require.NoError(t, err)
	assert.Equal(t, "https://a.example.com", resolved.OriginalURL)
}

func TestLinkService_URLOnlyUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	created, err := svc.Create(ctx, "user-1", models.LinkInput{OriginalURL: "https://old.example.com", ShortCode: "keep"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "user-1", created.ID, models.LinkInput{
		OriginalURL: "https://new.example.com",
		ShortCode:   "keep",
	})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "https://new.example.com", updated.OriginalURL)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))
}

func TestLinkService_NonOwnerCannotMutate(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	created, err := svc.Create(ctx, "owner", models.LinkInput{OriginalURL: "https://example.com", ShortCode: "mine"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "intruder", created.ID, models.LinkInput{
		OriginalURL: "https://evil.example.com",
		ShortCode:   "mine",
	})
	require.ErrorIs(t, err, ErrUnauthorized)

	err = svc.Delete(ctx, "intruder", created.ID)
	require.ErrorIs(t, err, ErrUnauthorized)

	resolved, err := svc.Resolve(ctx, "mine")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", resolved.OriginalURL)
}

func TestLinkService_UnknownCode(t *testing.T) {
	svc := newMemoryLinkService(t)

	_, err := svc.Resolve(context.Background(), "nothing-here")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLinkService_FullLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	created, err := svc.Create(ctx, "u1", models.LinkInput{OriginalURL: "https://example.com", ShortCode: "abc-123"})
	require.NoError(t, err)

	resolved, err := svc.Resolve(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", resolved.OriginalURL)

	_, err = svc.Create(ctx, "u2", models.LinkInput{OriginalURL: "https://other.com", ShortCode: "abc-123"})
	require.ErrorIs(t, err, ErrConflict)

	_, err = svc.Update(ctx, "u1", created.ID, models.LinkInput{OriginalURL: "https://example.com", ShortCode: "xyz"})
	require.NoError(t, err)

	_, err = svc.Resolve(ctx, "abc-123")
	require.ErrorIs(t, err, ErrNotFound)

	resolved, err = svc.Resolve(ctx, "xyz")
	require.NoError(t, err)
	assert.Equal(t, created.ID, resolved.ID)

	// освободившийся код снова доступен
	_, err = svc.Create(ctx, "u2", models.LinkInput{OriginalURL: "https://other.com", ShortCode: "abc-123"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "u1", created.ID))

	_, err = svc.Resolve(ctx, "xyz")
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(ctx, "u1", created.ID)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLinkService_ListNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc := newMemoryLinkService(t)

	for _, code := range []string{"first", "second", "third"} {
		_, err := svc.Create(ctx, "user-1", models.LinkInput{OriginalURL: "https://example.com/" + code, ShortCode: code})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "user-2", models.LinkInput{OriginalURL: "https://example.com", ShortCode: "foreign"})
	require.NoError(t, err)

	links, err := svc.ListByOwner(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, links, 3)
	assert.Equal(t, "third", links[0].ShortCode)
	assert.Equal(t, "first", links[2].ShortCode)
}
