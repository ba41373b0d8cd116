package service

import (
	"context"
	"testing"

	"z2b/internal/domain"
	"z2b/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentService(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.cfg, repository.NewContentRepository(env.db), env.profiles, env.audit)
	ctx := context.Background()
	admin := seedProfile(t, env.db, "admin@example.com", "ADMN0001")

	_, err := svc.Create(ctx, admin.ID, ContentInput{Title: "x", Type: "gif", FileURL: "u"}, meta)
	assert.ErrorIs(t, err, ErrInvalidContent)

	private, err := svc.Create(ctx, admin.ID, ContentInput{
		Title: "Members Only", Type: domain.ContentTypeAudio, FileURL: "https://cdn/a.mp3",
	}, meta)
	require.NoError(t, err)
	assert.False(t, private.IsPublic)

	_, err = svc.Get(private.ID, "")
	assert.ErrorIs(t, err, ErrLoginRequired)

	view, err := svc.Get(private.ID, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://z2b.test/content/"+private.ID+"?ref=ADMN0001", view.ShareURL)

	toggled, err := svc.ToggleVisibility(private.ID)
	require.NoError(t, err)
	assert.True(t, toggled.IsPublic)
	view, err = svc.Get(private.ID, "")
	require.NoError(t, err)
	assert.Empty(t, view.ShareURL)

	list, err := svc.List(domain.ContentTypeVideo)
	require.NoError(t, err)
	assert.Empty(t, list)
	list, err = svc.List("")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(ctx, admin.ID, private.ID, meta))
	assert.ErrorIs(t, svc.Delete(ctx, admin.ID, private.ID, meta), ErrNotFound)
	_, err = svc.Get(private.ID, admin.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.ToggleVisibility(private.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestContentService_GetBlockedViewer(t *testing.T) {
	env := newTestEnv(t)
	svc := NewContentService(env.cfg, repository.NewContentRepository(env.db), env.profiles, env.audit)
	ctx := context.Background()
	admin := seedProfile(t, env.db, "admin@example.com", "ADMN0001")
	member := seedProfile(t, env.db, "m@example.com", "MEMB0001")
	require.NoError(t, env.profiles.Updates(member.ID, map[string]interface{}{"status": domain.StatusSuspended}))

	private, err := svc.Create(ctx, admin.ID, ContentInput{Title: "Secret", Type: domain.ContentTypePDF, FileURL: "s.pdf"}, meta)
	require.NoError(t, err)
	public, err := svc.Create(ctx, admin.ID, ContentInput{Title: "Open", Type: domain.ContentTypePDF, FileURL: "o.pdf", IsPublic: true}, meta)
	require.NoError(t, err)

	_, err = svc.Get(private.ID, member.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
	var denied *AccessDeniedError
	require.ErrorAs(t, err, &denied)
	assert.Equal(t, domain.StatusSuspended, denied.Result.Status)

	view, err := svc.Get(public.ID, member.ID)
	require.NoError(t, err)
	assert.Empty(t, view.ShareURL)

	_, err = svc.Get(private.ID, "no-such-profile")
	assert.ErrorIs(t, err, ErrLoginRequired)
}
