package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookishapp/bookish-core/internal/domain"
	"github.com/bookishapp/bookish-core/internal/errors"
	"github.com/bookishapp/bookish-core/internal/kv"
	"github.com/bookishapp/bookish-core/internal/logger"
	"github.com/bookishapp/bookish-core/internal/notify"
)

func newTestProfile(t *testing.T) (*Profile, *kv.Memory) {
	t.Helper()
	mem := kv.NewMemory()
	p := NewProfile(mem, notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(p.Flush)
	return p, mem
}

func TestProfileStartsEmpty(t *testing.T) {
	p, _ := newTestProfile(t)

	assert.False(t, p.HasUser())
	_, err := p.User()
	assert.ErrorIs(t, err, errors.ErrNotFound)
}

func TestProfileSetAndClearUser(t *testing.T) {
	p, _ := newTestProfile(t)

	require.NoError(t, p.SetUser(domain.User{ID: "user-1", Username: "booklover", Name: "Jane Reader"}))
	assert.True(t, p.HasUser())

	user, err := p.User()
	require.NoError(t, err)
	assert.Equal(t, "booklover", user.Username)

	p.ClearUser()
	assert.False(t, p.HasUser())
}

func TestProfileSetUserRequiresID(t *testing.T) {
	p, _ := newTestProfile(t)

	assert.ErrorIs(t, p.SetUser(domain.User{Username: "noid"}), errors.ErrValidation)
}

func TestProfileUpdatePatch(t *testing.T) {
	p, _ := newTestProfile(t)
	require.NoError(t, p.SetUser(domain.User{ID: "user-1", Username: "booklover", Name: "Jane Reader", Bio: "old bio"}))

	bio := "Reading my way through the backlog."
	genres := []string{"fantasy", "mystery"}
	require.NoError(t, p.UpdateProfile(domain.UserPatch{Bio: &bio, FavoriteGenres: &genres}))

	user, err := p.User()
	require.NoError(t, err)
	assert.Equal(t, bio, user.Bio)
	assert.Equal(t, genres, user.FavoriteGenres)
	assert.Equal(t, "booklover", user.Username, "untouched fields survive a patch")
}

func TestProfileUpdateWithoutUser(t *testing.T) {
	p, _ := newTestProfile(t)

	name := "Nobody"
	assert.ErrorIs(t, p.UpdateProfile(domain.UserPatch{Name: &name}), errors.ErrNotFound)
}

func TestProfileReadsReturnCopies(t *testing.T) {
	p, _ := newTestProfile(t)
	require.NoError(t, p.SetUser(domain.User{ID: "user-1", FavoriteGenres: []string{"fantasy"}}))

	user, err := p.User()
	require.NoError(t, err)
	user.FavoriteGenres[0] = "horror"

	again, err := p.User()
	require.NoError(t, err)
	assert.Equal(t, "fantasy", again.FavoriteGenres[0])
}

func TestProfilePersistsAndRehydrates(t *testing.T) {
	mem := kv.NewMemory()
	p := NewProfile(mem, notify.NewNoop(), logger.Discard().Logger)
	require.NoError(t, p.SetUser(domain.User{ID: "user-1", Username: "booklover"}))
	p.Flush()

	reopened := NewProfile(mem, notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(reopened.Flush)

	require.True(t, reopened.HasUser())
	user, err := reopened.User()
	require.NoError(t, err)
	assert.Equal(t, "booklover", user.Username)
}

func TestProfileClearPersists(t *testing.T) {
	mem := kv.NewMemory()
	p := NewProfile(mem, notify.NewNoop(), logger.Discard().Logger)
	require.NoError(t, p.SetUser(domain.User{ID: "user-1"}))
	p.ClearUser()
	p.Flush()

	reopened := NewProfile(mem, notify.NewNoop(), logger.Discard().Logger)
	t.Cleanup(reopened.Flush)

	assert.False(t, reopened.HasUser())
}
