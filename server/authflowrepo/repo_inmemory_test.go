package authflowrepo_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/station-portal/server/authflowrepo"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRepo(t *testing.T) {
	now := time.Now()

	t.Run("upsert get delete", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("state-1", &authflowrepo.AuthFlowState{Nonce: "nonce-1", CreatedAt: now}))

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "nonce-1", got.Nonce)

		require.NoError(t, repo.Delete("state-1"))
		_, err = repo.Get("state-1")
		require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)
	})

	t.Run("returned state is a copy", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		input := &authflowrepo.AuthFlowState{Nonce: "nonce-1", CreatedAt: now}
		require.NoError(t, repo.Upsert("state-1", input))
		input.Nonce = "changed"

		got, err := repo.Get("state-1")
		require.NoError(t, err)
		got.Nonce = "changed again"

		again, err := repo.Get("state-1")
		require.NoError(t, err)
		require.Equal(t, "nonce-1", again.Nonce)
	})

	t.Run("invalid input", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.Error(t, repo.Upsert("", &authflowrepo.AuthFlowState{}))
		require.Error(t, repo.Upsert("state-1", nil))
		_, err := repo.Get("")
		require.Error(t, err)
		require.Error(t, repo.Delete(""))
	})

	t.Run("delete older than", func(t *testing.T) {
		repo := authflowrepo.NewInMemoryRepo()
		require.NoError(t, repo.Upsert("old", &authflowrepo.AuthFlowState{CreatedAt: now.Add(-time.Hour)}))
		require.NoError(t, repo.Upsert("new", &authflowrepo.AuthFlowState{CreatedAt: now}))

		require.Equal(t, 1, repo.DeleteOlderThan(now.Add(-10*time.Minute)))
		_, err := repo.Get("old")
		require.ErrorIs(t, err, authflowrepo.ErrStateNotFound)
		_, err = repo.Get("new")
		require.NoError(t, err)
	})
}
