package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lalith-99/dreams/internal/store"
)

func newTestServices(t *testing.T) *Services {
	t.Helper()

	logger := zap.NewNop()
	st, err := store.Open(filepath.Join(t.TempDir(), "database.json"), logger)
	require.NoError(t, err)
	return New(st, "test-secret", logger)
}

func registerUser(t *testing.T, svc *Services, email, first, last string) AuthResult {
	t.Helper()

	res, err := svc.Identity.Register(email, "password123", first, last)
	require.NoError(t, err)
	return res
}
