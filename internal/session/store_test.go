package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sahaj/followup/internal/domain"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		ID:          7,
		Name:        "Asha Patil",
		RoleID:      2,
		RoleName:    "moderator",
		Permissions: map[int64]bool{2: true, 3: true},
	}
}

func TestLoginRestoreRoundtrip(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Login("tok-abc", testIdentity()))

	sess, err := store.Restore()
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "tok-abc", sess.Token)
	require.Equal(t, int64(7), sess.Identity.ID)
	require.Equal(t, "moderator", sess.Identity.RoleName)
	require.True(t, sess.Identity.Permissions[3])
}

func TestRestoreMissingFileMeansNoSession(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)

	sess, err := store.Restore()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestRestoreCorruptFileMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte("{not json"), 0o600))

	sess, err := store.Restore()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestRestoreHalfPairMeansNoSession(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Login("tok-abc", testIdentity()))

	// drop the identity key, keep the token: the pair is broken
	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	mangled := strings.Replace(string(data), `"identity"`, `"identity_gone"`, 1)
	require.NoError(t, os.WriteFile(filepath.Join(dir, fileName), []byte(mangled), 0o600))

	sess, err := store.Restore()
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestLogoutRemovesSession(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Login("tok-abc", testIdentity()))

	require.NoError(t, store.Logout())

	sess, err := store.Restore()
	require.NoError(t, err)
	require.Nil(t, sess)

	// logging out with nothing stored is still fine
	require.NoError(t, store.Logout())
}

func TestLoginOverwritesPreviousPair(t *testing.T) {
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Login("tok-old", testIdentity()))

	next := testIdentity()
	next.ID = 9
	next.Name = "Rahul Deshmukh"
	require.NoError(t, store.Login("tok-new", next))

	sess, err := store.Restore()
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "tok-new", sess.Token)
	require.Equal(t, int64(9), sess.Identity.ID)
}

func TestFileIsNotPlaintext(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Login("tok-secret-abc", testIdentity()))

	data, err := os.ReadFile(filepath.Join(dir, fileName))
	require.NoError(t, err)
	require.NotContains(t, string(data), "tok-secret-abc")
	require.NotContains(t, string(data), "Asha")
}
