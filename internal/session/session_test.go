package session

import (
	"encoding/base64"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeJWT(payload string) string {
	enc := base64.RawURLEncoding.EncodeToString
	return enc([]byte(`{"alg":"HS256"}`)) + "." + enc([]byte(payload)) + ".sig"
}

func TestLoad_NotLoggedIn(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	_, err := Load("", "")
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestLoad_EnvTokenWins(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.NoError(t, Save("file-token", "file-user", nil))

	s, err := Load("Bearer env-token", "env-user")
	require.NoError(t, err)
	assert.Equal(t, "env-token", s.Token)
	assert.Equal(t, "env-user", s.UserID)
	assert.Equal(t, SourceEnv, s.Source)
}

func TestSaveLoadDelete(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	require.NoError(t, Save("bearer abc", "u-1", nil))

	p, err := Path()
	require.NoError(t, err)
	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	s, err := Load("", "")
	require.NoError(t, err)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, "u-1", s.UserID)
	assert.Equal(t, SourceFile, s.Source)

	require.NoError(t, Delete())
	require.NoError(t, Delete(), "deleting twice is fine")

	_, err = Load("", "")
	require.ErrorIs(t, err, ErrNotLoggedIn)
}

func TestSave_EmptyToken(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	require.Error(t, Save("  ", "u-1", nil))
}

func TestLoad_UserIDFromJWT(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	exp := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	tok := fakeJWT(`{"_id":"5f1c","exp":` + strconv.FormatInt(exp.Unix(), 10) + `}`)

	s, err := Load(tok, "")
	require.NoError(t, err)
	assert.Equal(t, "5f1c", s.UserID)
	require.NotNil(t, s.ExpiresAt)
	assert.True(t, exp.Equal(*s.ExpiresAt))
}

func TestDecodeClaims_Opaque(t *testing.T) {
	_, err := DecodeClaims("not-a-jwt")
	require.Error(t, err)
}
