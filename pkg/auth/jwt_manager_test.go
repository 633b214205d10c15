package auth

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGenerateVerifyRoundtrip(t *testing.T) {
	req := require.New(t)
	mgr := NewJWTManager("secret", time.Hour)

	token, err := mgr.Generate("user-123")
	req.NoError(err)

	claims, err := mgr.Verify(token)
	req.NoError(err)
	req.Equal("user-123", claims.Subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	req := require.New(t)
	token, err := NewJWTManager("secret", time.Hour).Generate("user-123")
	req.NoError(err)

	_, err = NewJWTManager("other", time.Hour).Verify(token)
	req.Error(err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	req := require.New(t)
	mgr := NewJWTManager("secret", -time.Minute)

	token, err := mgr.Generate("user-123")
	req.NoError(err)

	_, err = mgr.Verify(token)
	req.Error(err)
}

func TestExtractTokenFromHeader(t *testing.T) {
	req := require.New(t)

	r, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Authorization", "Bearer abc")
	token, err := ExtractTokenFromHeader(r)
	req.NoError(err)
	req.Equal("abc", token)

	r.Header.Set("Authorization", "abc")
	_, err = ExtractTokenFromHeader(r)
	req.Error(err)
}
