package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Hour)
	userID := uuid.New()

	raw, err := tokens.Generate(userID, true)
	require.NoError(t, err)

	principal, err := tokens.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, userID, principal.UserID)
	assert.True(t, principal.IsStaff)
	assert.True(t, principal.Authenticated)
}

func TestTokenManager_RejectsForeignSecret(t *testing.T) {
	raw, err := NewTokenManager("one", time.Hour).Generate(uuid.New(), false)
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).Parse(raw)
	assert.Error(t, err)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	tokens := NewTokenManager("test-secret", time.Minute)
	tokens.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	raw, err := tokens.Generate(uuid.New(), false)
	require.NoError(t, err)

	_, err = tokens.Parse(raw)
	assert.Error(t, err)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("s3cret-pass", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := NewTokenManager("test-secret", time.Hour)

	r := gin.New()
	r.GET("/private", AuthMiddleware(tokens), func(c *gin.Context) {
		c.String(http.StatusOK, CurrentPrincipal(c).UserID.String())
	})
	r.GET("/staff", AuthMiddleware(tokens), RequireStaff(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	r.GET("/public", OptionalAuth(tokens), func(c *gin.Context) {
		if CurrentPrincipal(c).Authenticated {
			c.Status(http.StatusAccepted)
			return
		}
		c.Status(http.StatusOK)
	})

	userID := uuid.New()
	clientToken, _ := tokens.Generate(userID, false)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, userID.String(), w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/staff", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set("Authorization", "Bearer "+clientToken)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestValidatePhone(t *testing.T) {
	assert.True(t, ValidatePhone("+7 (917) 814-98-41"))
	assert.True(t, ValidatePhone("89178149841"))
	assert.False(t, ValidatePhone("phone"))
	assert.False(t, ValidatePhone("+0123"))
}

func TestTomorrow(t *testing.T) {
	at := time.Date(2026, 12, 31, 18, 45, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), Tomorrow(at))
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+79178149841", NormalizePhone(" +7 (917) 814-98-41 "))
	assert.True(t, ValidateEmail("anna@example.com"))
	assert.False(t, ValidateEmail("Anna <anna@example.com>"))
}
