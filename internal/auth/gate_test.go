package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xtanyr/lunch/internal/calendar"
)

var start = time.Date(2025, 6, 9, 9, 0, 0, 0, time.UTC)

func TestGate_Disabled(t *testing.T) {
	g, err := NewGate("", "", time.Hour, calendar.FixedClock(start))
	require.NoError(t, err)
	assert.False(t, g.Enabled())

	_, _, err = g.Login("anything")
	assert.ErrorIs(t, err, ErrGateDisabled)
}

func TestGate_RequiresSecret(t *testing.T) {
	_, err := NewGate("letmein", "", time.Hour, calendar.FixedClock(start))
	assert.Error(t, err)
}

func TestGate_LoginAndValidate(t *testing.T) {
	g, err := NewGate("letmein", "test-secret", time.Hour, calendar.FixedClock(start))
	require.NoError(t, err)
	assert.True(t, g.Enabled())

	_, _, err = g.Login("wrong")
	assert.ErrorIs(t, err, ErrInvalidPassphrase)

	token, exp, err := g.Login("letmein")
	require.NoError(t, err)
	assert.Equal(t, start.Add(time.Hour), exp)

	role, err := g.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, role)

	_, err = g.Validate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other, err := NewGate("letmein", "other-secret", time.Hour, calendar.FixedClock(start))
	require.NoError(t, err)
	_, err = other.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken, "signed with another secret")
}

func TestGate_ExpiredToken(t *testing.T) {
	issuer, err := NewGate("letmein", "test-secret", time.Hour, calendar.FixedClock(start))
	require.NoError(t, err)
	token, _, err := issuer.Login("letmein")
	require.NoError(t, err)

	later, err := NewGate("letmein", "test-secret", time.Hour, calendar.FixedClock(start.Add(2*time.Hour)))
	require.NoError(t, err)
	_, err = later.Validate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestHandler_CreateSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	g, err := NewGate("letmein", "test-secret", time.Hour, calendar.FixedClock(start))
	require.NoError(t, err)

	r := gin.New()
	r.POST("/admin/session", NewHandler(g).CreateSession)

	post := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/admin/session", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, post(`{}`).Code)
	assert.Equal(t, http.StatusUnauthorized, post(`{"passphrase":"nope"}`).Code)

	w := post(`{"passphrase":"letmein"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"token":"`)
}
