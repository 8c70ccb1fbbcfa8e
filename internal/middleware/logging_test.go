package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithRequestLogging(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	h := WithRequestLogging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Login unsuccessful: Incorrect password", http.StatusUnauthorized)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/staff_login", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/staff_login", fields["path"])
	assert.EqualValues(t, http.StatusUnauthorized, fields["status"])
	assert.NotZero(t, fields["bytes"])
}

func TestWithRequestLogging_ImplicitOK(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	h := WithRequestLogging(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Len(t, logs.All(), 1)
	assert.EqualValues(t, http.StatusOK, logs.All()[0].ContextMap()["status"])
}
