package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(KindValidation))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindConflict))
	assert.Equal(t, http.StatusConflict, HTTPStatus(KindState))
	assert.Equal(t, http.StatusForbidden, HTTPStatus(KindAuthorization))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus("other"))
}

func TestAppErrorMatching(t *testing.T) {
	base := NewAppError(KindConflict, CodeSlotUnavailable, "taken")
	wrapped := fmt.Errorf("create: %w", base.With("date", "2030-01-01"))

	assert.True(t, errors.Is(wrapped, &AppError{Code: CodeSlotUnavailable}))
	assert.False(t, errors.Is(wrapped, &AppError{Code: CodeNotFound}))
	assert.Equal(t, CodeSlotUnavailable, ErrorCode(wrapped))
	assert.Empty(t, ErrorCode(errors.New("boom")))
	assert.Nil(t, base.Details, "With must not mutate the receiver")
}

func TestWriteError(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("domain error keeps code and details", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		WriteError(c, NewAppError(KindState, CodeInvalidTransition, "nope").With("currentStatus", "approved"))

		require.Equal(t, http.StatusConflict, w.Code)
		var body ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, CodeInvalidTransition, body.Error)
		assert.Equal(t, "approved", body.Details["currentStatus"])
	})

	t.Run("infrastructure error is opaque", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		WriteError(c, errors.New("connection refused"))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection refused")
	})
}
