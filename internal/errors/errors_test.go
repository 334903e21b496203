package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError(t *testing.T) {
	t.Run("formats type and message", func(t *testing.T) {
		err := NewAppError(ErrTypeParsing, "bad header", nil)
		assert.Equal(t, "[PARSING] bad header", err.Error())
	})

	t.Run("includes cause and unwraps", func(t *testing.T) {
		cause := fmt.Errorf("boom")
		err := NewAppError(ErrTypeConfig, "load failed", cause)
		assert.Contains(t, err.Error(), "boom")
		assert.ErrorIs(t, err, cause)
	})

	t.Run("context accumulates", func(t *testing.T) {
		err := NewAppError(ErrTypeValidation, "bad range", nil).
			WithContext("base_year", 2025).
			WithContext("target_year", 2023)
		assert.Equal(t, 2025, err.Context["base_year"])
		assert.Equal(t, 2023, err.Context["target_year"])
		assert.Equal(t, ErrTypeValidation, err.Type)
	})
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, UnprocessableDatasetError(fmt.Errorf("no year columns found")))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "DATASET_INVALID", resp.Error.ErrorCode)
	assert.Contains(t, resp.Error.Message, "no year columns found")
}
