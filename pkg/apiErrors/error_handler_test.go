package apiErrors

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteError(rec, ErrInvalidFormat, "invalid sale price", map[string]string{"field": "sale_price"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, ErrInvalidFormat, body.Code)
	assert.Equal(t, "invalid sale price", body.Message)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, StatusFor(ErrRecordNotFound))
	assert.Equal(t, http.StatusBadGateway, StatusFor(ErrDatabaseOperation))
	assert.Equal(t, http.StatusInternalServerError, StatusFor("XYZ_999"))
}
