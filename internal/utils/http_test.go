package utils

import (
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/freelancy/marketplace-api/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSON_WritesBodyStatusAndContentType(t *testing.T) {
	rr := httptest.NewRecorder()

	n, err := WriteJSON(rr, models.Message{Message: "forbidden"}, http.StatusForbidden)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"forbidden"}`, rr.Body.String())
	assert.Equal(t, rr.Body.Len(), n)
}

func TestWriteJSON_MarshalFailure(t *testing.T) {
	rr := httptest.NewRecorder()

	// NaN is not representable in JSON
	_, err := WriteJSON(rr, math.NaN(), http.StatusOK)
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}
