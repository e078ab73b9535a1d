package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	errs "go_engine/internal/errors"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{errs.ErrOutOfBounds, http.StatusBadRequest},
		{fmt.Errorf("%w: cell 3", errs.ErrImport), http.StatusBadRequest},
		{errs.ErrGameNotFound, http.StatusNotFound},
		{errs.ErrKoViolation, http.StatusConflict},
		{errs.ErrGameOver, http.StatusConflict},
		{errs.ErrNoFuture, http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, StatusOf(tt.err), "%v", tt.err)
	}
}

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, fmt.Errorf("play: %w", errs.ErrSuicide))

	require.Equal(t, http.StatusConflict, rec.Code)
	var resp struct {
		Status int
		Body   ErrorResponse
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, http.StatusConflict, resp.Status)
	require.Equal(t, errs.ReasonSuicide, resp.Body.Reason)

	rec = httptest.NewRecorder()
	WriteError(rec, errors.New("mongo timeout"))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NotContains(t, rec.Body.String(), "mongo")
}
