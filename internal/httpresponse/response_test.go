package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/UnveiledSafe8/SignalSiege/internal/errors"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errs.ErrGameNotFound, http.StatusNotFound},
		{fmt.Errorf("load: %w", errs.ErrGameOver), http.StatusConflict},
		{errs.ErrNotAITurn, http.StatusConflict},
		{errs.ErrGameLocked, http.StatusConflict},
		{errs.ErrInvalidBoardSize, http.StatusUnprocessableEntity},
		{errs.ErrUnknownDifficulty, http.StatusUnprocessableEntity},
		{errs.ErrInvalidSnapshot, http.StatusBadRequest},
		{errors.New("disk on fire"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestWriteResponseWithStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteResponseWithStatus(rec, http.StatusCreated, map[string]string{"game_key": "k"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var resp Response[map[string]string]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, "k", resp.Body["game_key"])
}

func TestWriteErrorHidesInternalText(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, errors.New("mongo password is hunter2"))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	rec = httptest.NewRecorder()
	WriteError(rec, errs.ErrGameNotFound)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), errs.ErrGameNotFound.Error())
}
