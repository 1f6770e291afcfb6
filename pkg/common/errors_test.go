package common

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteErr(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", fmt.Errorf("repo: post p1: %w", ErrNotFound), http.StatusNotFound},
		{"forbidden", fmt.Errorf("repo: %w", ErrForbidden), http.StatusForbidden},
		{"conflict", fmt.Errorf("repo: already voted: %w", ErrConflict), http.StatusConflict},
		{"plain error hides behind 500", fmt.Errorf("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			WriteErr(w, tc.err, "something failed")
			resp := w.Result()
			assert.Equal(t, tc.code, resp.StatusCode)

			var msg Msg
			assert.Nil(t, json.NewDecoder(resp.Body).Decode(&msg))
			assert.Equal(t, "something failed", msg.Message)
		})
	}

	t.Run("validation error carries its issues", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErr(w, NewValidationError("name is empty", "bad type"), "ignored")
		resp := w.Result()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		var body struct {
			Message string   `json:"message"`
			Issues  []string `json:"issues"`
		}
		assert.Nil(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, []string{"name is empty", "bad type"}, body.Issues)
	})

	t.Run("wrapped validation error still maps to 400", func(t *testing.T) {
		w := httptest.NewRecorder()
		WriteErr(w, fmt.Errorf("handler: %w", NewValidationError("bad option")), "ignored")
		assert.Equal(t, http.StatusBadRequest, w.Result().StatusCode)
	})
}

func TestQueryInt(t *testing.T) {
	req := func(raw string) *http.Request {
		return httptest.NewRequest("GET", "/api/posts?"+raw, nil)
	}

	assert.Equal(t, int64(20), QueryInt(req(""), "limit", 20, 100))
	assert.Equal(t, int64(50), QueryInt(req("limit=50"), "limit", 20, 100))
	assert.Equal(t, int64(100), QueryInt(req("limit=9000"), "limit", 20, 100))
	assert.Equal(t, int64(20), QueryInt(req("limit=abc"), "limit", 20, 100))
	assert.Equal(t, int64(20), QueryInt(req("limit=-5"), "limit", 20, 100))
	// no cap
	assert.Equal(t, int64(9000), QueryInt(req("page=9000"), "page", 1, 0))
}
