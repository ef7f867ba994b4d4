package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nelhage/tictactician/ai"
	"github.com/nelhage/tictactician/server"
)

func newRouter() http.Handler {
	return NewRouter(server.NewEngine(ai.MinimaxConfig{}), Config{Profile: true})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestMove(t *testing.T) {
	h := newRouter()
	cases := []struct {
		body string
		move int
		cell string
	}{
		{`{"board":".../.../...","turn":"x"}`, 4, "b2"},
		{`{"board":"oo./x../...","turn":"o"}`, 2, "c1"},
		{`{"board":"XX_/___/___","turn":"O"}`, 2, "c1"},
	}
	for _, tc := range cases {
		w := do(t, h, http.MethodPost, "/v1/move", tc.body)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp moveResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.move, resp.Move, tc.body)
		assert.Equal(t, tc.cell, resp.Cell, tc.body)
	}
}

func TestMoveErrors(t *testing.T) {
	h := newRouter()
	cases := []struct {
		body string
		code int
	}{
		{`not json`, http.StatusBadRequest},
		{`{"board":".../.../..."}`, http.StatusBadRequest},
		{`{"board":"...","turn":"x"}`, http.StatusBadRequest},
		{`{"board":".../.../...","turn":"z"}`, http.StatusBadRequest},
		{`{"board":"xox/xoo/oxx","turn":"o"}`, http.StatusConflict},
		{`{"board":"xxx/oo./...","turn":"o"}`, http.StatusConflict},
	}
	for _, tc := range cases {
		w := do(t, h, http.MethodPost, "/v1/move", tc.body)
		assert.Equal(t, tc.code, w.Code, "%s: %s", tc.body, w.Body.String())
		var resp errorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Error)
	}
}

func TestWinner(t *testing.T) {
	h := newRouter()
	cases := []struct {
		board string
		want  winnerResponse
	}{
		{"xxx/oo./...", winnerResponse{"x", true}},
		{"xox/xoo/oxx", winnerResponse{"", true}},
		{"x../.o./...", winnerResponse{"", false}},
	}
	for _, tc := range cases {
		w := do(t, h, http.MethodGet, "/v1/winner?board="+url.QueryEscape(tc.board), "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var resp winnerResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, tc.want, resp, tc.board)
	}

	w := do(t, h, http.MethodGet, "/v1/winner", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = do(t, h, http.MethodGet, "/v1/winner?board="+url.QueryEscape("xxx/ooo/..."), "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPprof(t *testing.T) {
	w := do(t, newRouter(), http.MethodGet, "/debug/pprof/cmdline", "")
	assert.Equal(t, http.StatusOK, w.Code)

	plain := NewRouter(server.NewEngine(ai.MinimaxConfig{}), Config{})
	w = do(t, plain, http.MethodGet, "/debug/pprof/cmdline", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
