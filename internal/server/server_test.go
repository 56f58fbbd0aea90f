package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return New(Config{Port: 0})
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(data)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)
}

func TestStyles(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/styles", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var styles []styleInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &styles))
	require.Len(t, styles, 6)
	assert.Equal(t, "chillhop", styles[0].ID)
}

func TestGenerateAndDownload(t *testing.T) {
	s := newTestServer(t)
	seed := int64(1)
	rec := doJSON(t, s, http.MethodPost, "/generate", generateRequest{
		Style:    "chillhop",
		Key:      "C",
		BPM:      85,
		Measures: 4,
		Seed:     &seed,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp generateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "chillhop", resp.Style)
	assert.Equal(t, 85, resp.BPM)
	assert.Equal(t, int64(1), resp.Seed)
	assert.Greater(t, resp.Events, 0)
	require.NotEmpty(t, resp.ID)

	dl := doJSON(t, s, http.MethodGet, resp.DownloadURL, nil)
	require.Equal(t, http.StatusOK, dl.Code)
	assert.Equal(t, "audio/midi", dl.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(dl.Body.String(), "MThd"))
}

func TestGenerateValidation(t *testing.T) {
	s := newTestServer(t)

	t.Run("missing style", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/generate", generateRequest{})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown style", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/generate", generateRequest{Style: "synthwave"})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid key", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/generate", generateRequest{Style: "chillhop", Key: "H#"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bpm out of range", func(t *testing.T) {
		rec := doJSON(t, s, http.MethodPost, "/generate", generateRequest{Style: "chillhop", BPM: 300})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDownloadUnknown(t *testing.T) {
	s := newTestServer(t)
	rec := doJSON(t, s, http.MethodGet, "/download/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
