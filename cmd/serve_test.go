package cmd

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/jsphweid/reslice/config"
	"github.com/jsphweid/reslice/constants"
	"github.com/jsphweid/reslice/midi"
	"github.com/jsphweid/reslice/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/gomidi/midi/v2/smf"
)

const arpeggio = `{
	"bpm": 120,
	"events": [
		{"time": 0.0, "estimates": [{"pitch": 60, "confidence": 0.9}]},
		{"time": 0.5, "estimates": [{"pitch": 64, "confidence": 0.9}]},
		{"time": 1.0, "estimates": [{"pitch": 67, "confidence": 0.9}]}
	]
}`

func post(t *testing.T, path, body string) *http.Response {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	return w.Result()
}

func withServeConfig(t *testing.T, cfg *config.Config, save bool) {
	prevCfg, prevSave := serveConfig, serveSave
	serveConfig, serveSave = cfg, save
	t.Cleanup(func() { serveConfig, serveSave = prevCfg, prevSave })
}

func TestHandleRender(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/render", arpeggio)
	assert := assert.New(t)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal("audio/midi", resp.Header.Get("Content-Type"))
	assert.Equal("3", resp.Header.Get("X-Note-Count"))
	assert.Equal("120", resp.Header.Get("X-Bpm"))
	assert.NotEmpty(resp.Header.Get("X-Render-Id"))

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal([]byte("MThd"), data[:4])

	s, err := midi.ReadMidi(data)
	require.NoError(t, err)
	assert.Equal(smf.MetricTicks(24), s.TimeFormat)
	assert.Len(s.Tracks, 1)
}

func TestHandleRenderSaves(t *testing.T) {
	cfg := config.Default()
	cfg.OutDir = t.TempDir()
	withServeConfig(t, cfg, true)

	resp := post(t, "/render", arpeggio)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	path := filepath.Join(cfg.OutDir, resp.Header.Get("X-Render-Id")+".mid")
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestHandleQuantize(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/quantize", arpeggio)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var qr model.QuantizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))

	assert := assert.New(t)
	assert.Equal(120.0, qr.BPM)
	assert.Equal(uint32(500000), qr.TempoMicros)
	assert.Equal([]model.QuantizedNote{
		{OnTick: 0, OffTick: 6, Pitch: 60},
		{OnTick: 24, OffTick: 30, Pitch: 64},
		{OnTick: 48, OffTick: 54, Pitch: 67},
	}, qr.Notes)
	require.Len(t, qr.Events, 6)
	assert.Equal(model.NoteOn, qr.Events[0].Kind)
	assert.Equal(model.NoteOff, qr.Events[5].Kind)
	assert.NotEmpty(qr.RenderId)
}

func TestHandleQuantizeSlicerMode(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/quantize", `{"bpm": 120, "mode": "slicer", "events": [{"time": 0}, {"time": 0.5}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var qr model.QuantizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	assert.Equal(t, []model.QuantizedNote{
		{OnTick: 0, OffTick: 480, Pitch: 36},
		{OnTick: 480, OffTick: 960, Pitch: 37},
	}, qr.Notes)
	// the last slice rings out
	assert.Len(t, qr.Events, 3)
}

func TestHandleQuantizeHoldLast(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/quantize", `{"bpm": 120, "hold_last": true, "events": [{"time": 0, "estimates": [{"pitch": 60}]}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var qr model.QuantizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	require.Len(t, qr.Events, 1)
	assert.Equal(t, model.NoteOn, qr.Events[0].Kind)
}

func TestBadRequests(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	tests := map[string]string{
		"garbage":      `{"bpm":`,
		"unknown mode": `{"bpm": 120, "mode": "drums"}`,
		"bad strategy": `{"bpm": 120, "strategy": "loudest"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			resp := post(t, "/render", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var er model.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
			assert.NotEmpty(t, er.Error)
		})
	}
}

func TestHealthz(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok\n", w.Body.String())
}

func TestCORS(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewBufferString(arpeggio))
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	NewRouter().ServeHTTP(w, req)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestHandleQuantizeClampsFarEvents(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/quantize", `{"bpm": 120, "events": [{"time": 1e19, "estimates": [{"pitch": 60, "confidence": 0.9}]}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var qr model.QuantizeResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&qr))
	require.Len(t, qr.Notes, 1)
	assert.GreaterOrEqual(t, qr.Notes[0].OnTick, 0)
	assert.LessOrEqual(t, qr.Notes[0].OnTick, constants.MaxTick)
	assert.Greater(t, qr.Notes[0].OffTick, qr.Notes[0].OnTick)
}

func TestHandleRenderSlowTempo(t *testing.T) {
	withServeConfig(t, config.Default(), false)

	resp := post(t, "/render", `{"bpm": 2, "events": [{"time": 0, "estimates": [{"pitch": 60}]}]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	// set_tempo right after the track header holds the capped tempo
	assert.Equal(t, []byte{0x00, 0xFF, 0x51, 0x03, 0xFF, 0xFF, 0xFF}, data[22:29])
}

func TestRequestBodyLimit(t *testing.T) {
	withServeConfig(t, config.Default(), false)
	prev := maxRequestBytes
	maxRequestBytes = 64
	t.Cleanup(func() { maxRequestBytes = prev })

	resp := post(t, "/quantize", arpeggio)
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)

	var er model.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&er))
	assert.Contains(t, er.Error, "64 bytes")
}
