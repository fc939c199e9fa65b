package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/probe.motion/internal/db"
	"github.com/banshee-data/probe.motion/internal/motion"
	"github.com/banshee-data/probe.motion/internal/testutil"
)

const scenarioConfigJSON = `{
	"space": {
		"label": ["x", "y"],
		"range": [[-10, 10], [-10, 10]],
		"num": [21, 21]
	},
	"layer": {
		"0": {"type": "grid", "limits": [[-10, 10], [-10, 10]], "steps": [3, 3]}
	},
	"exclusion": {
		"0": {"type": "circle", "radius": 5, "exclude": "outside"}
	}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	database, err := db.NewDB(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return NewServer(database)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
	}
	rec := httptest.NewRecorder()
	s.Routes().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/health", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}

func TestTypesListsRegisteredVariants(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/motion/types", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp map[string][]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp["exclusions"], "circle")
	require.Contains(t, resp["exclusions"], "divider")
	require.Contains(t, resp["exclusions"], "lapd")
	require.Contains(t, resp["layers"], "grid")
}

func TestGenerateScenario(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodPost, "/api/motion/generate", scenarioConfigJSON)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var resp struct {
		Count  int         `json:"count"`
		Points [][]float64 `json:"points"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Count)
	testutil.AssertPointsClose(t, resp.Points, [][]float64{{0, 0}}, 1e-9)
}

func TestGenerateRejectsBadConfig(t *testing.T) {
	s := newTestServer(t)

	testCases := []struct {
		name string
		body string
	}{
		{"malformed_json", `{"space": `},
		{"unknown_exclusion", `{
			"space": {"label": ["x", "y"], "range": [[-1, 1], [-1, 1]], "num": [3, 3]},
			"exclusion": {"0": {"type": "wormhole"}}
		}`},
		{"bad_axis_range", `{
			"space": {"label": ["x"], "range": [[5, -5]], "num": [3]}
		}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, s, http.MethodPost, "/api/motion/generate", tc.body)
			testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
		})
	}
}

func TestCheckPoint(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct {
		name     string
		point    string
		excluded bool
	}{
		{"center_included", "[0, 0]", false},
		{"corner_excluded", "[10, 10]", true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			body := fmt.Sprintf(`{"config": %s, "point": %s}`, scenarioConfigJSON, tc.point)
			rec := doRequest(t, s, http.MethodPost, "/api/motion/check", body)
			testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

			var resp map[string]bool
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.excluded, resp["excluded"])
		})
	}

	t.Run("dimension_mismatch", func(t *testing.T) {
		body := fmt.Sprintf(`{"config": %s, "point": [0, 0, 0]}`, scenarioConfigJSON)
		rec := doRequest(t, s, http.MethodPost, "/api/motion/check", body)
		testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	})
}

func TestConfigStoreRoundTrip(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPut, "/api/motion/configs/scenario", scenarioConfigJSON)
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	rec = doRequest(t, s, http.MethodGet, "/api/motion/configs/scenario", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	var stored db.MotionConfig
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	require.Equal(t, "scenario", stored.Name)

	// The stored TOML must rebuild the same point sequence.
	var cfg motion.Config
	require.NoError(t, toml.Unmarshal([]byte(stored.ConfigTOML), &cfg))
	ml, err := motion.NewMotionListFromConfig(cfg)
	require.NoError(t, err)
	testutil.AssertPointsClose(t, ml.Points(), [][]float64{{0, 0}}, 1e-9)

	rec = doRequest(t, s, http.MethodGet, "/api/motion/configs", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	rec = doRequest(t, s, http.MethodGet, "/api/motion/configs/absent", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusNotFound)

	// Invalid configs are rejected before they reach the store.
	rec = doRequest(t, s, http.MethodPut, "/api/motion/configs/broken",
		`{"space": {"label": ["x"], "range": [[5, -5]], "num": [3]}}`)
	testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
}

func TestListRunsEmpty(t *testing.T) {
	s := newTestServer(t)
	rec := doRequest(t, s, http.MethodGet, "/api/motion/runs", "")
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
}
