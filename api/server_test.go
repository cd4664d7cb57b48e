package api_test

import (
	"bytes"
	"strings"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/lsst-sqre/rsp-jupyter-extensions/api"
	"github.com/lsst-sqre/rsp-jupyter-extensions/api/types"
	"github.com/lsst-sqre/rsp-jupyter-extensions/config"
	"github.com/lsst-sqre/rsp-jupyter-extensions/source"
	"github.com/lsst-sqre/rsp-jupyter-extensions/testutil"
	"github.com/stretchr/testify/require"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fixture struct {
	home   string
	baked  string
	cloner *testutil.FakeCloner
	srv    *httptest.Server
}

func setup(t *testing.T) *fixture {
	return setupWith(t, nil)
}

func setupWith(t *testing.T, mutate func(cfg *config.Config)) *fixture {
	f := &fixture{
		home:   t.TempDir(),
		baked:  t.TempDir(),
		cloner: testutil.NewFakeCloner(map[string]string{"latest.ipynb": "{}"}),
	}
	testutil.WriteTree(t, f.baked, map[string]string{
		"hello.ipynb":      `{"cells": []}`,
		"DP1/butler.ipynb": "{}",
	})
	landingSrc := t.TempDir()
	testutil.WriteTree(t, landingSrc, map[string]string{
		"landing_page.md":     "# Welcome",
		"logo_for_header.png": "png",
	})

	cfg := config.DefaultConfig()
	cfg.HomeDirectory = f.home
	cfg.TutorialsDirectory = f.baked
	cfg.ImageSpec = "sciplat-lab:w_2025_10@sha256:abc"
	cfg.RepoSpecs = "https://github.com/lsst/tutorial-notebooks@main"
	cfg.LandingCfg.SourceDirectory = landingSrc
	if mutate != nil {
		mutate(cfg)
	}

	a := api.NewAPI(*cfg)
	a.NewCloner = func(*config.Environment) source.Cloner {
		return f.cloner
	}

	f.srv = httptest.NewServer(a.Handler())
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fixture) copy(t *testing.T, entry map[string]any) *http.Response {
	body, err := json.Marshal(entry)
	require.NoError(t, err)
	resp, err := http.Post(f.srv.URL+"/rubin/tutorials", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestMenu(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	resp, err := http.Get(f.srv.URL + "/rubin/tutorials")
	r.NoError(err)
	defer resp.Body.Close()
	r.Equal(http.StatusOK, resp.StatusCode)

	var menu map[string]any
	r.NoError(json.NewDecoder(resp.Body).Decode(&menu))
	r.Nil(menu["entries"])

	subs := menu["subhierarchies"].(map[string]any)
	resident := subs["resident"].(map[string]any)
	hello := resident["entries"].(map[string]any)["hello"].(map[string]any)
	r.Equal("copy", hello["action"])
	r.Equal("/w_2025_10", hello["parent"])
	r.Equal("notebooks/tutorials/w_2025_10/hello.ipynb", hello["dest"])

	latest := subs["latest"].(map[string]any)
	r.Contains(latest["entries"], "latest")
	r.Len(f.cloner.Repos(), 1)

	// served from the stash the second time
	resp2, err := http.Get(f.srv.URL + "/rubin/tutorials")
	r.NoError(err)
	defer resp2.Body.Close()
	r.Equal(http.StatusOK, resp2.StatusCode)
	r.Len(f.cloner.Repos(), 1)
}

func TestCopyDispositions(t *testing.T) {
	r := require.New(t)
	f := setup(t)
	entry := map[string]any{
		"action":      "copy",
		"disposition": "prompt",
		"parent":      "/w_2025_10",
		"src":         filepath.Join(f.baked, "hello.ipynb"),
		"dest":        "notebooks/tutorials/w_2025_10/hello.ipynb",
	}

	resp := f.copy(t, entry)
	r.Equal(http.StatusOK, resp.StatusCode)
	var out types.CopyResponse
	r.NoError(json.NewDecoder(resp.Body).Decode(&out))
	r.Equal("notebooks/tutorials/w_2025_10/hello.ipynb", out.Dest)

	resp = f.copy(t, entry)
	r.Equal(http.StatusConflict, resp.StatusCode)

	entry["disposition"] = "abort"
	resp = f.copy(t, entry)
	r.Equal(http.StatusNoContent, resp.StatusCode)

	entry["disposition"] = "overwrite"
	resp = f.copy(t, entry)
	r.Equal(http.StatusOK, resp.StatusCode)
}

func TestCopyErrors(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	resp := f.copy(t, map[string]any{
		"action":      "copy",
		"disposition": "prompt",
		"src":         filepath.Join(f.baked, "hello.ipynb"),
		"dest":        "../../etc/hello.ipynb",
	})
	r.Equal(http.StatusForbidden, resp.StatusCode)

	resp = f.copy(t, map[string]any{
		"action":      "teleport",
		"disposition": "prompt",
		"src":         "/a",
		"dest":        "b",
	})
	r.Equal(http.StatusBadRequest, resp.StatusCode)
	var e types.ErrorResponse
	r.NoError(json.NewDecoder(resp.Body).Decode(&e))
	r.Contains(e.Error, "action")

	raw, err := http.Post(f.srv.URL+"/rubin/tutorials", "application/json", bytes.NewReader([]byte("[1, 2]")))
	r.NoError(err)
	defer raw.Body.Close()
	r.Equal(http.StatusBadRequest, raw.StatusCode)

	resp = f.copy(t, map[string]any{
		"action":      "copy",
		"disposition": "prompt",
		"src":         filepath.Join(f.baked, "missing.ipynb"),
		"dest":        "missing.ipynb",
	})
	r.Equal(http.StatusInternalServerError, resp.StatusCode)
}

func TestLanding(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	resp, err := http.Get(f.srv.URL + "/rubin/landing")
	r.NoError(err)
	defer resp.Body.Close()
	r.Equal(http.StatusOK, resp.StatusCode)

	data, err := os.ReadFile(filepath.Join(f.home, ".cache", "landing_page.md"))
	r.NoError(err)
	r.Equal("# Welcome", string(data))
}

func TestGhostwriterRedirect(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	cli := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	resp, err := cli.Get(f.srv.URL + "/rubin/ghostwriter/nb/user/alice/lab/tree/notebooks/x.ipynb")
	r.NoError(err)
	defer resp.Body.Close()
	r.Equal(http.StatusFound, resp.StatusCode)
	r.Equal("/nb/user/alice/lab/tree/notebooks/x.ipynb", resp.Header.Get("Location"))
}

func TestPeelRoute(t *testing.T) {
	stem := "/rubin/ghostwriter/"
	tests := []struct {
		path string
		want string
	}{
		{path: "/rubin/ghostwriter/nb/user/x", want: "/nb/user/x"},
		{path: "/nb/user/x/rubin/ghostwriter/queries/1", want: "/queries/1"},
		{path: "/rubin/ghostwriter/rubin/ghostwriter/loop", want: "/nb"},
		{path: "/somewhere/else", want: "/nb"},
		{path: "/rubin/ghostwriter/", want: "/"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, api.PeelRoute(tt.path, stem), tt.path)
	}
}

func TestOutlineAndVersion(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	resp, err := http.Get(f.srv.URL + "/api")
	r.NoError(err)
	defer resp.Body.Close()
	var routes []types.RouteOutline
	r.NoError(json.NewDecoder(resp.Body).Decode(&routes))
	r.Contains(routes, types.RouteOutline{Method: http.MethodPost, Path: "/rubin/tutorials"})

	v, err := http.Get(f.srv.URL + "/version")
	r.NoError(err)
	defer v.Body.Close()
	var version types.VersionResponse
	r.NoError(json.NewDecoder(v.Body).Decode(&version))
	r.Equal(config.Version(), version.Version)

	m, err := http.Get(f.srv.URL + "/metrics")
	r.NoError(err)
	defer m.Body.Close()
	r.Equal(http.StatusOK, m.StatusCode)
}

func TestCopyRequiresJSON(t *testing.T) {
	r := require.New(t)
	f := setup(t)
	testutil.WriteTree(t, f.home, map[string]string{".bashrc": "export A=1\n"})

	body := `{"action": "copy", "disposition": "overwrite", "parent": null, "src": "` +
		filepath.Join(f.baked, "hello.ipynb") + `", "dest": ".bashrc"}`

	for _, ct := range []string{"text/plain", "", "application/x-www-form-urlencoded", "multipart/form-data; boundary=x"} {
		req, err := http.NewRequest(http.MethodPost, f.srv.URL+"/rubin/tutorials", strings.NewReader(body))
		r.NoError(err)
		if ct != "" {
			req.Header.Set("Content-Type", ct)
		}
		req.Header.Set("Origin", "https://evil.example")

		resp, err := http.DefaultClient.Do(req)
		r.NoError(err)
		resp.Body.Close()
		r.Equal(http.StatusUnsupportedMediaType, resp.StatusCode, ct)
		r.Empty(resp.Header.Get("Access-Control-Allow-Origin"), ct)
	}

	data, err := os.ReadFile(filepath.Join(f.home, ".bashrc"))
	r.NoError(err)
	r.Equal("export A=1\n", string(data))

	resp, err := http.Post(f.srv.URL+"/rubin/tutorials", "application/json; charset=utf-8", strings.NewReader(body))
	r.NoError(err)
	defer resp.Body.Close()
	r.Equal(http.StatusOK, resp.StatusCode)
}

func TestCrossOriginRefusedByDefault(t *testing.T) {
	r := require.New(t)
	f := setup(t)

	req, err := http.NewRequest(http.MethodGet, f.srv.URL+"/rubin/tutorials", nil)
	r.NoError(err)
	req.Header.Set("Origin", "https://evil.example")
	resp, err := http.DefaultClient.Do(req)
	r.NoError(err)
	resp.Body.Close()
	r.Empty(resp.Header.Get("Access-Control-Allow-Origin"))

	pre, err := http.NewRequest(http.MethodOptions, f.srv.URL+"/rubin/tutorials", nil)
	r.NoError(err)
	pre.Header.Set("Origin", "https://evil.example")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err = http.DefaultClient.Do(pre)
	r.NoError(err)
	resp.Body.Close()
	r.Empty(resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCrossOriginAllowedWhenConfigured(t *testing.T) {
	r := require.New(t)
	f := setupWith(t, func(cfg *config.Config) {
		cfg.APICfg.AllowedOrigins = []string{"https://data.lsst.cloud"}
	})

	pre, err := http.NewRequest(http.MethodOptions, f.srv.URL+"/rubin/tutorials", nil)
	r.NoError(err)
	pre.Header.Set("Origin", "https://data.lsst.cloud")
	pre.Header.Set("Access-Control-Request-Method", http.MethodPost)
	pre.Header.Set("Access-Control-Request-Headers", "Content-Type")
	resp, err := http.DefaultClient.Do(pre)
	r.NoError(err)
	resp.Body.Close()
	r.Equal("https://data.lsst.cloud", resp.Header.Get("Access-Control-Allow-Origin"))

	pre.Header.Set("Origin", "https://evil.example")
	resp, err = http.DefaultClient.Do(pre)
	r.NoError(err)
	resp.Body.Close()
	r.Empty(resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestListenAddress(t *testing.T) {
	cfg := config.DefaultConfig()
	require.Equal(t, "127.0.0.1:8888", api.NewAPI(*cfg).Addr())

	cfg.APICfg.ListenAddress = "::1"
	cfg.APICfg.Port = 9000
	require.Equal(t, "[::1]:9000", api.NewAPI(*cfg).Addr())
}
