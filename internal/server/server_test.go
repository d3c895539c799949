package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/theirongolddev/sienna/internal/catalog"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/zip"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cat, stats := catalog.Default()
	return New(Config{
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		CatalogSource: "bundled",
	}, cat, stats, nil)
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/healthz", "")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("GET /healthz = %d %q, want 200 ok", w.Code, w.Body.String())
	}
}

func TestEstimate_OK(t *testing.T) {
	s := newTestServer(t)
	w := do(t, s.Handler(), http.MethodPost, "/v1/estimate", `{"area": 100, "tier": "medio", "preferences": "piso de marmol"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	var resp struct {
		Result struct {
			Total string `json:"total"`
			Tier  string `json:"tier"`
			Items []struct {
				Subcategory string `json:"subcategory"`
				CatalogKey  string `json:"catalog_key"`
				Quantity    string `json:"quantity"`
			} `json:"items"`
		} `json:"result"`
		Breakdown []json.RawMessage `json:"breakdown"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result.Tier != "medium" {
		t.Errorf("tier = %q, want medium", resp.Result.Tier)
	}
	if len(resp.Result.Items) != 13 {
		t.Fatalf("items = %d, want 13", len(resp.Result.Items))
	}
	for _, it := range resp.Result.Items {
		if it.Subcategory == "Walls" && it.Quantity != "220" {
			t.Errorf("wall quantity = %s, want 220", it.Quantity)
		}
		if it.Subcategory == "Flooring" && it.CatalogKey != "UEC.ED.78.110.1020" {
			t.Errorf("floor key = %s, want marble", it.CatalogKey)
		}
	}
	if len(resp.Breakdown) != 5 {
		t.Errorf("breakdown categories = %d, want 5", len(resp.Breakdown))
	}
	if got := s.Status().Estimates; got != 1 {
		t.Errorf("Status().Estimates = %d, want 1", got)
	}
}

func TestEstimate_BadInput(t *testing.T) {
	h := newTestServer(t).Handler()
	for name, body := range map[string]string{
		"negative area": `{"area": -10, "tier": "basic"}`,
		"unknown tier":  `{"area": 10, "tier": "gold"}`,
		"not json":      `area=10`,
	} {
		if w := do(t, h, http.MethodPost, "/v1/estimate", body); w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestIntake(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodPost, "/v1/intake", `{"text": "Oficina de 250 m2 acabado premium"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var in struct {
		Area    string `json:"area"`
		Tier    string `json:"tier"`
		Context string `json:"context"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &in); err != nil {
		t.Fatal(err)
	}
	if in.Area != "250" || in.Tier != "luxury" || in.Context != "oficina" {
		t.Errorf("intake = %+v", in)
	}
}

func TestStructure(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodPost, "/v1/structure", `{"context": "obra publica"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("08_Reportes_Dependencia")) {
		t.Errorf("structure response missing public works folder: %s", w.Body.String())
	}
}

func TestCatalog(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodGet, "/v1/catalog", "")
	var resp struct {
		Entries []catalog.Entry   `json:"entries"`
		Stats   catalog.LoadStats `json:"stats"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Entries) != 20 || resp.Stats.Accepted != 20 {
		t.Errorf("catalog = %d entries, stats %+v", len(resp.Entries), resp.Stats)
	}
}

func TestBundle(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodPost, "/v1/bundle",
		`{"project_name": "Casa Sur", "area": 90, "tier": "basic"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/zip" {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "Casa_Sur_Estructura_SIENNA.zip") {
		t.Errorf("Content-Disposition = %q", cd)
	}

	data := w.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("response is not a zip: %v", err)
	}
	found := false
	for _, f := range zr.File {
		if f.Name == "Casa_Sur/05_Costos_y_Presupuestos/PRESUPUESTO_SIENNA_PARTIDAS.csv" {
			found = true
		}
	}
	if !found {
		t.Error("bundle missing budget summary")
	}
}

func TestBundle_MissingName(t *testing.T) {
	w := do(t, newTestServer(t).Handler(), http.MethodPost, "/v1/bundle", `{"area": 90}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	s := newTestServer(t)
	s.cfg.Addr = addr

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get("http://" + addr + "/healthz")
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server never came up: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
