package status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bft-labs/foldership/internal/app"
	"github.com/bft-labs/foldership/pkg/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeProvider struct{}

func (fakeProvider) Root() string      { return "/srv/in" }
func (fakeProvider) Lifecycle() string { return "Running" }
func (fakeProvider) Loop() string      { return "Sleeping" }
func (fakeProvider) Stats() app.Snapshot {
	return app.Snapshot{Cycles: 3, Delivered: 2, Failed: 1, LastPath: "/srv/in/abc/img.png"}
}

func TestServer_Healthz(t *testing.T) {
	s := NewServer("127.0.0.1:0", fakeProvider{}, log.NewNoopLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
}

func TestServer_Status(t *testing.T) {
	s := NewServer("127.0.0.1:0", fakeProvider{}, log.NewNoopLogger())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	s.Handler().ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var got Report
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if got.Root != "/srv/in" || got.Loop != "Sleeping" || got.Lifecycle != "Running" {
		t.Errorf("report = %+v", got)
	}
	if got.Stats.Delivered != 2 || got.Stats.Failed != 1 {
		t.Errorf("stats = %+v", got.Stats)
	}
}

func TestServer_StartShutdown(t *testing.T) {
	s := NewServer("127.0.0.1:0", fakeProvider{}, log.NewNoopLogger())
	if err := s.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	resp, err := http.Get("http://" + s.Addr() + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := s.Shutdown(ctx); err != nil {
		t.Errorf("Shutdown() error = %v", err)
	}
}
