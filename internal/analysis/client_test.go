package analysis

import (
	"context"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/hexlab/tacboard/internal/events"
)

func testFrame() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	return img
}

func TestAnalyzeDecodesAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "image/png" {
			t.Errorf("content type = %s", ct)
		}
		if _, err := png.Decode(r.Body); err != nil {
			t.Errorf("body is not a PNG: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"alerts":[{"severity":"warn","message":"mid missing"}],"elapsed_ms":12}`))
	}))
	defer srv.Close()

	result, err := NewClient(srv.URL).Analyze(context.Background(), testFrame())
	if err != nil {
		t.Fatalf("Analyze: %v", err)
	}
	if len(result.Alerts) != 1 {
		t.Fatalf("got %d alerts", len(result.Alerts))
	}
	if a := result.Alerts[0]; a.Severity != "warn" || a.Message != "mid missing" {
		t.Errorf("alert = %+v", a)
	}
}

func TestAnalyzeReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Analyze(context.Background(), testFrame()); err == nil {
		t.Fatal("expected error for 503 response")
	}
}

func TestExporterPublishesAlerts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"alerts":[{"severity":"info","message":"objective up"}]}`))
	}))
	defer srv.Close()

	bus := events.NewBus()
	bus.SetDispatcher(func(f func()) { f() })
	bus.Start()
	defer bus.Stop()

	alerts := make(chan events.Event, 8)
	bus.Subscribe(events.TypeAlert, func(e events.Event) { alerts <- e })

	exp := NewExporter(NewClient(srv.URL), func() image.Image { return testFrame() },
		bus, nil, 0, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- exp.Run(ctx) }()

	select {
	case e := <-alerts:
		if e.Message != "objective up" {
			t.Errorf("alert message = %q", e.Message)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no alert published")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run returned %v after cancel", err)
	}
}

func TestExporterSkipsNilFrames(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte(`{"alerts":[]}`))
	}))
	defer srv.Close()

	bus := events.NewBus()
	bus.SetDispatcher(func(f func()) { f() })

	exp := NewExporter(NewClient(srv.URL), func() image.Image { return nil },
		bus, nil, 0, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()
	exp.Run(ctx)

	if hits != 0 {
		t.Fatalf("service hit %d times with no frames available", hits)
	}
}

func TestSaveSnapshotWritesPNG(t *testing.T) {
	dir := t.TempDir()
	path, err := SaveSnapshot(dir, testFrame())
	if err != nil {
		t.Fatalf("SaveSnapshot: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("saved file is not a PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 8 {
		t.Errorf("saved bounds = %v", b)
	}
}
