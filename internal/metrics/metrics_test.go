package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/diogo/mdlive/internal/preview"
)

func TestObserveRender(t *testing.T) {
	r := New()

	r.ObserveRender(preview.OutcomeRendered, 2*time.Millisecond, 3)
	r.ObserveRender(preview.OutcomeRendered, time.Millisecond, 0)
	r.ObserveRender(preview.OutcomePlaceholder, time.Millisecond, 0)

	tests := []struct {
		outcome string
		want    float64
	}{
		{"rendered", 2},
		{"placeholder", 1},
		{"failed", 0},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(r.renders.WithLabelValues(tt.outcome)); got != tt.want {
			t.Errorf("renders{%s} = %v, want %v", tt.outcome, got, tt.want)
		}
	}
	if got := testutil.ToFloat64(r.blocks); got != 3 {
		t.Errorf("blocks = %v, want 3", got)
	}
}

func TestRecordersAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.ObserveRender(preview.OutcomeFailed, time.Millisecond, 0)

	if got := testutil.ToFloat64(a.renders.WithLabelValues("failed")); got != 1 {
		t.Errorf("a failed = %v, want 1", got)
	}
	if got := testutil.ToFloat64(b.renders.WithLabelValues("failed")); got != 0 {
		t.Errorf("b failed = %v, want 0", got)
	}
}

func TestHandler(t *testing.T) {
	r := New()
	r.ObserveRender(preview.OutcomeUnavailable, time.Millisecond, 0)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{
		`mdlive_renders_total{outcome="unavailable"} 1`,
		"mdlive_render_duration_seconds_bucket",
		"go_goroutines",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("exposition missing %q", want)
		}
	}
}

func TestBinderRecordsOutcomes(t *testing.T) {
	r := New()
	doc, _, _ := preview.NewEditorDocument("")

	if _, ok := preview.Bind(doc, preview.WithRecorder(r)); !ok {
		t.Fatal("Bind() failed")
	}
	if got := testutil.ToFloat64(r.renders.WithLabelValues("unavailable")); got != 1 {
		t.Errorf("unavailable = %v, want 1", got)
	}
}
