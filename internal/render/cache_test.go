package render

import (
	"sync"
	"testing"

	"github.com/charmbracelet/glamour"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"zero width", DefaultOptions().WithStyle("dark").WithWidth(0), DefaultOptions().WithStyle("dark")},
		{"narrow pane", DefaultOptions().WithStyle("dark").WithWidth(3), DefaultOptions().WithStyle("dark").WithWidth(minPaneWidth)},
		{"wide pane", DefaultOptions().WithStyle("light").WithWidth(120), DefaultOptions().WithStyle("light").WithWidth(120)},
		{"auto", DefaultOptions(), DefaultOptions().WithStyle(ResolveStyle(StyleAuto))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalize(); got != tt.want {
				t.Errorf("normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestPaneSizesShareRenderersAfterClamp(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle("notty")
	Pane("a", opts.WithWidth(5))
	Pane("b", opts.WithWidth(10))

	s := Stats()
	if s.Configs != 1 {
		t.Errorf("Configs = %d, want 1 for two panes narrower than the minimum", s.Configs)
	}
	if s.Created != 1 || s.Reused != 1 {
		t.Errorf("Created = %d, Reused = %d, want 1 and 1", s.Created, s.Reused)
	}
}

func TestCacheReuseAndBound(t *testing.T) {
	ClearCache()
	defer ClearCache()

	key := DefaultOptions().WithStyle("notty").normalize()

	var checkedOut []*glamour.TermRenderer
	for i := 0; i < maxIdle+2; i++ {
		r, err := panes.get(key)
		if err != nil {
			t.Fatalf("get() returned error: %v", err)
		}
		checkedOut = append(checkedOut, r)
	}
	for _, r := range checkedOut {
		panes.put(key, r)
	}

	s := Stats()
	if s.Created != maxIdle+2 {
		t.Errorf("Created = %d, want %d", s.Created, maxIdle+2)
	}
	if s.Idle != maxIdle {
		t.Errorf("Idle = %d, want %d", s.Idle, maxIdle)
	}

	if _, err := panes.get(key); err != nil {
		t.Fatalf("get() returned error: %v", err)
	}
	if Stats().Reused != 1 {
		t.Errorf("Reused = %d, want 1", Stats().Reused)
	}
}

func TestCacheConcurrentPanes(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions().WithStyle("notty").WithWidth(60)
	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("# Test", opts); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render error: %v", err)
	}
	if s := Stats(); s.Configs != 1 || s.Idle > maxIdle {
		t.Errorf("Stats() = %+v, want one config with at most %d idle", s, maxIdle)
	}
}

func TestClearCache(t *testing.T) {
	Pane("x", DefaultOptions().WithStyle("notty"))
	ClearCache()

	if s := Stats(); s != (CacheStats{}) {
		t.Errorf("Stats() after clear = %+v, want zero", s)
	}
}

func TestNewTermRendererInvalidStyle(t *testing.T) {
	if _, err := newTermRenderer(DefaultOptions().WithStyle("invalid_style_path").normalize()); err == nil {
		t.Error("expected error for invalid style")
	}
}
