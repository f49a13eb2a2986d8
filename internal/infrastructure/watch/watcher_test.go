package watch

import (
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/emuhub/emuhub/internal/core/domain"
)

func TestDebouncer_CollapsesBursts(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)

	var calls atomic.Int32
	for i := 0; i < 10; i++ {
		d.do(func() { calls.Add(1) })
		time.Sleep(2 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one trailing call, got %d", got)
	}
}

func TestDebouncer_SeparateBursts(t *testing.T) {
	d := newDebouncer(10 * time.Millisecond)

	var calls atomic.Int32
	d.do(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)
	d.do(func() { calls.Add(1) })
	time.Sleep(50 * time.Millisecond)

	if got := calls.Load(); got != 2 {
		t.Fatalf("expected two calls, got %d", got)
	}
}

func TestLibraryWatcher_SystemFor(t *testing.T) {
	registry := domain.NewRegistry([]domain.SystemDescriptor{
		{ID: "nes", Name: "Nintendo NES"},
		{ID: "psx", Name: "PlayStation"},
	})
	root := t.TempDir()
	w := NewLibraryWatcher(nil, registry, root, zerolog.Nop())

	cases := []struct {
		path string
		want string
	}{
		{filepath.Join(root, "nes", "Mario.nes"), "nes"},
		{filepath.Join(root, "psx"), "psx"},
		{filepath.Join(root, "unknown", "file.bin"), ""},
		{root, ""},
		{filepath.Join(root, "stray.txt"), ""},
	}
	for _, tc := range cases {
		if got := w.systemFor(tc.path); got != tc.want {
			t.Fatalf("systemFor(%s) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
