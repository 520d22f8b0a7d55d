package cache

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	c := New(time.Minute)

	if _, ok := c.Get("about"); ok {
		t.Error("empty cache should miss")
	}

	c.Set("about", "<html>about</html>")
	got, ok := c.Get("about")
	if !ok || got != "<html>about</html>" {
		t.Errorf("Get = (%q, %v)", got, ok)
	}

	// Overwrite replaces content unconditionally.
	c.Set("about", "v2")
	if got, _ := c.Get("about"); got != "v2" {
		t.Errorf("Get after overwrite = %q, want v2", got)
	}
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Set("p", "content")

	now = now.Add(59 * time.Second)
	if _, ok := c.Get("p"); !ok {
		t.Error("entry within maxAge should hit")
	}

	now = now.Add(2 * time.Second)
	if _, ok := c.Get("p"); ok {
		t.Error("stale entry should miss")
	}

	// The stale read evicts; the slot is simply empty afterwards.
	if c.Len() != 0 {
		t.Errorf("Len after eviction = %d, want 0", c.Len())
	}
	if _, ok := c.Get("p"); ok {
		t.Error("second read of an evicted entry should still miss")
	}
}

func TestSetResetsAge(t *testing.T) {
	c := New(time.Minute)
	now := time.Unix(1000, 0)
	c.now = func() time.Time { return now }

	c.Set("p", "v1")
	now = now.Add(50 * time.Second)
	c.Set("p", "v2")
	now = now.Add(50 * time.Second)

	if got, ok := c.Get("p"); !ok || got != "v2" {
		t.Errorf("re-Set entry should be fresh, got (%q, %v)", got, ok)
	}
}

func TestClear(t *testing.T) {
	c := New(time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len after Clear = %d", c.Len())
	}
}

func TestWarm(t *testing.T) {
	c := New(time.Minute)

	warmed := c.Warm(context.Background(), []string{"a", "bad", "b"},
		func(ctx context.Context, path string) (string, error) {
			if path == "bad" {
				return "", fmt.Errorf("needs request context")
			}
			return "<html>" + path + "</html>", nil
		})

	if warmed != 2 {
		t.Errorf("Warm = %d, want 2", warmed)
	}
	if got, ok := c.Get("a"); !ok || got != "<html>a</html>" {
		t.Errorf("Get(a) = (%q, %v)", got, ok)
	}
	if _, ok := c.Get("bad"); ok {
		t.Error("failed warm render must not be cached")
	}
}
