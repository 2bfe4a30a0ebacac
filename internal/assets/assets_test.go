package assets

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Faultbox/cutaway/pkg/assembly"
	"github.com/Faultbox/cutaway/pkg/math"
)

func countingLoader(calls *int) LoadFunc {
	return func(name string, cells int) ([]assembly.Part, error) {
		*calls++
		if name == "missing" {
			return nil, errors.New("unknown assembly")
		}
		return []assembly.Part{&assembly.Leaf{
			Name:  name,
			Shape: assembly.Box(name, math.Vec3{X: 1, Y: 1, Z: 1}, [3]float32{1, 1, 1}),
		}}, nil
	}
}

func TestManagerCachesByNameAndCells(t *testing.T) {
	calls := 0
	m := NewManagerWith(countingLoader(&calls))

	first, err := m.Load("cube", 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	second, err := m.Load("cube", 16)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 build, got %d", calls)
	}
	if first[0] != second[0] {
		t.Error("expected the cached parts to be returned")
	}

	if _, err := m.Load("cube", 32); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 2 {
		t.Errorf("different resolution should rebuild, got %d builds", calls)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 2 {
		t.Errorf("stats: hits %d misses %d", hits, misses)
	}
}

func TestManagerDoesNotCacheErrors(t *testing.T) {
	calls := 0
	m := NewManagerWith(countingLoader(&calls))

	for range 2 {
		if _, err := m.Load("missing", 16); err == nil {
			t.Fatal("expected error")
		}
	}
	if calls != 2 {
		t.Errorf("expected failed loads to retry, got %d builds", calls)
	}
}

func TestManagerReloadsEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.yaml")
	if err := os.WriteFile(path, []byte("parts: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	calls := 0
	m := NewManagerWith(countingLoader(&calls))
	if _, err := m.Load(path, 16); err != nil {
		t.Fatalf("Load: %v", err)
	}

	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if _, err := m.Load(path, 16); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected edited file to rebuild, got %d builds", calls)
	}
}

func TestManagerConcurrentLoads(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	m := NewManagerWith(func(name string, cells int) ([]assembly.Part, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		return []assembly.Part{&assembly.Leaf{Name: name}}, nil
	})

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Load("stack", 8); err != nil {
				t.Errorf("Load: %v", err)
			}
		}()
	}
	wg.Wait()

	if calls != 1 {
		t.Errorf("expected a single build, got %d", calls)
	}
}

func TestCache(t *testing.T) {
	c := NewCache[string, int]()

	if _, ok := c.Get("missing"); ok {
		t.Error("expected cache miss")
	}
	c.Set("a", 1)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Errorf("Get(a) = %d, %v", v, ok)
	}
	if _, ok := c.Peek("a"); !ok {
		t.Error("Peek(a) missed")
	}

	hits, misses := c.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("stats: hits %d misses %d", hits, misses)
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache, got %d", c.Len())
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("stats not reset: %d %d", hits, misses)
	}
}
