package kvstore

import (
	"fmt"
	"sort"
	"sync"
	"testing"
)

func TestSetGetRemove(t *testing.T) {
	store := NewInMemoryStore()

	if _, ok := store.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}

	if err := store.Set("quizResult:abc", `{"primary":"Natural"}`); err != nil {
		t.Fatal(err)
	}
	v, ok := store.Get("quizResult:abc")
	if !ok || v != `{"primary":"Natural"}` {
		t.Fatalf("unexpected value %q", v)
	}

	// Last writer wins.
	if err := store.Set("quizResult:abc", `{"primary":"Sexy"}`); err != nil {
		t.Fatal(err)
	}
	if v, _ = store.Get("quizResult:abc"); v != `{"primary":"Sexy"}` {
		t.Fatalf("expected overwrite, got %q", v)
	}

	store.Remove("quizResult:abc")
	if _, ok = store.Get("quizResult:abc"); ok {
		t.Fatal("expected key removed")
	}

	// Removing a missing key is a no-op.
	store.Remove("quizResult:abc")
}

func TestKeysPrefixFilter(t *testing.T) {
	store := NewInMemoryStore()
	for _, k := range []string{"quizResult:a", "quizResult:b", "fb_pixel_id"} {
		if err := store.Set(k, "x"); err != nil {
			t.Fatal(err)
		}
	}

	keys := store.Keys("quizResult:")
	sort.Strings(keys)
	if len(keys) != 2 || keys[0] != "quizResult:a" || keys[1] != "quizResult:b" {
		t.Fatalf("unexpected keys %v", keys)
	}

	if all := store.Keys(""); len(all) != 3 {
		t.Fatalf("expected all 3 keys, got %v", all)
	}
}

func TestConcurrentAccess(t *testing.T) {
	store := NewInMemoryStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("key-%d", i%10)
			_ = store.Set(key, "v")
			store.Get(key)
			store.Keys("key-")
		}(i)
	}
	wg.Wait()

	if len(store.Keys("key-")) != 10 {
		t.Fatalf("expected 10 keys, got %d", len(store.Keys("key-")))
	}
}
