package cache

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/caldera-labs/itemfetch/transport"
)

func TestMemory_ImplementsCache(_ *testing.T) {
	var _ Cache = (*Memory)(nil)
}

func TestMemory_SetAndGet(t *testing.T) {
	c := NewMemory()
	resp := &transport.Response{Status: 200, Body: []byte(`{"items":[]}`)}

	if err := c.Set("key1", resp, time.Minute); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	got, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Status != 200 {
		t.Errorf("expected status 200, got %d", got.Status)
	}
}

func TestMemory_Miss(t *testing.T) {
	c := NewMemory()
	_, ok := c.Get("missing")
	if ok {
		t.Error("expected cache miss for never-set key")
	}
}

func TestMemory_TTLExpiration(t *testing.T) {
	c := NewMemory()
	_ = c.Set("key1", &transport.Response{Status: 200}, 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("key1"); ok {
		t.Error("expected cache miss after TTL")
	}
	// The expired entry must be evicted by the read, not just hidden.
	if c.Len() != 0 {
		t.Errorf("expected expired entry evicted, len = %d", c.Len())
	}
}

func TestMemory_SetValidation(t *testing.T) {
	c := NewMemory()
	resp := &transport.Response{Status: 200}

	tests := []struct {
		name string
		key  string
		ttl  time.Duration
	}{
		{"empty key", "", time.Minute},
		{"zero ttl", "key1", 0},
		{"negative ttl", "key1", -time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Set(tt.key, resp, tt.ttl)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("Set(%q, %v) error = %v, want ErrInvalidArgument", tt.key, tt.ttl, err)
			}
		})
	}
	if c.Len() != 0 {
		t.Errorf("rejected writes must not be stored, len = %d", c.Len())
	}
}

func TestMemory_Update(t *testing.T) {
	c := NewMemory()
	_ = c.Set("key1", &transport.Response{Status: 200}, time.Minute)
	_ = c.Set("key1", &transport.Response{Status: 201}, time.Minute)

	got, ok := c.Get("key1")
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Status != 201 {
		t.Errorf("expected latest write, got status %d", got.Status)
	}
	if c.Len() != 1 {
		t.Errorf("expected len 1, got %d", c.Len())
	}
}

func TestMemory_Remove(t *testing.T) {
	c := NewMemory()
	_ = c.Set("key1", &transport.Response{Status: 200}, time.Minute)
	c.Remove("key1")

	if _, ok := c.Get("key1"); ok {
		t.Error("expected miss after remove")
	}
	// Removing an absent key must not panic or error.
	c.Remove("key1")
}

func TestMemory_ClearIdempotent(t *testing.T) {
	c := NewMemory()
	_ = c.Set("a", &transport.Response{Status: 200}, time.Minute)
	_ = c.Set("b", &transport.Response{Status: 200}, time.Minute)

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected len 0 after clear, got %d", c.Len())
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected len 0 after second clear, got %d", c.Len())
	}
}

func TestMemory_Concurrent(_ *testing.T) {
	c := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := string(rune('a' + i%26))
			_ = c.Set(key, &transport.Response{Status: 200}, time.Minute)
			c.Get(key)
			c.Len()
		}(i)
	}
	wg.Wait()
}
