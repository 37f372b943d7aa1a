package itemfetch

import (
	"context"
	"fmt"
	"testing"

	"github.com/caldera-labs/itemfetch/transport"
)

func TestLoader_LoadSuccess(t *testing.T) {
	body := []byte(`{"items":[
		{"id":"1","name":"alpha","active":true,"score":10},
		{"id":"2","name":"beta","active":true,"score":2},
		{"id":"3","name":"gamma","active":false,"score":9}
	]}`)
	caller := &countingCaller{fn: func(_ int, _ context.Context) (*transport.Response, error) {
		return &transport.Response{Status: 200, Body: body}, nil
	}}
	c, err := New(testConfig(), caller)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l := NewLoader(c, "/api/items", 3)
	st := l.Load(context.Background(), RequestOptions{})

	if st.Loading {
		t.Error("Loading must be cleared after a terminal outcome")
	}
	if st.Err != "" {
		t.Errorf("Err = %q, want empty", st.Err)
	}
	if len(st.Data) != 1 || st.Data[0] != "ALPHA" {
		t.Errorf("Data = %v, want [ALPHA]", st.Data)
	}
	if st.LastUpdated.IsZero() {
		t.Error("LastUpdated must be set on success")
	}
}

func TestLoader_LoadFailure(t *testing.T) {
	caller := &countingCaller{fn: func(_ int, _ context.Context) (*transport.Response, error) {
		return nil, fmt.Errorf("connection refused")
	}}
	c, err := New(testConfig(), caller)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l := NewLoader(c, "/api/items", 3)
	st := l.Load(context.Background(), RequestOptions{})

	if st.Loading {
		t.Error("Loading must be cleared after a failed load")
	}
	if st.Err == "" {
		t.Error("expected an error message in state")
	}
	if !st.LastUpdated.IsZero() {
		t.Error("LastUpdated must stay zero when no data was loaded")
	}
}

func TestLoader_StateIsACopy(t *testing.T) {
	caller := &countingCaller{fn: alwaysOK}
	c, err := New(testConfig(), caller)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	l := NewLoader(c, "/api/items", 0)
	l.Load(context.Background(), RequestOptions{})

	st := l.State()
	if len(st.Data) == 0 {
		t.Fatal("expected derived data")
	}
	st.Data[0] = "mutated"
	if l.State().Data[0] == "mutated" {
		t.Error("State() must return a copy of Data")
	}
}
