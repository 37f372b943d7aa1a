package itemfetch

import (
	"errors"
	"testing"
)

func TestValidatePayload(t *testing.T) {
	schema, err := compileItemsSchema()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"valid", `{"items":[{"id":"1","name":"a","active":true,"score":1.5}]}`, false},
		{"valid without score", `{"items":[{"id":"1","name":"a","active":true}]}`, false},
		{"empty items", `{"items":[]}`, false},
		{"missing items", `{"rows":[]}`, true},
		{"items not array", `{"items":{}}`, true},
		{"item missing name", `{"items":[{"id":"1","active":true}]}`, true},
		{"wrong active type", `{"items":[{"id":"1","name":"a","active":"yes"}]}`, true},
		{"not json", `items galore`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePayload(schema, []byte(tt.body))
			if tt.wantErr && !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("validatePayload() = %v, want ErrMalformedResponse", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validatePayload() unexpected error: %v", err)
			}
		})
	}
}
