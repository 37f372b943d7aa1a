package itemfetch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// itemsSchema is the expected shape of the items payload. Responses that do
// not match are rejected before being accepted or cached, so a 2xx with a
// broken body is retried like any other failed attempt.
const itemsSchema = `{
	"type": "object",
	"required": ["items"],
	"properties": {
		"items": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["id", "name", "active"],
				"properties": {
					"id": {"type": "string"},
					"name": {"type": "string"},
					"active": {"type": "boolean"},
					"score": {"type": "number"}
				}
			}
		}
	}
}`

// compileItemsSchema compiles the embedded payload schema. It is called once
// per client; a compile failure is a programming error surfaced at New.
func compileItemsSchema() (*jsonschema.Schema, error) {
	schema, err := jsonschema.CompileString("items.schema.json", itemsSchema)
	if err != nil {
		return nil, fmt.Errorf("compile items schema: %w", err)
	}
	return schema, nil
}

// validatePayload checks body against the items schema. The body is decoded
// with UseNumber so numeric values survive validation untouched.
func validatePayload(schema *jsonschema.Schema, body []byte) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("%w: invalid JSON: %v", ErrMalformedResponse, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
