package steps

import (
	"embed"
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// Schemas available to the contract steps
const (
	BookingResponseSchema = "booking-response-schema.json"
	ErrorResponseSchema   = "error-response-schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemas sync.Map // name -> *jsonschema.Resolved

// resolveSchema loads and resolves an embedded schema once
func resolveSchema(name string) (*jsonschema.Resolved, error) {
	if cached, ok := schemas.Load(name); ok {
		return cached.(*jsonschema.Resolved), nil
	}

	data, err := schemaFS.ReadFile(path.Join("schemas", name))
	if err != nil {
		return nil, fmt.Errorf("schema %s: %w", name, err)
	}
	var schema jsonschema.Schema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("schema %s: parse: %w", name, err)
	}
	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("schema %s: resolve: %w", name, err)
	}

	actual, _ := schemas.LoadOrStore(name, resolved)
	return actual.(*jsonschema.Resolved), nil
}

// ValidateBody checks a JSON body against the named embedded schema
func ValidateBody(name string, body []byte) error {
	resolved, err := resolveSchema(name)
	if err != nil {
		return err
	}
	var instance any
	if err := json.Unmarshal(body, &instance); err != nil {
		return fmt.Errorf("response body is not JSON: %w", err)
	}
	if err := resolved.Validate(instance); err != nil {
		return fmt.Errorf("response does not match %s: %w", name, err)
	}
	return nil
}
