package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

const maxBodyBytes = 1 << 20

// JSONSchemaExtend lets max_single_size be sent either as a number or as a numeric string.
func (SubscriptionBody) JSONSchemaExtend(s *jsonschema.Schema) {
	prop, ok := s.Properties.Get("max_single_size")
	if !ok {
		return
	}

	prop.Type = ""
	prop.OneOf = []*jsonschema.Schema{
		{Type: "integer", Minimum: json.Number("1")},
		{Type: "string", Pattern: "^[1-9][0-9]*$"},
	}
}

// bodySchema validates request bodies against the JSON schema reflected from a Go type.
type bodySchema struct {
	name   string
	schema *gojsonschema.Schema
}

// newBodySchema reflects v and compiles the resulting schema.
func newBodySchema(name string, v any) (*bodySchema, error) {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties: true,
		DoNotReference:            true,
	}

	reflected := reflector.Reflect(v)
	reflected.Version = ""

	raw, err := json.Marshal(reflected)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s schema: %w", name, err)
	}

	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s schema: %w", name, err)
	}

	return &bodySchema{name: name, schema: compiled}, nil
}

func mustBodySchema(name string, v any) *bodySchema {
	s, err := newBodySchema(name, v)
	if err != nil {
		panic(err)
	}
	return s
}

var (
	subscriptionSchema        = mustBodySchema("subscription", &SubscriptionBody{})
	tokenSubscriptionSchema   = mustBodySchema("token subscription", &TokenSubscriptionBody{})
	accountSubscriptionSchema = mustBodySchema("account subscription", &AccountSubscriptionBody{})
)

// ValidationError is returned when a request body is not valid JSON or does not match its schema.
type ValidationError struct {
	Message string
	Details []string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// decode reads the request body, validates it and unmarshals it into dst.
func (s *bodySchema) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("failed to read %s body: %v", s.name, err)}
	}

	if !json.Valid(body) {
		return &ValidationError{Message: fmt.Sprintf("%s body is not valid JSON", s.name)}
	}

	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ValidationError{Message: fmt.Sprintf("failed to validate %s body: %v", s.name, err)}
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &ValidationError{Message: fmt.Sprintf("invalid %s body", s.name), Details: details}
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return &ValidationError{Message: fmt.Sprintf("failed to decode %s body: %v", s.name, err)}
	}

	return nil
}
