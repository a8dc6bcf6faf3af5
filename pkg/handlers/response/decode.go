package response

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/de-tools/fleet-atlas/pkg/models/domain"
)

const maxBodyBytes = 1 << 20

// MustSchema compiles a JSON schema at package init.
func MustSchema(schema string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		panic(fmt.Sprintf("invalid request schema: %v", err))
	}
	return s
}

// DecodeBody validates the request body against schema and decodes it into dst.
// Every schema violation is reported as its own field error.
func DecodeBody(r *http.Request, schema *gojsonschema.Schema, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return domain.NewValidationError("body", "could not be read")
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return domain.NewValidationError("body", "is required")
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return domain.NewValidationError("body", "must be a valid JSON object")
	}
	if !result.Valid() {
		vErr := &domain.ValidationError{}
		for _, e := range result.Errors() {
			vErr.Add(fieldOf(e), e.Description())
		}
		return vErr
	}

	if err := json.Unmarshal(body, dst); err != nil {
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}

const rootField = "(root)"

func fieldOf(e gojsonschema.ResultError) string {
	switch e.Type() {
	case "required", "additional_property_not_allowed":
		if property, ok := e.Details()["property"].(string); ok {
			if e.Field() == rootField {
				return property
			}
			return e.Field() + "." + property
		}
	}
	if e.Field() == rootField {
		return "body"
	}
	return e.Field()
}
