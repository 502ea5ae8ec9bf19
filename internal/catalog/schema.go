package catalog

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	apperrors "supermarket-comparator/internal/common/errors"
)

// documentSchema validates a catalog JSON document before it is trusted.
const documentSchema = `{
  "type": "object",
  "required": ["stores"],
  "properties": {
    "stores": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "location", "products"],
        "properties": {
          "id": {"type": "string"},
          "name": {"type": "string", "minLength": 1},
          "location": {
            "type": "object",
            "required": ["lat", "lng"],
            "properties": {
              "lat": {"type": "number", "minimum": -90, "maximum": 90},
              "lng": {"type": "number", "minimum": -180, "maximum": 180}
            }
          },
          "address": {"type": "string"},
          "phone": {"type": "string"},
          "hours": {"type": "string"},
          "products": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["name", "price", "available", "category"],
              "properties": {
                "id": {"type": "string"},
                "name": {"type": "string", "minLength": 1},
                "brand": {"type": "string"},
                "price": {"type": "number", "minimum": 0},
                "available": {"type": "boolean"},
                "category": {"type": "string"},
                "barcode": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

// ValidateDocument checks a raw catalog document against the schema.
func ValidateDocument(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(documentSchema)
	docLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return apperrors.NewCatalogSchemaInvalidError(err.Error())
	}

	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, resErr := range result.Errors() {
			details = append(details, fmt.Sprintf("%s: %s", resErr.Field(), resErr.Description()))
		}
		return apperrors.NewCatalogSchemaInvalidError(strings.Join(details, "; "))
	}

	return nil
}
