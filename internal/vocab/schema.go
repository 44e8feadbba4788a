package vocab

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed catalog.schema.json
var catalogSchemaJSON []byte

const catalogSchemaURL = "schema://wordpath/catalog.json"

var (
	catalogSchemaOnce sync.Once
	catalogSchema     *jsonschema.Schema
	catalogSchemaErr  error
)

// compiledCatalogSchema compiles the embedded catalog schema once.
func compiledCatalogSchema() (*jsonschema.Schema, error) {
	catalogSchemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(catalogSchemaJSON, &def); err != nil {
			catalogSchemaErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(catalogSchemaURL, def); err != nil {
			catalogSchemaErr = fmt.Errorf("add resource: %w", err)
			return
		}

		catalogSchema, catalogSchemaErr = c.Compile(catalogSchemaURL)
		if catalogSchemaErr != nil {
			catalogSchemaErr = fmt.Errorf("compile catalog schema: %w", catalogSchemaErr)
		}
	})
	return catalogSchema, catalogSchemaErr
}

// validateDocument checks a decoded catalog document (JSON data model:
// maps, slices, float64, string, bool) against the catalog schema.
func validateDocument(doc any) error {
	schema, err := compiledCatalogSchema()
	if err != nil {
		return err
	}
	return schema.Validate(doc)
}
