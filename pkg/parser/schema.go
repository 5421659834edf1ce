package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// ErrSchemaInvalid marks a schema that failed to compile. This is an
// operator problem, not a document problem: it is returned as an error
// and never converted into a diagnostic, because a broken schema makes
// every diagnostic for every document meaningless.
var ErrSchemaInvalid = errors.New("invalid schema")

// schemaURL is the resource name schemas are registered under before
// compilation. It is never fetched.
const schemaURL = "http://jsonls.invalid/schema.json"

// CompileSchema compiles a raw schema document (the result of decoding
// schema JSON) into an executable validator.
func CompileSchema(doc any) (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, doc); err != nil {
		return nil, fmt.Errorf("%w: failed to add schema resource: %w", ErrSchemaInvalid, err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaInvalid, err)
	}
	return schema, nil
}

// CompileSchemaJSON parses schema JSON and compiles it.
func CompileSchemaJSON(schemaJSON []byte) (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal(schemaJSON, &doc); err != nil {
		return nil, fmt.Errorf("%w: failed to parse schema JSON: %w", ErrSchemaInvalid, err)
	}
	return CompileSchema(doc)
}
