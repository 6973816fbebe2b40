// Package schema validates JSON response bodies against JSON Schema
// documents, backing the CLI's --schema flag.
package schema

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// Report is the outcome of one validation.
type Report struct {
	Valid  bool
	Errors []string
}

// Validate checks document against schema. A validation failure is not an
// error; errors are reserved for unreadable schemas or documents.
func Validate(document, schema []byte) (*Report, error) {
	schemaLoader := gojsonschema.NewBytesLoader(schema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	report := &Report{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		report.Errors = append(report.Errors, desc.String())
	}
	return report, nil
}

// ValidateFile checks document against a schema file on disk.
func ValidateFile(document []byte, schemaPath string) (*Report, error) {
	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaPath)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("loading schema %s: %w", schemaPath, err)
	}

	report := &Report{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		report.Errors = append(report.Errors, desc.String())
	}
	return report, nil
}
