package swapi

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// Embedded payload schemas, keyed by endpoint label
const (
	schemaList   = "schemas/list.schema.json"
	schemaDetail = "schemas/detail.schema.json"
)

//go:embed schemas/*.json
var schemaFS embed.FS

// ErrSchemaMismatch marks a 2xx body whose shape is not a starship payload
var ErrSchemaMismatch = errors.New("response does not match schema")

var (
	schemasOnce sync.Once
	schemas     map[string]*jsonschema.Schema
	schemasErr  error
)

func loadSchemas() (map[string]*jsonschema.Schema, error) {
	schemasOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		out := make(map[string]*jsonschema.Schema, 2)
		for _, path := range []string{schemaList, schemaDetail} {
			raw, err := schemaFS.ReadFile(path)
			if err != nil {
				schemasErr = fmt.Errorf("failed to read schema %s: %w", path, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("failed to parse schema %s: %w", path, err)
				return
			}
			if err := compiler.AddResource(path, doc); err != nil {
				schemasErr = fmt.Errorf("failed to add schema resource %s: %w", path, err)
				return
			}
			sch, err := compiler.Compile(path)
			if err != nil {
				schemasErr = fmt.Errorf("failed to compile schema %s: %w", path, err)
				return
			}
			out[path] = sch
		}
		schemas = out
	})
	return schemas, schemasErr
}

// validateBody checks a response body against the schema at path
func validateBody(path string, body []byte) error {
	set, err := loadSchemas()
	if err != nil {
		return err
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to decode body: %w", err)
	}

	if err := set[path].Validate(inst); err != nil {
		return formatSchemaError(err)
	}
	return nil
}

func formatSchemaError(err error) error {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	var msgs []string
	collectSchemaErrors(verr, &msgs)
	return fmt.Errorf("%w: %s", ErrSchemaMismatch, strings.Join(msgs, "; "))
}

// collectSchemaErrors walks the cause tree, keeping leaves only
func collectSchemaErrors(err *jsonschema.ValidationError, msgs *[]string) {
	if len(err.Causes) == 0 {
		location := "/" + strings.Join(err.InstanceLocation, "/")
		keyword := ""
		if err.ErrorKind != nil {
			keyword = strings.Join(err.ErrorKind.KeywordPath(), ".")
		}
		*msgs = append(*msgs, fmt.Sprintf("at %s: %s", location, keyword))
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(cause, msgs)
	}
}
