// Package schema validates question documents against the questions JSON schema.
package schema

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/spf13/afero"
)

//go:embed json_schema.json
var defaultSchema []byte

// DefaultName is the file name of the schema shipped next to the questions file.
const DefaultName = "json_schema.json"

var (
	ErrSchemaNotFound = errors.New("schema not found")
	ErrInvalidSchema  = errors.New("invalid schema")
)

// SourceError reports a schema that could not be compiled.
type SourceError struct {
	Source string
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// Validator checks decoded JSON documents against a compiled schema.
type Validator struct {
	schema *jsonschema.Schema
}

// Default returns a validator for the schema embedded in the binary.
func Default() (*Validator, error) {
	return Compile(DefaultName, defaultSchema)
}

// Load reads and compiles the schema stored at path.
func Load(fsys afero.Fs, path string) (*Validator, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %w", ErrSchemaNotFound, err)
		}
		return nil, fmt.Errorf("read schema: %w", err)
	}
	return Compile(path, data)
}

// Compile compiles raw schema bytes registered under name.
func Compile(name string, data []byte) (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, &SourceError{Source: name, Err: err})
	}
	compiled, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, &SourceError{Source: name, Err: err})
	}
	return &Validator{schema: compiled}, nil
}

// FileValidator compiles the schema file on first use, so commands that never
// touch the questions file do not require it.
type FileValidator struct {
	fs   afero.Fs
	path string

	once      sync.Once
	validator *Validator
	err       error
}

// NewFileValidator creates a FileValidator for the schema at path.
func NewFileValidator(fsys afero.Fs, path string) *FileValidator {
	return &FileValidator{fs: fsys, path: path}
}

// Validate loads the schema if needed and validates doc against it.
func (f *FileValidator) Validate(doc any) error {
	f.once.Do(func() {
		f.validator, f.err = Load(f.fs, f.path)
	})
	if f.err != nil {
		return f.err
	}
	return f.validator.Validate(doc)
}

// Validate checks a document decoded from JSON (maps, slices, strings, json.Number).
func (v *Validator) Validate(doc any) error {
	err := v.schema.Validate(doc)
	if err == nil {
		return nil
	}

	var schemaErr *jsonschema.ValidationError
	if !errors.As(err, &schemaErr) {
		return fmt.Errorf("validate: %w", err)
	}
	collector := &issueCollector{}
	collector.walk(schemaErr)
	return collector.result()
}

// Issue captures a single schema violation.
type Issue struct {
	Location string // JSON pointer into the document, "" for the root
	Message  string
}

// ValidationError reports the schema violations found in a document.
type ValidationError struct {
	Issues []Issue
}

// Error returns a readable message for validation failures.
func (err *ValidationError) Error() string {
	if err == nil || len(err.Issues) == 0 {
		return ""
	}
	parts := make([]string, 0, len(err.Issues))
	for _, issue := range err.Issues {
		location := issue.Location
		if location == "" {
			location = "/"
		}
		parts = append(parts, fmt.Sprintf("%s: %s", location, issue.Message))
	}
	return fmt.Sprintf("schema validation failed: %s", strings.Join(parts, "; "))
}

type issueCollector struct {
	issues []Issue
}

// walk keeps only the leaf causes; inner nodes just say "doesn't validate".
func (collector *issueCollector) walk(err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		collector.issues = append(collector.issues, Issue{
			Location: err.InstanceLocation,
			Message:  err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collector.walk(cause)
	}
}

func (collector *issueCollector) result() error {
	if len(collector.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: collector.issues}
}
