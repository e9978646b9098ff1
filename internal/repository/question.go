package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/schema"
	"github.com/aliskhannn/termquiz/internal/storage"
)

var (
	ErrNotFound        = errors.New("questions file not found")
	ErrMalformedData   = errors.New("questions file is not valid json")
	ErrSchemaViolation = errors.New("questions failed validation")
)

// FileError reports a store failure together with the file that caused it.
type FileError struct {
	Path string
	Kind error // ErrNotFound, ErrMalformedData or ErrSchemaViolation
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Kind, e.Path, e.Err)
}

func (e *FileError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// FileStore reads and atomically replaces whole files.
type FileStore interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}

// DocumentValidator validates a decoded JSON document against the questions schema.
type DocumentValidator interface {
	Validate(doc any) error
}

// QuestionRepository provides access to the question collection stored in a JSON file.
// Every Load reads the file again; nothing is cached between calls.
type QuestionRepository struct {
	store     FileStore
	validator DocumentValidator
	path      string
	logger    *zap.Logger
}

// NewQuestionRepository creates a new QuestionRepository for the file at path.
func NewQuestionRepository(
	store FileStore,
	validator DocumentValidator,
	path string,
	logger *zap.Logger,
) *QuestionRepository {
	return &QuestionRepository{
		store:     store,
		validator: validator,
		path:      path,
		logger:    logger,
	}
}

// Load reads, validates and decodes the question collection.
func (r *QuestionRepository) Load(_ context.Context) ([]entities.Question, error) {
	r.logger.Info("opening questions file", zap.String("path", r.path))

	data, err := r.store.Read(r.path)
	if err != nil {
		if errors.Is(err, storage.ErrFileNotFound) {
			return nil, &FileError{Path: r.path, Kind: ErrNotFound, Err: err}
		}
		return nil, fmt.Errorf("load questions: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		r.logger.Debug("decode questions file", zap.String("path", r.path), zap.Error(err))
		return nil, &FileError{Path: r.path, Kind: ErrMalformedData, Err: err}
	}

	questions, err := r.validate(doc)
	if err != nil {
		r.logger.Debug("validate questions file", zap.String("path", r.path), zap.Error(err))
		return nil, r.validationError(err)
	}

	return questions, nil
}

// Save validates the collection and replaces the questions file with it.
// The file is not touched when validation fails.
func (r *QuestionRepository) Save(_ context.Context, questions []entities.Question) error {
	r.logger.Info("saving questions file", zap.String("path", r.path), zap.Int("count", len(questions)))

	if questions == nil {
		questions = []entities.Question{}
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}

	doc, err := decodeDocument(data)
	if err != nil {
		return fmt.Errorf("encode questions: %w", err)
	}
	if _, err := r.validate(doc); err != nil {
		r.logger.Debug("validate questions before save", zap.String("path", r.path), zap.Error(err))
		return r.validationError(err)
	}

	data = append(data, '\n')
	if err := r.store.Write(r.path, data); err != nil {
		return fmt.Errorf("save questions: %w", err)
	}

	return nil
}

// validate runs the schema check on the raw document, then the domain
// invariants on the typed questions.
func (r *QuestionRepository) validate(doc any) ([]entities.Question, error) {
	if err := r.validator.Validate(doc); err != nil {
		return nil, err
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var questions []entities.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, err
	}

	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
	}

	return questions, nil
}

// validationError classifies a validation failure. A missing or broken schema
// file is reported like a missing or broken questions file.
func (r *QuestionRepository) validationError(err error) error {
	switch {
	case errors.Is(err, schema.ErrSchemaNotFound):
		return &FileError{Path: schemaPath(err), Kind: ErrNotFound, Err: err}
	case errors.Is(err, schema.ErrInvalidSchema):
		return &FileError{Path: schemaPath(err), Kind: ErrMalformedData, Err: err}
	default:
		return &FileError{Path: r.path, Kind: ErrSchemaViolation, Err: err}
	}
}

func schemaPath(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Path
	}
	var sourceErr *schema.SourceError
	if errors.As(err, &sourceErr) {
		return sourceErr.Source
	}
	return schema.DefaultName
}

func decodeDocument(data []byte) (any, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var doc any
	if err := decoder.Decode(&doc); err != nil {
		return nil, err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return nil, errors.New("multiple documents are not supported")
		}
		return nil, err
	}
	return doc, nil
}
