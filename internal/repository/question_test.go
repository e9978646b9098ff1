package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap/zaptest"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/schema"
	"github.com/aliskhannn/termquiz/internal/storage"
)

const questionsPath = "questions.json"

func validQuestion(n int) entities.Question {
	return entities.Question{
		Prompt:        fmt.Sprintf("Question %d?", n),
		CorrectAnswer: fmt.Sprintf("Right %d", n),
		WrongAnswers: []string{
			fmt.Sprintf("Wrong %d.1", n),
			fmt.Sprintf("Wrong %d.2", n),
			fmt.Sprintf("Wrong %d.3", n),
			fmt.Sprintf("Wrong %d.4", n),
			fmt.Sprintf("Wrong %d.5", n),
		},
	}
}

func newTestRepository(t *testing.T, content string) (*QuestionRepository, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	if content != "" {
		if err := afero.WriteFile(fs, questionsPath, []byte(content), 0o644); err != nil {
			t.Fatalf("seed questions: %v", err)
		}
	}
	validator, err := schema.Default()
	if err != nil {
		t.Fatalf("compile schema: %v", err)
	}
	repo := NewQuestionRepository(storage.NewFileStorage(fs), validator, questionsPath, zaptest.NewLogger(t))
	return repo, fs
}

func expectFileError(t *testing.T, err error, kind error, path string) {
	t.Helper()
	var fileErr *FileError
	if !errors.As(err, &fileErr) {
		t.Fatalf("expected FileError, got %v", err)
	}
	if !errors.Is(err, kind) {
		t.Fatalf("expected %v, got %v", kind, err)
	}
	if fileErr.Path != path {
		t.Fatalf("expected path %q, got %q", path, fileErr.Path)
	}
}

// TestLoadReturnsQuestionsInOrder verifies the stored order is kept.
func TestLoadReturnsQuestionsInOrder(t *testing.T) {
	repo, _ := newTestRepository(t, `[
  {"name":"First?","answ_good":"A","answ_bad":["b1","b2","b3","b4","b5"]},
  {"name":"Second?","answ_good":"B","answ_bad":["c1","c2","c3","c4","c5"]}
]`)

	questions, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(questions))
	}
	if questions[0].Prompt != "First?" || questions[1].Prompt != "Second?" {
		t.Fatalf("unexpected order: %+v", questions)
	}
	if questions[1].WrongAnswers[4] != "c5" {
		t.Fatalf("expected hard answer c5, got %q", questions[1].WrongAnswers[4])
	}
}

// TestLoadEmptyCollection verifies an empty array is a valid collection.
func TestLoadEmptyCollection(t *testing.T) {
	repo, _ := newTestRepository(t, "[]")

	questions, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(questions) != 0 {
		t.Fatalf("expected no questions, got %d", len(questions))
	}
}

// TestLoadMissingFile verifies a missing questions file is NotFound.
func TestLoadMissingFile(t *testing.T) {
	repo, _ := newTestRepository(t, "")

	_, err := repo.Load(context.Background())
	expectFileError(t, err, ErrNotFound, questionsPath)
}

// TestLoadMalformedFile verifies unparsable content is MalformedData.
func TestLoadMalformedFile(t *testing.T) {
	for _, content := range []string{`[{"name":`, `not json`, `[] []`} {
		repo, _ := newTestRepository(t, content)

		_, err := repo.Load(context.Background())
		expectFileError(t, err, ErrMalformedData, questionsPath)
	}
}

// TestLoadSchemaViolation verifies well-formed but invalid data is rejected.
func TestLoadSchemaViolation(t *testing.T) {
	cases := map[string]string{
		"four wrong answers":   `[{"name":"Q","answ_good":"A","answ_bad":["b1","b2","b3","b4"]}]`,
		"wrong equals correct": `[{"name":"Q","answ_good":"A","answ_bad":["A","b2","b3","b4","b5"]}]`,
		"object root":          `{"name":"Q"}`,
		"missing name":         `[{"answ_good":"A","answ_bad":["b1","b2","b3","b4","b5"]}]`,
		"missing correct":      `[{"name":"Q","answ_bad":["b1","b2","b3","b4","b5"]}]`,
		"empty wrong answer":   `[{"name":"Q","answ_good":"A","answ_bad":["b1","","b3","b4","b5"]}]`,
		"blank wrong answer":   `[{"name":"Q","answ_good":"A","answ_bad":["b1","b2","  ","b4","b5"]}]`,
		"blank name":           `[{"name":" ","answ_good":"A","answ_bad":["b1","b2","b3","b4","b5"]}]`,
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			repo, _ := newTestRepository(t, content)

			_, err := repo.Load(context.Background())
			expectFileError(t, err, ErrSchemaViolation, questionsPath)
		})
	}
}

// TestLoadMissingSchemaFile verifies the schema path is reported.
func TestLoadMissingSchemaFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, questionsPath, []byte("[]"), 0o644); err != nil {
		t.Fatalf("seed questions: %v", err)
	}
	validator := schema.NewFileValidator(fs, "json_schema.json")
	repo := NewQuestionRepository(storage.NewFileStorage(fs), validator, questionsPath, zaptest.NewLogger(t))

	_, err := repo.Load(context.Background())
	expectFileError(t, err, ErrNotFound, "json_schema.json")
}

// TestSaveRoundTrip verifies saved questions load back unchanged.
func TestSaveRoundTrip(t *testing.T) {
	repo, fs := newTestRepository(t, "[]")
	questions := []entities.Question{validQuestion(1), validQuestion(2)}

	if err := repo.Save(context.Background(), questions); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := afero.ReadFile(fs, questionsPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(raw), `"answ_good": "Right 1"`) {
		t.Fatalf("expected indented record fields, got %s", raw)
	}
	if !strings.HasSuffix(string(raw), "\n") {
		t.Fatalf("expected trailing newline")
	}

	loaded, err := repo.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[1].CorrectAnswer != "Right 2" {
		t.Fatalf("unexpected questions: %+v", loaded)
	}
}

// TestSaveEmptyCollection verifies nil is written as an empty array.
func TestSaveEmptyCollection(t *testing.T) {
	repo, fs := newTestRepository(t, "")

	if err := repo.Save(context.Background(), nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := afero.ReadFile(fs, questionsPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Fatalf("expected empty array, got %q", raw)
	}
}

// TestSaveInvalidLeavesFileUntouched verifies nothing is written on validation failure.
func TestSaveInvalidLeavesFileUntouched(t *testing.T) {
	original := `[{"name":"Q","answ_good":"A","answ_bad":["b1","b2","b3","b4","b5"]}]`
	repo, fs := newTestRepository(t, original)

	invalid := validQuestion(2)
	invalid.WrongAnswers = invalid.WrongAnswers[:4]
	duplicate := validQuestion(3)
	duplicate.WrongAnswers[2] = duplicate.CorrectAnswer
	noPrompt := validQuestion(4)
	noPrompt.Prompt = ""
	blankPrompt := validQuestion(5)
	blankPrompt.Prompt = "   "
	noCorrect := validQuestion(6)
	noCorrect.CorrectAnswer = ""
	blankCorrect := validQuestion(7)
	blankCorrect.CorrectAnswer = "\t"

	for _, q := range []entities.Question{invalid, duplicate, noPrompt, blankPrompt, noCorrect, blankCorrect} {
		err := repo.Save(context.Background(), []entities.Question{validQuestion(1), q})
		expectFileError(t, err, ErrSchemaViolation, questionsPath)
	}

	raw, err := afero.ReadFile(fs, questionsPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(raw) != original {
		t.Fatalf("expected file to be untouched, got %s", raw)
	}
}
