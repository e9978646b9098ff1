package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
	"github.com/aliskhannn/termquiz/internal/repository"
	"github.com/aliskhannn/termquiz/internal/schema"
	"github.com/aliskhannn/termquiz/internal/service"
	"github.com/aliskhannn/termquiz/internal/storage"
)

const fixturePath = "questions.json"

// fixture runs the CLI against an in-memory questions file with scripted input.
type fixture struct {
	fs       afero.Fs
	stdout   bytes.Buffer
	stderr   bytes.Buffer
	lines    []string                   // typed first, in order
	player   func(screen string) string // answers once lines run out; nil means end of input
	logger   *zap.Logger                // nil means no logging
	reads    int
	exitCode int
}

func newFixture() *fixture {
	return &fixture{fs: afero.NewMemMapFs()}
}

func fixtureQuestion(n int) entities.Question {
	return entities.Question{
		Prompt:        fmt.Sprintf("Trivia %d?", n),
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

func (f *fixture) seed(count int) error {
	questions := make([]entities.Question, 0, count)
	for i := 1; i <= count; i++ {
		questions = append(questions, fixtureQuestion(i))
	}
	data, err := json.MarshalIndent(questions, "", "  ")
	if err != nil {
		return err
	}
	return f.writeRaw(string(data))
}

func (f *fixture) writeRaw(content string) error {
	return afero.WriteFile(f.fs, fixturePath, []byte(content), 0o644)
}

func (f *fixture) readRaw() (string, error) {
	data, err := afero.ReadFile(f.fs, fixturePath)
	return string(data), err
}

func (f *fixture) stored() ([]entities.Question, error) {
	data, err := afero.ReadFile(f.fs, fixturePath)
	if err != nil {
		return nil, err
	}
	var questions []entities.Question
	err = json.Unmarshal(data, &questions)
	return questions, err
}

// run executes one command with fresh output buffers.
func (f *fixture) run(args ...string) int {
	f.stdout.Reset()
	f.stderr.Reset()

	validator, err := schema.Default()
	if err != nil {
		panic(err)
	}
	logger := f.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	repo := repository.NewQuestionRepository(storage.NewFileStorage(f.fs), validator, fixturePath, logger)
	quizService := service.NewQuizService(repo, logger, rand.New(rand.NewSource(3)))
	questionService := service.NewQuestionService(repo, logger)

	handler := NewHandler(logger, quizService, questionService, &scriptedInput{f: f}, &f.stdout, &f.stderr, Options{NoColor: true})
	f.exitCode = handler.Run(context.Background(), args)
	return f.exitCode
}

func (f *fixture) nextLine() (string, bool) {
	f.reads++
	if len(f.lines) > 0 {
		line := f.lines[0]
		f.lines = f.lines[1:]
		return line, true
	}
	if f.player != nil {
		return f.player(f.stdout.String()), true
	}
	return "", false
}

// scriptedInput produces one line per Read so answers can depend on what was printed.
type scriptedInput struct {
	f       *fixture
	pending []byte
}

func (in *scriptedInput) Read(p []byte) (int, error) {
	if len(in.pending) == 0 {
		line, ok := in.f.nextLine()
		if !ok {
			return 0, io.EOF
		}
		in.pending = []byte(line + "\n")
	}
	n := copy(p, in.pending)
	in.pending = in.pending[n:]
	return n, nil
}

// scorePlayer answers the first correct rounds right and the rest wrong.
func scorePlayer(correct int) func(screen string) string {
	answered := 0
	return func(screen string) string {
		answered++
		return pickOption(screen, answered <= correct)
	}
}

// pickOption chooses an option of the last shown round by whether it holds the right answer.
func pickOption(screen string, correct bool) string {
	start := strings.LastIndex(screen, "Question ")
	if start < 0 {
		return service.QuitCommand
	}
	for _, line := range strings.Split(screen[start:], "\n") {
		closing := strings.Index(line, ") ")
		if !strings.HasPrefix(line, "(") || closing < 0 {
			continue
		}
		number, err := strconv.Atoi(line[1:closing])
		if err != nil {
			continue
		}
		if strings.HasPrefix(line[closing+2:], "Right ") == correct {
			return strconv.Itoa(number)
		}
	}
	return service.QuitCommand
}
