package service

import (
	"math/rand"
	"time"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// QuestionSelector draws questions for a play session.
type QuestionSelector struct {
	rng *rand.Rand
}

// NewQuestionSelector creates a new QuestionSelector. A nil rng is replaced by a time-seeded one.
func NewQuestionSelector(rng *rand.Rand) *QuestionSelector {
	if rng == nil {
		rng = newRand()
	}
	return &QuestionSelector{rng: rng}
}

// Draw picks one question uniformly at random from pool and returns it together
// with the remaining pool. The input slice is not modified.
func (s *QuestionSelector) Draw(pool []entities.Question) (entities.Question, []entities.Question, bool) {
	if len(pool) == 0 {
		return entities.Question{}, nil, false
	}

	idx := s.rng.Intn(len(pool))
	picked := pool[idx]

	rest := make([]entities.Question, 0, len(pool)-1)
	rest = append(rest, pool[:idx]...)
	rest = append(rest, pool[idx+1:]...)

	return picked, rest, true
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
