package entities

import (
	"time"

	"github.com/google/uuid"
)

// RoundsPerGame is the number of questions asked in one play session.
const RoundsPerGame = 10

// Session statuses.
const (
	SessionStatusActive    = "active"
	SessionStatusCompleted = "completed"
	SessionStatusQuit      = "quit"
)

// EndReason tells why a play session stopped.
type EndReason string

const (
	EndReasonCompleted EndReason = "completed" // all rounds were played
	EndReasonQuit      EndReason = "quit"      // the player entered "quit"
)

// QuizSession represents the state of a single play session.
// It lives only for the duration of one play command.
type QuizSession struct {
	ID                 uuid.UUID  // unique session ID, used for log correlation
	Difficulty         Difficulty // fixed for the whole session
	CurrentQuestionNum int        // current round number, starting at 1
	CorrectAnswers     int        // number of correct answers so far
	TotalQuestions     int        // total number of rounds in the session
	SessionStatus      string     // "active", "completed" or "quit"
	StartedAt          time.Time  // timestamp when the session started
	CompletedAt        *time.Time // timestamp when the session ended (nullable)
}

// NewQuizSession creates a new active session with the given difficulty and number of rounds.
func NewQuizSession(difficulty Difficulty, totalQuestions int) *QuizSession {
	return &QuizSession{
		ID:                 uuid.New(),
		Difficulty:         difficulty,
		CurrentQuestionNum: 1,
		CorrectAnswers:     0,
		TotalQuestions:     totalQuestions,
		SessionStatus:      SessionStatusActive,
		StartedAt:          time.Now(),
	}
}

// Active reports whether there are rounds left to play.
func (qs *QuizSession) Active() bool {
	return qs.SessionStatus == SessionStatusActive && qs.CurrentQuestionNum <= qs.TotalQuestions
}

// RecordAnswer scores the current round and advances to the next one.
// The session completes after the last round.
func (qs *QuizSession) RecordAnswer(isCorrect bool) {
	if qs.SessionStatus != SessionStatusActive {
		return
	}
	if isCorrect {
		qs.CorrectAnswers++
	}
	qs.CurrentQuestionNum++
	if qs.CurrentQuestionNum > qs.TotalQuestions {
		qs.finish(SessionStatusCompleted)
	}
}

// Quit ends the session early, keeping the score accumulated so far.
func (qs *QuizSession) Quit() {
	if qs.SessionStatus != SessionStatusActive {
		return
	}
	qs.finish(SessionStatusQuit)
}

func (qs *QuizSession) finish(status string) {
	qs.SessionStatus = status
	now := time.Now()
	qs.CompletedAt = &now
}

// Result builds the final result of the session.
func (qs *QuizSession) Result() *QuizResult {
	reason := EndReasonCompleted
	played := qs.TotalQuestions
	if qs.SessionStatus == SessionStatusQuit {
		reason = EndReasonQuit
		played = qs.CurrentQuestionNum - 1
	}

	return &QuizResult{
		SessionID:    qs.ID,
		Difficulty:   qs.Difficulty,
		Score:        qs.CorrectAnswers,
		RoundsPlayed: played,
		Reason:       reason,
	}
}

// QuizResult is the outcome of a play session, rendered by the presentation layer.
type QuizResult struct {
	SessionID    uuid.UUID
	Difficulty   Difficulty
	Score        int // number of correct answers, 0..RoundsPerGame
	RoundsPlayed int // rounds answered before the session ended
	Reason       EndReason
}

// Remark returns the tiered remark for the final score.
func (r *QuizResult) Remark() Remark {
	return RemarkForScore(r.Score)
}

// Remark is a tier of the final score summary.
type Remark int

// Remark tiers by final score: 0, 1-2, 3-4, 5-6, 7, 8-9 and 10.
const (
	RemarkNotTrying Remark = iota
	RemarkShouldRetry
	RemarkAnotherTry
	RemarkMaybeBetter
	RemarkPrettyGood
	RemarkGood
	RemarkPerfect
)

// RemarkForScore maps a score to its remark tier using fixed thresholds.
func RemarkForScore(score int) Remark {
	switch {
	case score >= RoundsPerGame:
		return RemarkPerfect
	case score >= 8:
		return RemarkGood
	case score == 7:
		return RemarkPrettyGood
	case score >= 5:
		return RemarkMaybeBetter
	case score >= 3:
		return RemarkAnotherTry
	case score >= 1:
		return RemarkShouldRetry
	default:
		return RemarkNotTrying
	}
}
