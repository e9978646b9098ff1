// messages.go contains message templates shown on the console.

package cli

import (
	"fmt"

	"github.com/aliskhannn/termquiz/internal/domain/entities"
)

// Round messages.
const (
	msgAnswerPrompt = "Your answer (1, 2, 3 or 4): "
	msgAnswerHint   = "Enter '1', '2', '3' or '4'.\nEnter 'quit' to quit game"
	msgGoodJob      = "✅ Good job!"
	msgGameEnded    = "Game ended"
)

// Authoring and deletion messages.
const (
	msgAddIntro = "You need to provide:\n" +
		"  - a question\n" +
		"  - 1 correct answer\n" +
		"  - 3 incorrect easy answers\n" +
		"  - 1 incorrect medium answer\n" +
		"  - 1 incorrect hard answer"
	msgAlreadyAdded      = "Already added this answer!"
	msgQuestionAdded     = "Question added"
	msgQuestionNotAdded  = "Question not added... Try again"
	msgQuestionDeleted   = "Question was deleted"
	msgQuestionNotDelete = "Question was not deleted"
	msgConfirmDelete     = "Are you sure? (y)es: "
)

// Error messages.
const (
	msgFatal               = "Quit because of fatal error"
	msgNotEnoughQuestions  = "Not enough questions"
	msgElementNotValidated = "Element was not validated"
	msgMinQuestionNumber   = "Minimum question number is 1"
)

func msgWrongAnswer(correctAnswer string) string {
	return fmt.Sprintf("❗️ Sorry, the correct answer was %s", correctAnswer)
}

func msgFileNotFound(path string) string {
	return fmt.Sprintf("File '%s' not found", path)
}

func msgFileMalformed(path string) string {
	return fmt.Sprintf("File '%s' is not a correct json file", path)
}

func msgInvalidData(path string) string {
	return fmt.Sprintf("There is invalid data in '%s'", path)
}

func msgMaxQuestionNumber(max int) string {
	return fmt.Sprintf("Maximum question number is %d", max)
}

func msgDeleteTarget(number int) string {
	return fmt.Sprintf("This will delete question number %d:", number)
}

// remarkText returns the summary line for a score tier.
func remarkText(remark entities.Remark) string {
	switch remark {
	case entities.RemarkPerfect:
		return "Perfect game!!!"
	case entities.RemarkGood:
		return "Good game"
	case entities.RemarkPrettyGood:
		return "Pretty good game"
	case entities.RemarkMaybeBetter:
		return "Maybe you can do better"
	case entities.RemarkAnotherTry:
		return "Have another try"
	case entities.RemarkShouldRetry:
		return "You really should have another try"
	default:
		return "Are you even trying?"
	}
}
