package models

import (
	"strings"
	"time"
)

// Quiz is a timed, course-scoped assessment.
type Quiz struct {
	ID          int64     `json:"id" db:"id"`
	CourseID    int64     `json:"courseId" db:"course_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     time.Time `json:"dueDate" db:"due_date"`
	TimeLimit   int       `json:"timeLimit" db:"time_limit"` // minutes
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	// Relations (populated when needed)
	Questions []*Question `json:"questions,omitempty"`
}

// Question belongs to a quiz. Options is only meaningful for
// multiple-choice questions.
type Question struct {
	ID            int64        `json:"id" db:"id"`
	QuizID        int64        `json:"quizId" db:"quiz_id"`
	Text          string       `json:"text" db:"text"`
	QuestionType  QuestionType `json:"questionType" db:"question_type"`
	CorrectAnswer string       `json:"-" db:"correct_answer"` // Hidden from students
	Options       []string     `json:"options" db:"options"`  // JSONB
}

// QuizSubmission records a student's answers keyed by question id,
// one per (student, quiz).
type QuizSubmission struct {
	ID          int64            `json:"id" db:"id"`
	QuizID      int64            `json:"quizId" db:"quiz_id"`
	StudentID   int64            `json:"studentId" db:"student_id"`
	Answers     map[int64]string `json:"answers" db:"answers"` // JSONB
	Score       *int             `json:"score,omitempty" db:"score"`
	SubmittedAt time.Time        `json:"submittedAt" db:"submitted_at"`
}

// ScoreAnswers counts how many answers match the given questions,
// comparing case-insensitively. Answers to unknown question ids are
// ignored.
func ScoreAnswers(questions []*Question, answers map[int64]string) int {
	byID := make(map[int64]*Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	score := 0
	for id, answer := range answers {
		q, ok := byID[id]
		if !ok {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(q.CorrectAnswer), strings.TrimSpace(answer)) {
			score++
		}
	}
	return score
}
