package dto

import (
	"time"

	"github.com/doruk/eduhub/internal/app/models"
)

// CreateQuizRequest represents quiz creation data
type CreateQuizRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	TimeLimit   int       `json:"timeLimit" binding:"min=0"` // minutes, 0 = unlimited
}

// UpdateQuizRequest represents quiz update data
type UpdateQuizRequest struct {
	Title       string    `json:"title" binding:"required,max=255"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate" binding:"required"`
	TimeLimit   int       `json:"timeLimit" binding:"min=0"`
}

// QuizResponse represents quiz information
type QuizResponse struct {
	ID          int64              `json:"id"`
	CourseID    int64              `json:"courseId"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	DueDate     time.Time          `json:"dueDate"`
	TimeLimit   int                `json:"timeLimit"`
	CreatedAt   time.Time          `json:"createdAt"`
	Questions   []QuestionResponse `json:"questions,omitempty"`
}

// NewQuizResponse converts a quiz model. Correct answers never appear
// in question responses.
func NewQuizResponse(q *models.Quiz) QuizResponse {
	resp := QuizResponse{
		ID:          q.ID,
		CourseID:    q.CourseID,
		Title:       q.Title,
		Description: q.Description,
		DueDate:     q.DueDate,
		TimeLimit:   q.TimeLimit,
		CreatedAt:   q.CreatedAt,
	}
	for _, question := range q.Questions {
		resp.Questions = append(resp.Questions, NewQuestionResponse(question))
	}
	return resp
}

// CreateQuestionRequest represents question creation data
type CreateQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	QuestionType  string   `json:"questionType" binding:"required,oneof=multiple_choice true_false"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// UpdateQuestionRequest represents question update data
type UpdateQuestionRequest struct {
	Text          string   `json:"text" binding:"required"`
	QuestionType  string   `json:"questionType" binding:"required,oneof=multiple_choice true_false"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correctAnswer" binding:"required"`
}

// QuestionResponse represents a question without its correct answer
type QuestionResponse struct {
	ID           int64    `json:"id"`
	QuizID       int64    `json:"quizId"`
	Text         string   `json:"text"`
	QuestionType string   `json:"questionType"`
	Options      []string `json:"options,omitempty"`
}

// NewQuestionResponse converts a question model.
func NewQuestionResponse(q *models.Question) QuestionResponse {
	return QuestionResponse{
		ID:           q.ID,
		QuizID:       q.QuizID,
		Text:         q.Text,
		QuestionType: string(q.QuestionType),
		Options:      q.Options,
	}
}

// SubmitQuizRequest carries the student's answers keyed by question id.
type SubmitQuizRequest struct {
	Answers map[int64]string `json:"answers" binding:"required"`
}

// QuizSubmissionResponse represents a graded quiz submission
type QuizSubmissionResponse struct {
	ID          int64            `json:"id"`
	QuizID      int64            `json:"quizId"`
	StudentID   int64            `json:"studentId"`
	Answers     map[int64]string `json:"answers"`
	Score       *int             `json:"score,omitempty"`
	SubmittedAt time.Time        `json:"submittedAt"`
}

// NewQuizSubmissionResponse converts a quiz submission model.
func NewQuizSubmissionResponse(s *models.QuizSubmission) QuizSubmissionResponse {
	return QuizSubmissionResponse{
		ID:          s.ID,
		QuizID:      s.QuizID,
		StudentID:   s.StudentID,
		Answers:     s.Answers,
		Score:       s.Score,
		SubmittedAt: s.SubmittedAt,
	}
}
