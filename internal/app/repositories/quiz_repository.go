package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/dberrors"
)

// QuizRepository handles database operations for quizzes, their
// questions and graded submissions. Question options and submission
// answers are stored as JSONB; pgx (un)marshals them transparently.
type QuizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{db: db}
}

// CreateQuiz inserts a quiz and returns its id.
func (r *QuizRepository) CreateQuiz(ctx context.Context, q *models.Quiz) (int64, error) {
	query := `
		INSERT INTO quizzes (course_id, title, description, due_date, time_limit)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query, q.CourseID, q.Title, q.Description, q.DueDate, q.TimeLimit).
		Scan(&q.ID, &q.CreatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating quiz: %w", err)
	}
	return q.ID, nil
}

// GetQuizByID retrieves a quiz by ID
func (r *QuizRepository) GetQuizByID(ctx context.Context, id int64) (*models.Quiz, error) {
	query := `
		SELECT id, course_id, title, description, due_date, time_limit, created_at
		FROM quizzes
		WHERE id = $1
	`

	var q models.Quiz
	err := r.db.QueryRow(ctx, query, id).
		Scan(&q.ID, &q.CourseID, &q.Title, &q.Description, &q.DueDate, &q.TimeLimit, &q.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz: %w", err)
	}
	return &q, nil
}

// ListQuizzesByCourse retrieves all quizzes of a course.
func (r *QuizRepository) ListQuizzesByCourse(ctx context.Context, courseID int64) ([]*models.Quiz, error) {
	query := `
		SELECT id, course_id, title, description, due_date, time_limit, created_at
		FROM quizzes
		WHERE course_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		var q models.Quiz
		err := rows.Scan(&q.ID, &q.CourseID, &q.Title, &q.Description, &q.DueDate, &q.TimeLimit, &q.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning quiz row: %w", err)
		}
		quizzes = append(quizzes, &q)
	}
	return quizzes, rows.Err()
}

// UpdateQuiz updates a quiz's metadata.
func (r *QuizRepository) UpdateQuiz(ctx context.Context, q *models.Quiz) error {
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE quizzes SET title = $1, description = $2, due_date = $3, time_limit = $4 WHERE id = $5`,
		q.Title, q.Description, q.DueDate, q.TimeLimit, q.ID)
	if err != nil {
		return fmt.Errorf("error updating quiz: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizNotFound
	}
	return nil
}

// DeleteQuiz deletes a quiz, its questions and submissions (cascade).
func (r *QuizRepository) DeleteQuiz(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting quiz: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizNotFound
	}
	return nil
}

// CreateQuestion inserts a question for a quiz.
func (r *QuizRepository) CreateQuestion(ctx context.Context, q *models.Question) (int64, error) {
	query := `
		INSERT INTO questions (quiz_id, text, question_type, options, correct_answer)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	err := r.db.QueryRow(ctx, query, q.QuizID, q.Text, q.QuestionType, q.Options, q.CorrectAnswer).
		Scan(&q.ID)
	if err != nil {
		return 0, fmt.Errorf("error creating question: %w", err)
	}
	return q.ID, nil
}

// GetQuestionByID retrieves a question by ID
func (r *QuizRepository) GetQuestionByID(ctx context.Context, id int64) (*models.Question, error) {
	query := `
		SELECT id, quiz_id, text, question_type, options, correct_answer
		FROM questions
		WHERE id = $1
	`

	var q models.Question
	err := r.db.QueryRow(ctx, query, id).
		Scan(&q.ID, &q.QuizID, &q.Text, &q.QuestionType, &q.Options, &q.CorrectAnswer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}
	return &q, nil
}

// ListQuestionsByQuiz retrieves all questions of a quiz, including the
// correct answers. Callers decide whether to expose them.
func (r *QuizRepository) ListQuestionsByQuiz(ctx context.Context, quizID int64) ([]*models.Question, error) {
	query := `
		SELECT id, quiz_id, text, question_type, options, correct_answer
		FROM questions
		WHERE quiz_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		var q models.Question
		err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.QuestionType, &q.Options, &q.CorrectAnswer)
		if err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// UpdateQuestion updates an existing question.
func (r *QuizRepository) UpdateQuestion(ctx context.Context, q *models.Question) error {
	query := `
		UPDATE questions
		SET text = $1, question_type = $2, options = $3, correct_answer = $4
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query, q.Text, q.QuestionType, q.Options, q.CorrectAnswer, q.ID)
	if err != nil {
		return fmt.Errorf("error updating question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// DeleteQuestion deletes a question.
func (r *QuizRepository) DeleteQuestion(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting question: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}
	return nil
}

// CreateQuizSubmission stores a student's answers and score. A second
// attempt for the same quiz fails with ErrAlreadySubmitted.
func (r *QuizRepository) CreateQuizSubmission(ctx context.Context, s *models.QuizSubmission) (int64, error) {
	query := `
		INSERT INTO quiz_submissions (quiz_id, student_id, answers, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, submitted_at
	`

	err := r.db.QueryRow(ctx, query, s.QuizID, s.StudentID, s.Answers, s.Score).
		Scan(&s.ID, &s.SubmittedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrAlreadySubmitted
		}
		return 0, fmt.Errorf("error creating quiz submission: %w", err)
	}
	return s.ID, nil
}

// GetQuizSubmissionByID retrieves a quiz submission by ID
func (r *QuizRepository) GetQuizSubmissionByID(ctx context.Context, id int64) (*models.QuizSubmission, error) {
	query := `
		SELECT id, quiz_id, student_id, answers, score, submitted_at
		FROM quiz_submissions
		WHERE id = $1
	`

	var s models.QuizSubmission
	err := r.db.QueryRow(ctx, query, id).
		Scan(&s.ID, &s.QuizID, &s.StudentID, &s.Answers, &s.Score, &s.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("error retrieving quiz submission: %w", err)
	}
	return &s, nil
}

// ListQuizSubmissions retrieves all submissions for a quiz.
func (r *QuizRepository) ListQuizSubmissions(ctx context.Context, quizID int64) ([]*models.QuizSubmission, error) {
	query := `
		SELECT id, quiz_id, student_id, answers, score, submitted_at
		FROM quiz_submissions
		WHERE quiz_id = $1
		ORDER BY submitted_at
	`

	rows, err := r.db.Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("error listing quiz submissions: %w", err)
	}
	defer rows.Close()

	var submissions []*models.QuizSubmission
	for rows.Next() {
		var s models.QuizSubmission
		err := rows.Scan(&s.ID, &s.QuizID, &s.StudentID, &s.Answers, &s.Score, &s.SubmittedAt)
		if err != nil {
			return nil, fmt.Errorf("error scanning quiz submission row: %w", err)
		}
		submissions = append(submissions, &s)
	}
	return submissions, rows.Err()
}
