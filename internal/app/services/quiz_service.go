package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// QuizService defines the interface for quiz, question and quiz
// submission operations
type QuizService interface {
	GetQuizzes(ctx context.Context, actorID, courseID int64) ([]dto.QuizResponse, error)
	GetQuizByID(ctx context.Context, actorID, id int64) (*dto.QuizResponse, error)
	CreateQuiz(ctx context.Context, actorID, courseID int64, req *dto.CreateQuizRequest) (*dto.QuizResponse, error)
	UpdateQuiz(ctx context.Context, actorID, id int64, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error)
	DeleteQuiz(ctx context.Context, actorID, id int64) error
	AddQuestion(ctx context.Context, actorID, quizID int64, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
	UpdateQuestion(ctx context.Context, actorID, questionID int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error)
	DeleteQuestion(ctx context.Context, actorID, questionID int64) error
	SubmitQuiz(ctx context.Context, actorID, quizID int64, req *dto.SubmitQuizRequest) (*dto.QuizSubmissionResponse, error)
	GetQuizSubmissions(ctx context.Context, actorID, quizID int64) ([]dto.QuizSubmissionResponse, error)
}

// quizServiceImpl implements QuizService
type quizServiceImpl struct {
	quizRepo     *repositories.QuizRepository
	courseRepo   *repositories.CourseRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(
	quizRepo *repositories.QuizRepository,
	courseRepo *repositories.CourseRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) QuizService {
	return &quizServiceImpl{
		quizRepo:     quizRepo,
		courseRepo:   courseRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// GetQuizzes lists a course's quizzes without their questions.
func (s *quizServiceImpl) GetQuizzes(ctx context.Context, actorID, courseID int64) ([]dto.QuizResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	quizzes, err := s.quizRepo.ListQuizzesByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		responses = append(responses, dto.NewQuizResponse(q))
	}
	return responses, nil
}

// GetQuizByID retrieves a quiz with its questions. Correct answers stay
// server side.
func (s *quizServiceImpl) GetQuizByID(ctx context.Context, actorID, id int64) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return nil, err
	}

	quiz.Questions, err = s.quizRepo.ListQuestionsByQuiz(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// CreateQuiz creates a quiz in a course. Only the course's teachers and
// admins may create.
func (s *quizServiceImpl) CreateQuiz(ctx context.Context, actorID, courseID int64, req *dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		TimeLimit:   req.TimeLimit,
	}
	if _, err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("quizID", quiz.ID).
		Int64("courseID", courseID).
		Int64("actorID", actorID).
		Msg("Quiz created")

	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// UpdateQuiz updates a quiz's metadata.
func (s *quizServiceImpl) UpdateQuiz(ctx context.Context, actorID, id int64, req *dto.UpdateQuizRequest) (*dto.QuizResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return nil, err
	}

	quiz.Title = req.Title
	quiz.Description = req.Description
	quiz.DueDate = req.DueDate
	quiz.TimeLimit = req.TimeLimit
	if err := s.quizRepo.UpdateQuiz(ctx, quiz); err != nil {
		return nil, err
	}

	resp := dto.NewQuizResponse(quiz)
	return &resp, nil
}

// DeleteQuiz deletes a quiz together with its questions and
// submissions.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, actorID, id int64) error {
	quiz, err := s.quizRepo.GetQuizByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return err
	}
	return s.quizRepo.DeleteQuiz(ctx, id)
}

// AddQuestion adds a question to a quiz.
func (s *quizServiceImpl) AddQuestion(ctx context.Context, actorID, quizID int64, req *dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return nil, err
	}

	question := &models.Question{
		QuizID:        quizID,
		Text:          req.Text,
		QuestionType:  models.QuestionType(req.QuestionType),
		CorrectAnswer: req.CorrectAnswer,
		Options:       req.Options,
	}
	if _, err := s.quizRepo.CreateQuestion(ctx, question); err != nil {
		return nil, err
	}

	resp := dto.NewQuestionResponse(question)
	return &resp, nil
}

// UpdateQuestion updates an existing question.
func (s *quizServiceImpl) UpdateQuestion(ctx context.Context, actorID, questionID int64, req *dto.UpdateQuestionRequest) (*dto.QuestionResponse, error) {
	question, err := s.quizRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	quiz, err := s.quizRepo.GetQuizByID(ctx, question.QuizID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return nil, err
	}

	question.Text = req.Text
	question.QuestionType = models.QuestionType(req.QuestionType)
	question.CorrectAnswer = req.CorrectAnswer
	question.Options = req.Options
	if err := s.quizRepo.UpdateQuestion(ctx, question); err != nil {
		return nil, err
	}

	resp := dto.NewQuestionResponse(question)
	return &resp, nil
}

// DeleteQuestion removes a question from its quiz.
func (s *quizServiceImpl) DeleteQuestion(ctx context.Context, actorID, questionID int64) error {
	question, err := s.quizRepo.GetQuestionByID(ctx, questionID)
	if err != nil {
		return err
	}
	quiz, err := s.quizRepo.GetQuizByID(ctx, question.QuizID)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: quiz.CourseID}); err != nil {
		return err
	}
	return s.quizRepo.DeleteQuestion(ctx, questionID)
}

// SubmitQuiz records the actor's answers and grades them against the
// stored correct answers. Each student submits a quiz once.
func (s *quizServiceImpl) SubmitQuiz(ctx context.Context, actorID, quizID int64, req *dto.SubmitQuizRequest) (*dto.QuizSubmissionResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:       quiz.CourseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.ListQuestionsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	score := models.ScoreAnswers(questions, req.Answers)

	submission := &models.QuizSubmission{
		QuizID:    quizID,
		StudentID: actorID,
		Answers:   req.Answers,
		Score:     &score,
	}
	if _, err := s.quizRepo.CreateQuizSubmission(ctx, submission); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("submissionID", submission.ID).
		Int64("quizID", quizID).
		Int64("studentID", actorID).
		Int("score", score).
		Msg("Quiz submission graded")

	resp := dto.NewQuizSubmissionResponse(submission)
	return &resp, nil
}

// GetQuizSubmissions lists a quiz's submissions. Teachers of the course
// and admins see every submission; an enrolled student sees only their
// own.
func (s *quizServiceImpl) GetQuizSubmissions(ctx context.Context, actorID, quizID int64) ([]dto.QuizSubmissionResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}

	actor, err := s.authzService.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(actor, auth.ActionList, auth.Resource{CourseID: quiz.CourseID}) {
		return nil, apperrors.ErrPermissionDenied
	}

	submissions, err := s.quizRepo.ListQuizSubmissions(ctx, quizID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.QuizSubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		if actor.Role == models.RoleStudent && sub.StudentID != actor.ID {
			continue
		}
		responses = append(responses, dto.NewQuizSubmissionResponse(sub))
	}
	return responses, nil
}
