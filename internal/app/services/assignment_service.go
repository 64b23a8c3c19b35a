package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/filestorage"
)

// AssignmentService defines the interface for assignment, submission
// and announcement operations
type AssignmentService interface {
	GetAssignments(ctx context.Context, actorID, courseID int64) ([]dto.AssignmentResponse, error)
	GetAssignmentByID(ctx context.Context, actorID, id int64) (*dto.AssignmentResponse, error)
	CreateAssignment(ctx context.Context, actorID, courseID int64, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error)
	UpdateAssignment(ctx context.Context, actorID, id int64, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, actorID, id int64) error
	SubmitAssignment(ctx context.Context, actorID, assignmentID int64, file *multipart.FileHeader) (*dto.SubmissionResponse, error)
	GetSubmissions(ctx context.Context, actorID, assignmentID int64) ([]dto.SubmissionResponse, error)
	CreateAnnouncement(ctx context.Context, actorID, courseID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	GetAnnouncements(ctx context.Context, actorID, courseID int64) ([]dto.AnnouncementResponse, error)
	DeleteAnnouncement(ctx context.Context, actorID, id int64) error
}

// assignmentStore is the slice of the assignment repository the
// service uses. AssignmentRepository satisfies it.
type assignmentStore interface {
	CreateAssignment(ctx context.Context, a *models.Assignment) (int64, error)
	GetAssignmentByID(ctx context.Context, id int64) (*models.Assignment, error)
	ListAssignmentsByCourse(ctx context.Context, courseID int64) ([]*models.Assignment, error)
	UpdateAssignment(ctx context.Context, a *models.Assignment) error
	DeleteAssignment(ctx context.Context, id int64) error
	CreateSubmission(ctx context.Context, s *models.AssignmentSubmission) (int64, error)
	ListSubmissionsByAssignment(ctx context.Context, assignmentID int64) ([]*models.AssignmentSubmission, error)
	CreateAnnouncement(ctx context.Context, a *models.Announcement) (int64, error)
	GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	ListAnnouncementsByCourse(ctx context.Context, courseID int64) ([]*models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, id int64) error
}

// courseGetter resolves courses for course-scoped checks.
// CourseRepository satisfies it.
type courseGetter interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
}

// assignmentServiceImpl implements AssignmentService
type assignmentServiceImpl struct {
	assignmentRepo assignmentStore
	courseRepo     courseGetter
	authzService   *auth.AuthorizationService
	storage        filestorage.FileStorage
	logger         zerolog.Logger
}

// NewAssignmentService creates a new AssignmentService
func NewAssignmentService(
	assignmentRepo assignmentStore,
	courseRepo courseGetter,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) AssignmentService {
	return &assignmentServiceImpl{
		assignmentRepo: assignmentRepo,
		courseRepo:     courseRepo,
		authzService:   authzService,
		storage:        storage,
		logger:         logger,
	}
}

// GetAssignments lists a course's assignments ordered by due date.
func (s *assignmentServiceImpl) GetAssignments(ctx context.Context, actorID, courseID int64) ([]dto.AssignmentResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	assignments, err := s.assignmentRepo.ListAssignmentsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AssignmentResponse, 0, len(assignments))
	for _, a := range assignments {
		responses = append(responses, dto.NewAssignmentResponse(a))
	}
	return responses, nil
}

// GetAssignmentByID retrieves a single assignment.
func (s *assignmentServiceImpl) GetAssignmentByID(ctx context.Context, actorID, id int64) (*dto.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: assignment.CourseID}); err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// CreateAssignment creates an assignment in a course. Only the course's
// teachers and admins may create.
func (s *assignmentServiceImpl) CreateAssignment(ctx context.Context, actorID, courseID int64, req *dto.CreateAssignmentRequest) (*dto.AssignmentResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	assignment := &models.Assignment{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
	}
	if _, err := s.assignmentRepo.CreateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("assignmentID", assignment.ID).
		Int64("courseID", courseID).
		Int64("actorID", actorID).
		Msg("Assignment created")

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// UpdateAssignment updates an assignment's title, description and due
// date.
func (s *assignmentServiceImpl) UpdateAssignment(ctx context.Context, actorID, id int64, req *dto.UpdateAssignmentRequest) (*dto.AssignmentResponse, error) {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: assignment.CourseID}); err != nil {
		return nil, err
	}

	assignment.Title = req.Title
	assignment.Description = req.Description
	assignment.DueDate = req.DueDate
	if err := s.assignmentRepo.UpdateAssignment(ctx, assignment); err != nil {
		return nil, err
	}

	resp := dto.NewAssignmentResponse(assignment)
	return &resp, nil
}

// DeleteAssignment deletes an assignment together with its submissions.
func (s *assignmentServiceImpl) DeleteAssignment(ctx context.Context, actorID, id int64) error {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: assignment.CourseID}); err != nil {
		return err
	}
	return s.assignmentRepo.DeleteAssignment(ctx, id)
}

// SubmitAssignment stores the uploaded file and records the actor's
// submission. Submissions are self-scoped: enrolled students submit
// for themselves, and a repeat submission fails with
// ErrAlreadySubmitted.
func (s *assignmentServiceImpl) SubmitAssignment(ctx context.Context, actorID, assignmentID int64, file *multipart.FileHeader) (*dto.SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:       assignment.CourseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.ErrValidationFailed
	}

	fileURL, err := s.storage.SaveFileWithPath(file, "assignment_submissions")
	if err != nil {
		return nil, err
	}

	submission := &models.AssignmentSubmission{
		AssignmentID: assignmentID,
		StudentID:    actorID,
		FileURL:      &fileURL,
	}
	if _, err := s.assignmentRepo.CreateSubmission(ctx, submission); err != nil {
		// The record failed, keep storage consistent.
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned submission file")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("submissionID", submission.ID).
		Int64("assignmentID", assignmentID).
		Int64("studentID", actorID).
		Msg("Assignment submission recorded")

	resp := dto.NewSubmissionResponse(submission)
	return &resp, nil
}

// GetSubmissions lists an assignment's submissions. Teachers of the
// course and admins see every submission; an enrolled student sees only
// their own.
func (s *assignmentServiceImpl) GetSubmissions(ctx context.Context, actorID, assignmentID int64) ([]dto.SubmissionResponse, error) {
	assignment, err := s.assignmentRepo.GetAssignmentByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	actor, err := s.authzService.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !auth.CanAccess(actor, auth.ActionList, auth.Resource{CourseID: assignment.CourseID}) {
		return nil, apperrors.ErrPermissionDenied
	}

	submissions, err := s.assignmentRepo.ListSubmissionsByAssignment(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.SubmissionResponse, 0, len(submissions))
	for _, sub := range submissions {
		if actor.Role == models.RoleStudent && sub.StudentID != actor.ID {
			continue
		}
		responses = append(responses, dto.NewSubmissionResponse(sub))
	}
	return responses, nil
}

// CreateAnnouncement posts an announcement in a course.
func (s *assignmentServiceImpl) CreateAnnouncement(ctx context.Context, actorID, courseID int64, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	announcement := &models.Announcement{
		CourseID: courseID,
		Title:    req.Title,
		Message:  req.Message,
	}
	if _, err := s.assignmentRepo.CreateAnnouncement(ctx, announcement); err != nil {
		return nil, err
	}

	resp := dto.NewAnnouncementResponse(announcement)
	return &resp, nil
}

// GetAnnouncements lists a course's announcements, newest first.
func (s *assignmentServiceImpl) GetAnnouncements(ctx context.Context, actorID, courseID int64) ([]dto.AnnouncementResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	announcements, err := s.assignmentRepo.ListAnnouncementsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AnnouncementResponse, 0, len(announcements))
	for _, a := range announcements {
		responses = append(responses, dto.NewAnnouncementResponse(a))
	}
	return responses, nil
}

// DeleteAnnouncement removes an announcement.
func (s *assignmentServiceImpl) DeleteAnnouncement(ctx context.Context, actorID, id int64) error {
	announcement, err := s.assignmentRepo.GetAnnouncementByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: announcement.CourseID}); err != nil {
		return err
	}
	return s.assignmentRepo.DeleteAnnouncement(ctx, id)
}
