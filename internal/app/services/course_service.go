package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/email"
)

// CourseService defines the interface for course registry operations
type CourseService interface {
	GetCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error)
	GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error)
	CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error)
	UpdateCourse(ctx context.Context, actorID, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error)
	DeleteCourse(ctx context.Context, actorID, id int64) error
	AddTeacher(ctx context.Context, actorID, courseID, userID int64) error
	RemoveTeacher(ctx context.Context, actorID, courseID, userID int64) error
	AddStudent(ctx context.Context, actorID, courseID, userID int64) error
	RemoveStudent(ctx context.Context, actorID, courseID, userID int64) error
	GetActivityLog(ctx context.Context, actorID, courseID int64) ([]dto.ActivityLogResponse, error)
}

// userDirectory resolves accounts and the notification recipient
// list. UserRepository satisfies it.
type userDirectory interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetAllEmails(ctx context.Context) ([]string, error)
}

// courseServiceImpl implements CourseService
type courseServiceImpl struct {
	courseRepo      *repositories.CourseRepository
	activityLogRepo *repositories.ActivityLogRepository
	userRepo        userDirectory
	authzService    *auth.AuthorizationService
	emailService    email.EmailService
	logger          zerolog.Logger
}

// NewCourseService creates a new CourseService
func NewCourseService(
	courseRepo *repositories.CourseRepository,
	activityLogRepo *repositories.ActivityLogRepository,
	userRepo userDirectory,
	authzService *auth.AuthorizationService,
	emailService email.EmailService,
	logger zerolog.Logger,
) CourseService {
	return &courseServiceImpl{
		courseRepo:      courseRepo,
		activityLogRepo: activityLogRepo,
		userRepo:        userRepo,
		authzService:    authzService,
		emailService:    emailService,
		logger:          logger,
	}
}

// GetCourses lists courses with search and membership filters. The
// catalog is readable by every authenticated user.
func (s *courseServiceImpl) GetCourses(ctx context.Context, filter *dto.CourseFilterRequest) (*dto.CourseListResponse, error) {
	var search *string
	if filter.Search != "" {
		search = &filter.Search
	}

	courses, total, err := s.courseRepo.GetAll(ctx, search, filter.TeacherID, filter.StudentID, filter.Page, filter.PageSize)
	if err != nil {
		return nil, fmt.Errorf("error getting courses: %w", err)
	}

	responses := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		responses = append(responses, dto.NewCourseResponse(&courses[i]))
	}

	totalPages := (total + int64(filter.PageSize) - 1) / int64(filter.PageSize)
	return &dto.CourseListResponse{
		Courses: responses,
		PaginationInfo: dto.PaginationInfo{
			CurrentPage: filter.Page,
			PageSize:    filter.PageSize,
			TotalItems:  total,
			TotalPages:  int(totalPages),
		},
	}, nil
}

// GetCourseByID retrieves a course with its membership lists.
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	course.Teachers, err = s.courseRepo.GetTeachers(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading course teachers: %w", err)
	}
	course.Students, err = s.courseRepo.GetStudents(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("error loading course students: %w", err)
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// CreateCourse creates a course. Teachers and admins may create; a
// creating teacher joins the course's teacher set. Every known user
// gets a best-effort notification email.
func (s *courseServiceImpl) CreateCourse(ctx context.Context, actorID int64, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	actor, err := s.authzService.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStudent {
		return nil, apperrors.ErrRoleNotAllowed
	}

	course := &models.Course{
		Name:        req.Name,
		Description: req.Description,
		CreatedBy:   &actorID,
	}

	courseID, err := s.courseRepo.CreateCourse(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	course.ID = courseID

	if actor.Role == models.RoleTeacher {
		if err := s.courseRepo.AddTeacher(ctx, courseID, actorID); err != nil {
			return nil, fmt.Errorf("error adding creator to teacher set: %w", err)
		}
	}

	if err := s.activityLogRepo.Append(ctx, courseID, actorID, models.CourseActionCreate); err != nil {
		s.logger.Error().Err(err).Int64("courseID", courseID).Msg("Failed to append course activity log")
	}

	s.notifyCourseCreated(ctx, course, actorID)

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// notifyCourseCreated fans the course-creation email out to all known
// users. Failures are logged only and never fail the request.
func (s *courseServiceImpl) notifyCourseCreated(ctx context.Context, course *models.Course, actorID int64) {
	emails, err := s.userRepo.GetAllEmails(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to load recipient list for course notification")
		return
	}
	if len(emails) == 0 {
		return
	}

	teacherName := ""
	if creator, err := s.userRepo.GetUserByID(ctx, actorID); err == nil {
		teacherName = creator.FullName()
	}

	if err := s.emailService.SendCourseCreatedEmail(emails, course.Name, teacherName); err != nil {
		s.logger.Error().Err(err).Int64("courseID", course.ID).Msg("Failed to send course notification emails")
	}
}

// UpdateCourse updates course fields. Admins and the course's teachers
// may update.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, actorID, id int64, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.GetCourseByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: id}); err != nil {
		return nil, err
	}

	course.Name = req.Name
	course.Description = req.Description

	if err := s.courseRepo.UpdateCourse(ctx, course); err != nil {
		return nil, fmt.Errorf("error updating course: %w", err)
	}

	if err := s.activityLogRepo.Append(ctx, id, actorID, models.CourseActionUpdate); err != nil {
		s.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to append course activity log")
	}

	resp := dto.NewCourseResponse(course)
	return &resp, nil
}

// DeleteCourse removes a course. The activity log row outlives the
// course; the log table carries no foreign key for that reason.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, actorID, id int64) error {
	if _, err := s.courseRepo.GetCourseByID(ctx, id); err != nil {
		return err
	}

	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: id}); err != nil {
		return err
	}

	if err := s.courseRepo.DeleteCourse(ctx, id); err != nil {
		return err
	}

	if err := s.activityLogRepo.Append(ctx, id, actorID, models.CourseActionDelete); err != nil {
		s.logger.Error().Err(err).Int64("courseID", id).Msg("Failed to append course activity log")
	}
	return nil
}

// AddTeacher adds a user to the course's teacher set. The user must
// hold the teacher role.
func (s *courseServiceImpl) AddTeacher(ctx context.Context, actorID, courseID, userID int64) error {
	if err := s.authorizeMembershipChange(ctx, actorID, courseID); err != nil {
		return err
	}
	if err := s.requireMemberRole(ctx, userID, models.RoleTeacher); err != nil {
		return err
	}
	return s.courseRepo.AddTeacher(ctx, courseID, userID)
}

// RemoveTeacher removes a user from the course's teacher set.
func (s *courseServiceImpl) RemoveTeacher(ctx context.Context, actorID, courseID, userID int64) error {
	if err := s.authorizeMembershipChange(ctx, actorID, courseID); err != nil {
		return err
	}
	return s.courseRepo.RemoveTeacher(ctx, courseID, userID)
}

// AddStudent adds a user to the course's student set. The user must
// hold the student role.
func (s *courseServiceImpl) AddStudent(ctx context.Context, actorID, courseID, userID int64) error {
	if err := s.authorizeMembershipChange(ctx, actorID, courseID); err != nil {
		return err
	}
	if err := s.requireMemberRole(ctx, userID, models.RoleStudent); err != nil {
		return err
	}
	return s.courseRepo.AddStudent(ctx, courseID, userID)
}

// RemoveStudent removes a user from the course's student set.
func (s *courseServiceImpl) RemoveStudent(ctx context.Context, actorID, courseID, userID int64) error {
	if err := s.authorizeMembershipChange(ctx, actorID, courseID); err != nil {
		return err
	}
	return s.courseRepo.RemoveStudent(ctx, courseID, userID)
}

// GetActivityLog lists a course's audit records, newest first. Admins
// and the course's teachers may read it.
func (s *courseServiceImpl) GetActivityLog(ctx context.Context, actorID, courseID int64) ([]dto.ActivityLogResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	logs, err := s.activityLogRepo.ListByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("error listing activity log: %w", err)
	}
	return dto.NewActivityLogResponses(logs), nil
}

// authorizeMembershipChange allows admins and the course's teachers to
// mutate membership sets.
func (s *courseServiceImpl) authorizeMembershipChange(ctx context.Context, actorID, courseID int64) error {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return err
	}
	return s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: courseID})
}

// requireMemberRole enforces the membership role invariant.
func (s *courseServiceImpl) requireMemberRole(ctx context.Context, userID int64, role models.Role) error {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.Role != role {
		return apperrors.ErrMemberRoleInvalid
	}
	return nil
}
