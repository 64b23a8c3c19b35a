package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/db"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/dberrors"
)

// EnrollmentService defines the interface for the enrollment workflow
type EnrollmentService interface {
	RequestEnrollment(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, bool, error)
	ApproveEnrollment(ctx context.Context, actorID, requestID int64) (*dto.EnrollmentResponse, error)
	RejectEnrollment(ctx context.Context, actorID, requestID int64) (*dto.EnrollmentResponse, error)
	ListByCourse(ctx context.Context, actorID, courseID int64, status string) (*dto.EnrollmentListResponse, error)
	ListOwn(ctx context.Context, studentID int64) (*dto.EnrollmentListResponse, error)
}

// enrollmentStore is the slice of the enrollment repository the
// workflow uses. EnrollmentRepository satisfies it.
type enrollmentStore interface {
	Create(ctx context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error)
	GetPending(ctx context.Context, studentID, courseID int64) (*models.EnrollmentRequest, error)
	HasRejected(ctx context.Context, studentID, courseID int64) (bool, error)
	GetByIDForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*models.EnrollmentRequest, error)
	UpdateStatusTx(ctx context.Context, tx pgx.Tx, id int64, status models.EnrollmentStatus) error
	ListByCourse(ctx context.Context, courseID int64, status *models.EnrollmentStatus) ([]*models.EnrollmentRequest, error)
	ListByStudent(ctx context.Context, studentID int64) ([]*models.EnrollmentRequest, error)
}

// courseMembershipStore is the slice of the course repository the
// workflow uses. CourseRepository satisfies it.
type courseMembershipStore interface {
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	IsStudentOf(ctx context.Context, courseID, userID int64) (bool, error)
	AddStudentTx(ctx context.Context, tx pgx.Tx, courseID, userID int64) error
}

// transactor runs a function inside a database transaction.
// PostgresDB satisfies it.
type transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// enrollmentServiceImpl implements EnrollmentService
type enrollmentServiceImpl struct {
	enrollmentRepo enrollmentStore
	courseRepo     courseMembershipStore
	authzService   *auth.AuthorizationService
	database       transactor
	// allowResubmission permits a new request after a rejection.
	allowResubmission bool
	logger            zerolog.Logger
}

// NewEnrollmentService creates a new EnrollmentService
func NewEnrollmentService(
	enrollmentRepo enrollmentStore,
	courseRepo courseMembershipStore,
	authzService *auth.AuthorizationService,
	database transactor,
	allowResubmission bool,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo:    enrollmentRepo,
		courseRepo:        courseRepo,
		authzService:      authzService,
		database:          database,
		allowResubmission: allowResubmission,
		logger:            logger,
	}
}

// RequestEnrollment creates a pending request for the student, or
// returns the existing open one. The second return value is false when
// an open request already existed. Membership is never touched here.
func (s *enrollmentServiceImpl) RequestEnrollment(ctx context.Context, studentID, courseID int64) (*dto.EnrollmentResponse, bool, error) {
	if _, err := s.authzService.RequireRole(ctx, studentID, models.RoleStudent); err != nil {
		return nil, false, err
	}

	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, false, err
	}

	existing, err := s.enrollmentRepo.GetPending(ctx, studentID, courseID)
	if err != nil && !errors.Is(err, apperrors.ErrEnrollmentNotFound) {
		return nil, false, fmt.Errorf("error checking existing request: %w", err)
	}
	if existing != nil {
		resp := dto.NewEnrollmentResponse(existing)
		return &resp, false, nil
	}

	// A student already in the course needs no request.
	enrolled, err := s.courseRepo.IsStudentOf(ctx, courseID, studentID)
	if err != nil {
		return nil, false, fmt.Errorf("error checking membership: %w", err)
	}
	if enrolled {
		return nil, false, fmt.Errorf("%w: already enrolled", apperrors.ErrValidationFailed)
	}

	if !s.allowResubmission {
		rejected, err := s.enrollmentRepo.HasRejected(ctx, studentID, courseID)
		if err != nil {
			return nil, false, fmt.Errorf("error checking rejected requests: %w", err)
		}
		if rejected {
			return nil, false, apperrors.ErrEnrollmentResubmission
		}
	}

	request, err := s.enrollmentRepo.Create(ctx, studentID, courseID)
	if err != nil {
		// A concurrent request can win the insert against the
		// one-open-request index; surface that row instead.
		if dberrors.IsUniqueViolation(err) {
			existing, getErr := s.enrollmentRepo.GetPending(ctx, studentID, courseID)
			if getErr == nil && existing != nil {
				resp := dto.NewEnrollmentResponse(existing)
				return &resp, false, nil
			}
		}
		return nil, false, fmt.Errorf("error creating enrollment request: %w", err)
	}

	resp := dto.NewEnrollmentResponse(request)
	return &resp, true, nil
}

// ApproveEnrollment finalizes a pending request and adds the student to
// the course, both inside one transaction. Admin only. Approving a
// finalized request fails with a conflict.
func (s *enrollmentServiceImpl) ApproveEnrollment(ctx context.Context, actorID, requestID int64) (*dto.EnrollmentResponse, error) {
	if _, err := s.authzService.RequireRole(ctx, actorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var approved *models.EnrollmentRequest
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		request, err := s.enrollmentRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if !request.Status.CanTransitionTo(models.EnrollmentApproved) {
			return apperrors.ErrEnrollmentFinalized
		}

		if err := s.enrollmentRepo.UpdateStatusTx(ctx, tx, requestID, models.EnrollmentApproved); err != nil {
			return err
		}
		if err := s.courseRepo.AddStudentTx(ctx, tx, request.CourseID, request.StudentID); err != nil {
			return err
		}

		request.Status = models.EnrollmentApproved
		approved = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Int64("studentID", approved.StudentID).
		Int64("courseID", approved.CourseID).
		Msg("Enrollment approved")

	resp := dto.NewEnrollmentResponse(approved)
	return &resp, nil
}

// RejectEnrollment finalizes a pending request as rejected. Admin only.
func (s *enrollmentServiceImpl) RejectEnrollment(ctx context.Context, actorID, requestID int64) (*dto.EnrollmentResponse, error) {
	if _, err := s.authzService.RequireRole(ctx, actorID, models.RoleAdmin); err != nil {
		return nil, err
	}

	var rejected *models.EnrollmentRequest
	err := s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		request, err := s.enrollmentRepo.GetByIDForUpdate(ctx, tx, requestID)
		if err != nil {
			return err
		}

		if !request.Status.CanTransitionTo(models.EnrollmentRejected) {
			return apperrors.ErrEnrollmentFinalized
		}

		if err := s.enrollmentRepo.UpdateStatusTx(ctx, tx, requestID, models.EnrollmentRejected); err != nil {
			return err
		}

		request.Status = models.EnrollmentRejected
		rejected = request
		return nil
	})
	if err != nil {
		return nil, err
	}

	resp := dto.NewEnrollmentResponse(rejected)
	return &resp, nil
}

// ListByCourse lists a course's enrollment requests, optionally
// filtered by status. Admins and the course's teachers may read.
func (s *enrollmentServiceImpl) ListByCourse(ctx context.Context, actorID, courseID int64, status string) (*dto.EnrollmentListResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	var statusFilter *models.EnrollmentStatus
	if status != "" {
		st := models.EnrollmentStatus(status)
		statusFilter = &st
	}

	requests, err := s.enrollmentRepo.ListByCourse(ctx, courseID, statusFilter)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollment requests: %w", err)
	}

	return &dto.EnrollmentListResponse{Enrollments: dto.NewEnrollmentResponses(requests)}, nil
}

// ListOwn lists the caller's own enrollment requests.
func (s *enrollmentServiceImpl) ListOwn(ctx context.Context, studentID int64) (*dto.EnrollmentListResponse, error) {
	requests, err := s.enrollmentRepo.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error listing enrollment requests: %w", err)
	}
	return &dto.EnrollmentListResponse{Enrollments: dto.NewEnrollmentResponses(requests)}, nil
}
