package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/services"
	"github.com/doruk/eduhub/internal/middleware"
)

// EnrollmentController handles the enrollment request workflow
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
	logger            zerolog.Logger
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService, logger zerolog.Logger) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		logger:            logger,
	}
}

// RequestEnrollment godoc
// @Summary Request enrollment in a course
// @Description Creates a pending enrollment request. A repeated request returns the existing pending one.
// @Tags enrollments
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Existing pending request"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "New request created"
// @Failure 400 {object} dto.ErrorResponse "Already enrolled or invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Student role required"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Rejected request blocks resubmission"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) RequestEnrollment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, created, err := c.enrollmentService.RequestEnrollment(ctx.Request.Context(), userID, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
		c.logger.Info().
			Int64("studentID", userID).
			Int64("courseID", req.CourseID).
			Msg("Enrollment requested")
	}
	ctx.JSON(status, dto.APIResponse{Data: enrollment})
}

// ApproveEnrollment godoc
// @Summary Approve an enrollment request
// @Description Moves a pending request to approved and adds the student to the course. Admin only.
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Enrollment request ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already finalized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/approve [post]
func (c *EnrollmentController) ApproveEnrollment(ctx *gin.Context) {
	c.finalize(ctx, c.enrollmentService.ApproveEnrollment)
}

// RejectEnrollment godoc
// @Summary Reject an enrollment request
// @Description Moves a pending request to rejected. Admin only.
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Enrollment request ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Admin role required"
// @Failure 404 {object} dto.ErrorResponse "Request not found"
// @Failure 409 {object} dto.ErrorResponse "Request already finalized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id}/reject [post]
func (c *EnrollmentController) RejectEnrollment(ctx *gin.Context) {
	c.finalize(ctx, c.enrollmentService.RejectEnrollment)
}

// ListByCourse godoc
// @Summary List a course's enrollment requests
// @Description Lists enrollment requests for a course with optional status filtering
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid parameters"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/enrollments [get]
func (c *EnrollmentController) ListByCourse(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	var filter dto.EnrollmentFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		badRequest(ctx, "Invalid filter parameters")
		return
	}

	enrollments, err := c.enrollmentService.ListByCourse(ctx.Request.Context(), userID, courseID, filter.Status)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollments})
}

// ListOwn godoc
// @Summary List own enrollment requests
// @Description Lists the authenticated student's enrollment requests
// @Tags enrollments
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse}
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/me [get]
func (c *EnrollmentController) ListOwn(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	enrollments, err := c.enrollmentService.ListOwn(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollments})
}

type finalizeFunc func(ctx context.Context, actorID, requestID int64) (*dto.EnrollmentResponse, error)

func (c *EnrollmentController) finalize(ctx *gin.Context, apply finalizeFunc) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	requestID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid enrollment request ID")
		return
	}

	enrollment, err := apply(ctx.Request.Context(), userID, requestID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: enrollment})
}
