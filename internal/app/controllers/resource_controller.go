package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/services"
	"github.com/doruk/eduhub/internal/middleware"
)

// ResourceController handles course file resource operations
type ResourceController struct {
	resourceService services.ResourceService
	logger          zerolog.Logger
}

// NewResourceController creates a new ResourceController
func NewResourceController(resourceService services.ResourceService, logger zerolog.Logger) *ResourceController {
	return &ResourceController{
		resourceService: resourceService,
		logger:          logger,
	}
}

// GetResources godoc
// @Summary List a course's file resources
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param category query string false "Filter by category"
// @Success 200 {object} dto.APIResponse{data=[]dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/resources [get]
func (c *ResourceController) GetResources(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	var filter dto.ResourceFilterRequest
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		badRequest(ctx, "Invalid filter parameters")
		return
	}

	resources, err := c.resourceService.GetResources(ctx.Request.Context(), userID, courseID, &filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resources})
}

// UploadResource godoc
// @Summary Upload a file resource to a course
// @Description Only teachers of the course (or admins) may upload
// @Tags resources
// @Accept multipart/form-data
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param category formData string true "Resource category"
// @Param tags formData string false "Comma separated tags"
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request or missing file"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/resources [post]
func (c *ResourceController) UploadResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	var req dto.CreateResourceRequest
	if err := ctx.ShouldBind(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, "A file is required")
		return
	}

	resource, err := c.resourceService.UploadResource(ctx.Request.Context(), userID, courseID, &req, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resource})
}

// GetResourceByID godoc
// @Summary Get a file resource
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid resource ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /resources/{id} [get]
func (c *ResourceController) GetResourceByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid resource ID")
		return
	}

	resource, err := c.resourceService.GetResourceByID(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resource})
}

// UpdateResource godoc
// @Summary Update a resource's metadata
// @Description The stored file is immutable; only category and tags change
// @Tags resources
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Param request body dto.UpdateResourceRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ResourceResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /resources/{id} [put]
func (c *ResourceController) UpdateResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid resource ID")
		return
	}

	var req dto.UpdateResourceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	resource, err := c.resourceService.UpdateResource(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resource})
}

// DeleteResource godoc
// @Summary Delete a file resource
// @Tags resources
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Resource ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid resource ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Resource not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /resources/{id} [delete]
func (c *ResourceController) DeleteResource(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid resource ID")
		return
	}

	if err := c.resourceService.DeleteResource(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Resource deleted successfully"},
	})
}
