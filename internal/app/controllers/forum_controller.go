package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/services"
	"github.com/doruk/eduhub/internal/middleware"
)

// ForumController handles forum post and comment operations
type ForumController struct {
	forumService services.ForumService
	logger       zerolog.Logger
}

// NewForumController creates a new ForumController
func NewForumController(forumService services.ForumService, logger zerolog.Logger) *ForumController {
	return &ForumController{
		forumService: forumService,
		logger:       logger,
	}
}

// GetForums godoc
// @Summary List a course's forum posts
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ForumResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/forums [get]
func (c *ForumController) GetForums(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	forums, err := c.forumService.GetForums(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: forums})
}

// CreateForum godoc
// @Summary Create a forum post
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateForumRequest true "Forum post data"
// @Success 201 {object} dto.APIResponse{data=dto.ForumResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/forums [post]
func (c *ForumController) CreateForum(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	var req dto.CreateForumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	forum, err := c.forumService.CreateForum(ctx.Request.Context(), userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: forum})
}

// GetForumByID godoc
// @Summary Get a forum post with its comments
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Forum post ID"
// @Success 200 {object} dto.APIResponse{data=dto.ForumResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid forum ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Forum post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forums/{id} [get]
func (c *ForumController) GetForumByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid forum ID")
		return
	}

	forum, err := c.forumService.GetForumByID(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: forum})
}

// UpdateForum godoc
// @Summary Edit a forum post
// @Description Only the post's creator or an admin may update
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Forum post ID"
// @Param request body dto.UpdateForumRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ForumResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Forum post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forums/{id} [put]
func (c *ForumController) UpdateForum(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid forum ID")
		return
	}

	var req dto.UpdateForumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	forum, err := c.forumService.UpdateForum(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: forum})
}

// DeleteForum godoc
// @Summary Delete a forum post
// @Description Only the post's creator or an admin may delete
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Forum post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid forum ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Forum post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forums/{id} [delete]
func (c *ForumController) DeleteForum(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid forum ID")
		return
	}

	if err := c.forumService.DeleteForum(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Forum post deleted successfully"},
	})
}

// CreateComment godoc
// @Summary Comment on a forum post
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Forum post ID"
// @Param request body dto.CreateCommentRequest true "Comment data"
// @Success 201 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the course"
// @Failure 404 {object} dto.ErrorResponse "Forum post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /forums/{id}/comments [post]
func (c *ForumController) CreateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	forumID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid forum ID")
		return
	}

	var req dto.CreateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.forumService.CreateComment(ctx.Request.Context(), userID, forumID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: comment})
}

// UpdateComment godoc
// @Summary Edit a comment
// @Description Only the comment's creator or an admin may update
// @Tags forums
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Param request body dto.UpdateCommentRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.CommentResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [put]
func (c *ForumController) UpdateComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid comment ID")
		return
	}

	var req dto.UpdateCommentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	comment, err := c.forumService.UpdateComment(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: comment})
}

// DeleteComment godoc
// @Summary Delete a comment
// @Description Only the comment's creator or an admin may delete
// @Tags forums
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Comment ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid comment ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Comment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /comments/{id} [delete]
func (c *ForumController) DeleteComment(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid comment ID")
		return
	}

	if err := c.forumService.DeleteComment(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Comment deleted successfully"},
	})
}
