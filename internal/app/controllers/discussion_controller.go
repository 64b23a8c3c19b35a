package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/services"
	"github.com/doruk/eduhub/internal/middleware"
)

// DiscussionController handles discussion thread, post and reply
// operations
type DiscussionController struct {
	discussionService services.DiscussionService
	logger            zerolog.Logger
}

// NewDiscussionController creates a new DiscussionController
func NewDiscussionController(discussionService services.DiscussionService, logger zerolog.Logger) *DiscussionController {
	return &DiscussionController{
		discussionService: discussionService,
		logger:            logger,
	}
}

// GetThreads godoc
// @Summary List a course's discussion threads
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ThreadResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/threads [get]
func (c *DiscussionController) GetThreads(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	threads, err := c.discussionService.GetThreads(ctx.Request.Context(), userID, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: threads})
}

// CreateThread godoc
// @Summary Start a discussion thread
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Course ID"
// @Param request body dto.CreateThreadRequest true "Thread data"
// @Success 201 {object} dto.APIResponse{data=dto.ThreadResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id}/threads [post]
func (c *DiscussionController) CreateThread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	courseID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid course ID")
		return
	}

	var req dto.CreateThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	thread, err := c.discussionService.CreateThread(ctx.Request.Context(), userID, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: thread})
}

// GetThreadByID godoc
// @Summary Get a discussion thread
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Thread ID"
// @Success 200 {object} dto.APIResponse{data=dto.ThreadResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid thread ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /threads/{id} [get]
func (c *DiscussionController) GetThreadByID(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid thread ID")
		return
	}

	thread, err := c.discussionService.GetThreadByID(ctx.Request.Context(), userID, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: thread})
}

// UpdateThread godoc
// @Summary Rename a discussion thread
// @Description Only the thread's creator or an admin may update
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Thread ID"
// @Param request body dto.UpdateThreadRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ThreadResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /threads/{id} [put]
func (c *DiscussionController) UpdateThread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid thread ID")
		return
	}

	var req dto.UpdateThreadRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	thread, err := c.discussionService.UpdateThread(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: thread})
}

// DeleteThread godoc
// @Summary Delete a discussion thread
// @Description Only the thread's creator or an admin may delete
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Thread ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid thread ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /threads/{id} [delete]
func (c *DiscussionController) DeleteThread(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid thread ID")
		return
	}

	if err := c.discussionService.DeleteThread(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Thread deleted successfully"},
	})
}

// GetPosts godoc
// @Summary List a thread's posts
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Thread ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid thread ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /threads/{id}/posts [get]
func (c *DiscussionController) GetPosts(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	threadID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid thread ID")
		return
	}

	posts, err := c.discussionService.GetPosts(ctx.Request.Context(), userID, threadID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: posts})
}

// CreatePost godoc
// @Summary Post in a discussion thread
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Thread ID"
// @Param request body dto.CreatePostRequest true "Post data"
// @Success 201 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the course"
// @Failure 404 {object} dto.ErrorResponse "Thread not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /threads/{id}/posts [post]
func (c *DiscussionController) CreatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	threadID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid thread ID")
		return
	}

	var req dto.CreatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.discussionService.CreatePost(ctx.Request.Context(), userID, threadID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: post})
}

// UpdatePost godoc
// @Summary Edit a discussion post
// @Description Only the post's creator or an admin may update
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param request body dto.UpdatePostRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.PostResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [put]
func (c *DiscussionController) UpdatePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid post ID")
		return
	}

	var req dto.UpdatePostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	post, err := c.discussionService.UpdatePost(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: post})
}

// DeletePost godoc
// @Summary Delete a discussion post
// @Description Only the post's creator or an admin may delete
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id} [delete]
func (c *DiscussionController) DeletePost(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid post ID")
		return
	}

	if err := c.discussionService.DeletePost(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Post deleted successfully"},
	})
}

// GetReplies godoc
// @Summary List a post's replies
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.ReplyResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid post ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Permission denied"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/replies [get]
func (c *DiscussionController) GetReplies(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid post ID")
		return
	}

	replies, err := c.discussionService.GetReplies(ctx.Request.Context(), userID, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: replies})
}

// CreateReply godoc
// @Summary Reply to a discussion post
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Post ID"
// @Param request body dto.CreateReplyRequest true "Reply data"
// @Success 201 {object} dto.APIResponse{data=dto.ReplyResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not a member of the course"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /posts/{id}/replies [post]
func (c *DiscussionController) CreateReply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	postID, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid post ID")
		return
	}

	var req dto.CreateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reply, err := c.discussionService.CreateReply(ctx.Request.Context(), userID, postID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: reply})
}

// UpdateReply godoc
// @Summary Edit a reply
// @Description Only the reply's creator or an admin may update
// @Tags discussions
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Reply ID"
// @Param request body dto.UpdateReplyRequest true "Update data"
// @Success 200 {object} dto.APIResponse{data=dto.ReplyResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /replies/{id} [put]
func (c *DiscussionController) UpdateReply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid reply ID")
		return
	}

	var req dto.UpdateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.HandleValidationError(err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	reply, err := c.discussionService.UpdateReply(ctx.Request.Context(), userID, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: reply})
}

// DeleteReply godoc
// @Summary Delete a reply
// @Description Only the reply's creator or an admin may delete
// @Tags discussions
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "Reply ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid reply ID"
// @Failure 401 {object} dto.ErrorResponse "Authentication required"
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Reply not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /replies/{id} [delete]
func (c *DiscussionController) DeleteReply(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	id, err := parseIDParam(ctx, "id")
	if err != nil {
		badRequest(ctx, "Invalid reply ID")
		return
	}

	if err := c.discussionService.DeleteReply(ctx.Request.Context(), userID, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data: dto.SuccessResponse{Message: "Reply deleted successfully"},
	})
}
