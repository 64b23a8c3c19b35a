package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
)

// ForumService defines the interface for forum post and comment
// operations
type ForumService interface {
	GetForums(ctx context.Context, actorID, courseID int64) ([]dto.ForumResponse, error)
	GetForumByID(ctx context.Context, actorID, id int64) (*dto.ForumResponse, error)
	CreateForum(ctx context.Context, actorID, courseID int64, req *dto.CreateForumRequest) (*dto.ForumResponse, error)
	UpdateForum(ctx context.Context, actorID, id int64, req *dto.UpdateForumRequest) (*dto.ForumResponse, error)
	DeleteForum(ctx context.Context, actorID, id int64) error
	CreateComment(ctx context.Context, actorID, forumID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error)
	UpdateComment(ctx context.Context, actorID, id int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	DeleteComment(ctx context.Context, actorID, id int64) error
}

// forumServiceImpl implements ForumService
type forumServiceImpl struct {
	forumRepo    *repositories.ForumRepository
	courseRepo   *repositories.CourseRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewForumService creates a new ForumService
func NewForumService(
	forumRepo *repositories.ForumRepository,
	courseRepo *repositories.CourseRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) ForumService {
	return &forumServiceImpl{
		forumRepo:    forumRepo,
		courseRepo:   courseRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// GetForums lists a course's forum posts.
func (s *forumServiceImpl) GetForums(ctx context.Context, actorID, courseID int64) ([]dto.ForumResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	forums, err := s.forumRepo.ListForumsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ForumResponse, 0, len(forums))
	for _, f := range forums {
		responses = append(responses, dto.NewForumResponse(f))
	}
	return responses, nil
}

// GetForumByID retrieves a forum post together with its comments.
func (s *forumServiceImpl) GetForumByID(ctx context.Context, actorID, id int64) (*dto.ForumResponse, error) {
	forum, err := s.forumRepo.GetForumByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: forum.CourseID}); err != nil {
		return nil, err
	}

	forum.Comments, err = s.forumRepo.ListCommentsByForum(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewForumResponse(forum)
	return &resp, nil
}

// CreateForum publishes a forum post. Course members post for
// themselves, so creation is self-scoped.
func (s *forumServiceImpl) CreateForum(ctx context.Context, actorID, courseID int64, req *dto.CreateForumRequest) (*dto.ForumResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:       courseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return nil, err
	}

	forum := &models.Forum{
		CourseID:  courseID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: actorID,
	}
	if _, err := s.forumRepo.CreateForum(ctx, forum); err != nil {
		return nil, err
	}

	resp := dto.NewForumResponse(forum)
	return &resp, nil
}

// UpdateForum edits a forum post. Only the post's creator or an admin
// may update.
func (s *forumServiceImpl) UpdateForum(ctx context.Context, actorID, id int64, req *dto.UpdateForumRequest) (*dto.ForumResponse, error) {
	forum, err := s.forumRepo.GetForumByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:      forum.CourseID,
		OwnerID:       forum.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, res); err != nil {
		return nil, err
	}

	forum.Title = req.Title
	forum.Content = req.Content
	if err := s.forumRepo.UpdateForum(ctx, forum); err != nil {
		return nil, err
	}

	resp := dto.NewForumResponse(forum)
	return &resp, nil
}

// DeleteForum deletes a forum post with its comments.
func (s *forumServiceImpl) DeleteForum(ctx context.Context, actorID, id int64) error {
	forum, err := s.forumRepo.GetForumByID(ctx, id)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:      forum.CourseID,
		OwnerID:       forum.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, res); err != nil {
		return err
	}
	return s.forumRepo.DeleteForum(ctx, id)
}

// CreateComment adds a comment to a forum post.
func (s *forumServiceImpl) CreateComment(ctx context.Context, actorID, forumID int64, req *dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	forum, err := s.forumRepo.GetForumByID(ctx, forumID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:       forum.CourseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ForumID:   forumID,
		Content:   req.Content,
		CreatedBy: actorID,
	}
	if _, err := s.forumRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

// UpdateComment edits a comment. Only the comment's creator or an admin
// may update.
func (s *forumServiceImpl) UpdateComment(ctx context.Context, actorID, id int64, req *dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.forumRepo.GetCommentByID(ctx, id)
	if err != nil {
		return nil, err
	}
	forum, err := s.forumRepo.GetForumByID(ctx, comment.ForumID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:      forum.CourseID,
		OwnerID:       comment.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, res); err != nil {
		return nil, err
	}

	comment.Content = req.Content
	if err := s.forumRepo.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}

	resp := dto.NewCommentResponse(comment)
	return &resp, nil
}

// DeleteComment removes a comment.
func (s *forumServiceImpl) DeleteComment(ctx context.Context, actorID, id int64) error {
	comment, err := s.forumRepo.GetCommentByID(ctx, id)
	if err != nil {
		return err
	}
	forum, err := s.forumRepo.GetForumByID(ctx, comment.ForumID)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:      forum.CourseID,
		OwnerID:       comment.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, res); err != nil {
		return err
	}
	return s.forumRepo.DeleteComment(ctx, id)
}
