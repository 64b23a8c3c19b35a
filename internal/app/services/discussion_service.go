package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
)

// DiscussionService defines the interface for discussion thread, post
// and reply operations
type DiscussionService interface {
	GetThreads(ctx context.Context, actorID, courseID int64) ([]dto.ThreadResponse, error)
	GetThreadByID(ctx context.Context, actorID, id int64) (*dto.ThreadResponse, error)
	CreateThread(ctx context.Context, actorID, courseID int64, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error)
	UpdateThread(ctx context.Context, actorID, id int64, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error)
	DeleteThread(ctx context.Context, actorID, id int64) error
	GetPosts(ctx context.Context, actorID, threadID int64) ([]dto.PostResponse, error)
	CreatePost(ctx context.Context, actorID, threadID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error)
	UpdatePost(ctx context.Context, actorID, id int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error)
	DeletePost(ctx context.Context, actorID, id int64) error
	GetReplies(ctx context.Context, actorID, postID int64) ([]dto.ReplyResponse, error)
	CreateReply(ctx context.Context, actorID, postID int64, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error)
	UpdateReply(ctx context.Context, actorID, id int64, req *dto.UpdateReplyRequest) (*dto.ReplyResponse, error)
	DeleteReply(ctx context.Context, actorID, id int64) error
}

// discussionServiceImpl implements DiscussionService
type discussionServiceImpl struct {
	discussionRepo *repositories.DiscussionRepository
	courseRepo     *repositories.CourseRepository
	authzService   *auth.AuthorizationService
	logger         zerolog.Logger
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(
	discussionRepo *repositories.DiscussionRepository,
	courseRepo *repositories.CourseRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) DiscussionService {
	return &discussionServiceImpl{
		discussionRepo: discussionRepo,
		courseRepo:     courseRepo,
		authzService:   authzService,
		logger:         logger,
	}
}

// threadCourseID resolves the course a post's thread belongs to.
func (s *discussionServiceImpl) threadCourseID(ctx context.Context, threadID int64) (int64, error) {
	thread, err := s.discussionRepo.GetThreadByID(ctx, threadID)
	if err != nil {
		return 0, err
	}
	return thread.CourseID, nil
}

// postCourseID resolves the course a reply's post belongs to.
func (s *discussionServiceImpl) postCourseID(ctx context.Context, postID int64) (int64, error) {
	post, err := s.discussionRepo.GetPostByID(ctx, postID)
	if err != nil {
		return 0, err
	}
	return s.threadCourseID(ctx, post.ThreadID)
}

// GetThreads lists a course's discussion threads.
func (s *discussionServiceImpl) GetThreads(ctx context.Context, actorID, courseID int64) ([]dto.ThreadResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	threads, err := s.discussionRepo.ListThreadsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ThreadResponse, 0, len(threads))
	for _, t := range threads {
		responses = append(responses, dto.NewThreadResponse(t))
	}
	return responses, nil
}

// GetThreadByID retrieves a single thread.
func (s *discussionServiceImpl) GetThreadByID(ctx context.Context, actorID, id int64) (*dto.ThreadResponse, error) {
	thread, err := s.discussionRepo.GetThreadByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: thread.CourseID}); err != nil {
		return nil, err
	}

	resp := dto.NewThreadResponse(thread)
	return &resp, nil
}

// CreateThread starts a discussion thread. Course members create their
// own threads, so creation is self-scoped.
func (s *discussionServiceImpl) CreateThread(ctx context.Context, actorID, courseID int64, req *dto.CreateThreadRequest) (*dto.ThreadResponse, error) {
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

	thread := &models.DiscussionThread{
		CourseID:  courseID,
		Title:     req.Title,
		CreatedBy: actorID,
	}
	if _, err := s.discussionRepo.CreateThread(ctx, thread); err != nil {
		return nil, err
	}

	resp := dto.NewThreadResponse(thread)
	return &resp, nil
}

// UpdateThread renames a thread. Only the thread's creator or an admin
// may update.
func (s *discussionServiceImpl) UpdateThread(ctx context.Context, actorID, id int64, req *dto.UpdateThreadRequest) (*dto.ThreadResponse, error) {
	thread, err := s.discussionRepo.GetThreadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:      thread.CourseID,
		OwnerID:       thread.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, res); err != nil {
		return nil, err
	}

	thread.Title = req.Title
	if err := s.discussionRepo.UpdateThread(ctx, thread); err != nil {
		return nil, err
	}

	resp := dto.NewThreadResponse(thread)
	return &resp, nil
}

// DeleteThread deletes a thread with its posts and replies.
func (s *discussionServiceImpl) DeleteThread(ctx context.Context, actorID, id int64) error {
	thread, err := s.discussionRepo.GetThreadByID(ctx, id)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:      thread.CourseID,
		OwnerID:       thread.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, res); err != nil {
		return err
	}
	return s.discussionRepo.DeleteThread(ctx, id)
}

// GetPosts lists a thread's posts in creation order.
func (s *discussionServiceImpl) GetPosts(ctx context.Context, actorID, threadID int64) ([]dto.PostResponse, error) {
	courseID, err := s.threadCourseID(ctx, threadID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	posts, err := s.discussionRepo.ListPostsByThread(ctx, threadID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, dto.NewPostResponse(p))
	}
	return responses, nil
}

// CreatePost adds a post to a thread.
func (s *discussionServiceImpl) CreatePost(ctx context.Context, actorID, threadID int64, req *dto.CreatePostRequest) (*dto.PostResponse, error) {
	courseID, err := s.threadCourseID(ctx, threadID)
	if err != nil {
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

	post := &models.DiscussionPost{
		ThreadID:  threadID,
		Content:   req.Content,
		CreatedBy: actorID,
	}
	if _, err := s.discussionRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	resp := dto.NewPostResponse(post)
	return &resp, nil
}

// UpdatePost edits a post's content. Only the post's creator or an
// admin may update.
func (s *discussionServiceImpl) UpdatePost(ctx context.Context, actorID, id int64, req *dto.UpdatePostRequest) (*dto.PostResponse, error) {
	post, err := s.discussionRepo.GetPostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courseID, err := s.threadCourseID(ctx, post.ThreadID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:      courseID,
		OwnerID:       post.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, res); err != nil {
		return nil, err
	}

	post.Content = req.Content
	if err := s.discussionRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}

	resp := dto.NewPostResponse(post)
	return &resp, nil
}

// DeletePost deletes a post with its replies.
func (s *discussionServiceImpl) DeletePost(ctx context.Context, actorID, id int64) error {
	post, err := s.discussionRepo.GetPostByID(ctx, id)
	if err != nil {
		return err
	}
	courseID, err := s.threadCourseID(ctx, post.ThreadID)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:      courseID,
		OwnerID:       post.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, res); err != nil {
		return err
	}
	return s.discussionRepo.DeletePost(ctx, id)
}

// GetReplies lists a post's replies in creation order.
func (s *discussionServiceImpl) GetReplies(ctx context.Context, actorID, postID int64) ([]dto.ReplyResponse, error) {
	courseID, err := s.postCourseID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	replies, err := s.discussionRepo.ListRepliesByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ReplyResponse, 0, len(replies))
	for _, r := range replies {
		responses = append(responses, dto.NewReplyResponse(r))
	}
	return responses, nil
}

// CreateReply adds a reply to a post.
func (s *discussionServiceImpl) CreateReply(ctx context.Context, actorID, postID int64, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error) {
	courseID, err := s.postCourseID(ctx, postID)
	if err != nil {
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

	reply := &models.DiscussionReply{
		PostID:    postID,
		Content:   req.Content,
		CreatedBy: actorID,
	}
	if _, err := s.discussionRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	resp := dto.NewReplyResponse(reply)
	return &resp, nil
}

// UpdateReply edits a reply's content. Only the reply's creator or an
// admin may update.
func (s *discussionServiceImpl) UpdateReply(ctx context.Context, actorID, id int64, req *dto.UpdateReplyRequest) (*dto.ReplyResponse, error) {
	reply, err := s.discussionRepo.GetReplyByID(ctx, id)
	if err != nil {
		return nil, err
	}
	courseID, err := s.postCourseID(ctx, reply.PostID)
	if err != nil {
		return nil, err
	}

	res := auth.Resource{
		CourseID:      courseID,
		OwnerID:       reply.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, res); err != nil {
		return nil, err
	}

	reply.Content = req.Content
	if err := s.discussionRepo.UpdateReply(ctx, reply); err != nil {
		return nil, err
	}

	resp := dto.NewReplyResponse(reply)
	return &resp, nil
}

// DeleteReply removes a reply.
func (s *discussionServiceImpl) DeleteReply(ctx context.Context, actorID, id int64) error {
	reply, err := s.discussionRepo.GetReplyByID(ctx, id)
	if err != nil {
		return err
	}
	courseID, err := s.postCourseID(ctx, reply.PostID)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:      courseID,
		OwnerID:       reply.CreatedBy,
		OwnerEditable: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, res); err != nil {
		return err
	}
	return s.discussionRepo.DeleteReply(ctx, id)
}
