package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
	"github.com/doruk/eduhub/internal/pkg/filestorage"
)

// ResourceService defines the interface for course file resource
// operations
type ResourceService interface {
	GetResources(ctx context.Context, actorID, courseID int64, filter *dto.ResourceFilterRequest) ([]dto.ResourceResponse, error)
	GetResourceByID(ctx context.Context, actorID, id int64) (*dto.ResourceResponse, error)
	UploadResource(ctx context.Context, actorID, courseID int64, req *dto.CreateResourceRequest, file *multipart.FileHeader) (*dto.ResourceResponse, error)
	UpdateResource(ctx context.Context, actorID, id int64, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error)
	DeleteResource(ctx context.Context, actorID, id int64) error
}

// resourceServiceImpl implements ResourceService
type resourceServiceImpl struct {
	resourceRepo *repositories.ResourceRepository
	courseRepo   *repositories.CourseRepository
	authzService *auth.AuthorizationService
	storage      filestorage.FileStorage
	logger       zerolog.Logger
}

// NewResourceService creates a new ResourceService
func NewResourceService(
	resourceRepo *repositories.ResourceRepository,
	courseRepo *repositories.CourseRepository,
	authzService *auth.AuthorizationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) ResourceService {
	return &resourceServiceImpl{
		resourceRepo: resourceRepo,
		courseRepo:   courseRepo,
		authzService: authzService,
		storage:      storage,
		logger:       logger,
	}
}

// GetResources lists a course's resources, optionally filtered by
// category.
func (s *resourceServiceImpl) GetResources(ctx context.Context, actorID, courseID int64, filter *dto.ResourceFilterRequest) ([]dto.ResourceResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	resources, err := s.resourceRepo.ListResourcesByCourse(ctx, courseID, filter.Category)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		responses = append(responses, dto.NewResourceResponse(r))
	}
	return responses, nil
}

// GetResourceByID retrieves a single resource.
func (s *resourceServiceImpl) GetResourceByID(ctx context.Context, actorID, id int64) (*dto.ResourceResponse, error) {
	resource, err := s.resourceRepo.GetResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: resource.CourseID}); err != nil {
		return nil, err
	}

	resp := dto.NewResourceResponse(resource)
	return &resp, nil
}

// UploadResource stores the uploaded file and records it against the
// course. Only the course's teachers and admins may upload.
func (s *resourceServiceImpl) UploadResource(ctx context.Context, actorID, courseID int64, req *dto.CreateResourceRequest, file *multipart.FileHeader) (*dto.ResourceResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}
	if file == nil {
		return nil, apperrors.ErrValidationFailed
	}

	fileURL, err := s.storage.SaveFileWithPath(file, "resources")
	if err != nil {
		return nil, err
	}

	resource := &models.Resource{
		CourseID:   courseID,
		FileURL:    fileURL,
		Category:   req.Category,
		Tags:       req.Tags,
		UploadedBy: actorID,
	}
	if _, err := s.resourceRepo.CreateResource(ctx, resource); err != nil {
		// The record failed, keep storage consistent.
		if delErr := s.storage.DeleteFile(fileURL); delErr != nil {
			s.logger.Warn().Err(delErr).Str("fileURL", fileURL).Msg("Failed to remove orphaned resource file")
		}
		return nil, err
	}

	s.logger.Info().
		Int64("resourceID", resource.ID).
		Int64("courseID", courseID).
		Int64("actorID", actorID).
		Str("category", resource.Category).
		Msg("Resource uploaded")

	resp := dto.NewResourceResponse(resource)
	return &resp, nil
}

// UpdateResource updates a resource's category and tags. The stored
// file itself is immutable.
func (s *resourceServiceImpl) UpdateResource(ctx context.Context, actorID, id int64, req *dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	resource, err := s.resourceRepo.GetResourceByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: resource.CourseID}); err != nil {
		return nil, err
	}

	resource.Category = req.Category
	resource.Tags = req.Tags
	if err := s.resourceRepo.UpdateResource(ctx, resource); err != nil {
		return nil, err
	}

	resp := dto.NewResourceResponse(resource)
	return &resp, nil
}

// DeleteResource removes the resource record and its stored file.
func (s *resourceServiceImpl) DeleteResource(ctx context.Context, actorID, id int64) error {
	resource, err := s.resourceRepo.GetResourceByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: resource.CourseID}); err != nil {
		return err
	}

	if err := s.resourceRepo.DeleteResource(ctx, id); err != nil {
		return err
	}
	if err := s.storage.DeleteFile(resource.FileURL); err != nil {
		s.logger.Warn().Err(err).Str("fileURL", resource.FileURL).Msg("Failed to delete resource file")
	}
	return nil
}
