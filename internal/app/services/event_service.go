package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/auth"
	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/app/repositories"
)

// EventService defines the interface for course event operations
type EventService interface {
	GetEvents(ctx context.Context, actorID, courseID int64) ([]dto.EventResponse, error)
	GetEventByID(ctx context.Context, actorID, id int64) (*dto.EventResponse, error)
	CreateEvent(ctx context.Context, actorID, courseID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error)
	UpdateEvent(ctx context.Context, actorID, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error)
	DeleteEvent(ctx context.Context, actorID, id int64) error
	Attend(ctx context.Context, actorID, eventID int64) error
	Unattend(ctx context.Context, actorID, eventID int64) error
	GetAttendees(ctx context.Context, actorID, eventID int64) ([]dto.UserResponse, error)
}

// eventServiceImpl implements EventService
type eventServiceImpl struct {
	eventRepo    *repositories.EventRepository
	courseRepo   *repositories.CourseRepository
	authzService *auth.AuthorizationService
	logger       zerolog.Logger
}

// NewEventService creates a new EventService
func NewEventService(
	eventRepo *repositories.EventRepository,
	courseRepo *repositories.CourseRepository,
	authzService *auth.AuthorizationService,
	logger zerolog.Logger,
) EventService {
	return &eventServiceImpl{
		eventRepo:    eventRepo,
		courseRepo:   courseRepo,
		authzService: authzService,
		logger:       logger,
	}
}

// GetEvents lists a course's events ordered by date.
func (s *eventServiceImpl) GetEvents(ctx context.Context, actorID, courseID int64) ([]dto.EventResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.ListEventsByCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		responses = append(responses, dto.NewEventResponse(e))
	}
	return responses, nil
}

// GetEventByID retrieves an event with its attendee list.
func (s *eventServiceImpl) GetEventByID(ctx context.Context, actorID, id int64) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionRetrieve, auth.Resource{CourseID: event.CourseID}); err != nil {
		return nil, err
	}

	event.Students, err = s.eventRepo.GetAttendees(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// CreateEvent creates an event in a course. Only the course's teachers
// and admins may create.
func (s *eventServiceImpl) CreateEvent(ctx context.Context, actorID, courseID int64, req *dto.CreateEventRequest) (*dto.EventResponse, error) {
	if _, err := s.courseRepo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, auth.Resource{CourseID: courseID}); err != nil {
		return nil, err
	}

	event := &models.Event{
		CourseID:    courseID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		CreatedBy:   actorID,
	}
	if _, err := s.eventRepo.CreateEvent(ctx, event); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("eventID", event.ID).
		Int64("courseID", courseID).
		Int64("actorID", actorID).
		Msg("Event created")

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// UpdateEvent updates an event's title, description and date.
func (s *eventServiceImpl) UpdateEvent(ctx context.Context, actorID, id int64, req *dto.UpdateEventRequest) (*dto.EventResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionUpdate, auth.Resource{CourseID: event.CourseID}); err != nil {
		return nil, err
	}

	event.Title = req.Title
	event.Description = req.Description
	event.Date = req.Date
	if err := s.eventRepo.UpdateEvent(ctx, event); err != nil {
		return nil, err
	}

	resp := dto.NewEventResponse(event)
	return &resp, nil
}

// DeleteEvent deletes an event with its attendance records.
func (s *eventServiceImpl) DeleteEvent(ctx context.Context, actorID, id int64) error {
	event, err := s.eventRepo.GetEventByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionDestroy, auth.Resource{CourseID: event.CourseID}); err != nil {
		return err
	}
	return s.eventRepo.DeleteEvent(ctx, id)
}

// Attend marks the actor as attending the event. Attendance is
// self-scoped and idempotent.
func (s *eventServiceImpl) Attend(ctx context.Context, actorID, eventID int64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:       event.CourseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return err
	}
	return s.eventRepo.AddAttendee(ctx, eventID, actorID)
}

// Unattend removes the actor from the event's attendee set.
func (s *eventServiceImpl) Unattend(ctx context.Context, actorID, eventID int64) error {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return err
	}

	res := auth.Resource{
		CourseID:       event.CourseID,
		OwnerID:        actorID,
		SelfSubmission: true,
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionCreate, res); err != nil {
		return err
	}
	return s.eventRepo.RemoveAttendee(ctx, eventID, actorID)
}

// GetAttendees lists the students attending an event.
func (s *eventServiceImpl) GetAttendees(ctx context.Context, actorID, eventID int64) ([]dto.UserResponse, error) {
	event, err := s.eventRepo.GetEventByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if err := s.authzService.Authorize(ctx, actorID, auth.ActionList, auth.Resource{CourseID: event.CourseID}); err != nil {
		return nil, err
	}

	attendees, err := s.eventRepo.GetAttendees(ctx, eventID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(attendees), nil
}
