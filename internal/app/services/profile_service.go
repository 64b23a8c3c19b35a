package services

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/app/models/dto"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// ProfileService defines the interface for social profile, follow and
// friendship operations
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actorID, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	Follow(ctx context.Context, actorID, targetID int64) error
	Unfollow(ctx context.Context, actorID, targetID int64) error
	GetFollowers(ctx context.Context, userID int64) ([]dto.UserResponse, error)
	GetFollowing(ctx context.Context, userID int64) ([]dto.UserResponse, error)
	SendFriendRequest(ctx context.Context, actorID, targetID int64) (*dto.FriendRequestResponse, error)
	AcceptFriendRequest(ctx context.Context, actorID, requestID int64) error
	DeclineFriendRequest(ctx context.Context, actorID, requestID int64) error
	ListFriendRequests(ctx context.Context, actorID int64) ([]dto.FriendRequestResponse, error)
	GetConnections(ctx context.Context, userID int64) ([]dto.UserResponse, error)
}

// profileStore is the slice of the profile repository the social
// operations use. ProfileRepository satisfies it.
type profileStore interface {
	CreateProfile(ctx context.Context, p *models.Profile) error
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
	CreateFollow(ctx context.Context, followerID, followedID int64) error
	DeleteFollow(ctx context.Context, followerID, followedID int64) error
	GetFollowers(ctx context.Context, userID int64) ([]*models.User, error)
	GetFollowing(ctx context.Context, userID int64) ([]*models.User, error)
	CreateFriendRequest(ctx context.Context, fr *models.FriendRequest) (int64, error)
	GetFriendRequestByID(ctx context.Context, id int64) (*models.FriendRequest, error)
	ListPendingFriendRequests(ctx context.Context, toUserID int64) ([]*models.FriendRequest, error)
	MarkFriendRequestAccepted(ctx context.Context, tx pgx.Tx, id int64) error
	DeleteFriendRequest(ctx context.Context, id int64) error
	ConnectionExists(ctx context.Context, user1ID, user2ID int64) (bool, error)
	CreateConnectionTx(ctx context.Context, tx pgx.Tx, user1ID, user2ID int64) error
	GetConnections(ctx context.Context, userID int64) ([]*models.User, error)
}

// userGetter looks up accounts for profile and social operations.
// UserRepository satisfies it.
type userGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profileRepo profileStore
	userRepo    userGetter
	database    transactor
	logger      zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(
	profileRepo profileStore,
	userRepo userGetter,
	database transactor,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		profileRepo: profileRepo,
		userRepo:    userRepo,
		database:    database,
		logger:      logger,
	}
}

// GetProfile retrieves a user's profile with its account fields.
// Profiles are visible to every authenticated user.
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, err
		}
		// Accounts predating profile auto-creation get an empty one.
		profile = &models.Profile{UserID: userID}
	}
	profile.User = user

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

// UpdateProfile edits a profile's bio, interests and skills. Only the
// profile's owner or an admin may update.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actorID, userID int64, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if actorID != userID {
		actor, err := s.userRepo.GetUserByID(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if actor.Role != models.RoleAdmin {
			return nil, apperrors.ErrPermissionDenied
		}
	}

	profile, err := s.profileRepo.GetProfileByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrProfileNotFound) {
			return nil, err
		}
		if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
			return nil, err
		}
		profile = &models.Profile{UserID: userID}
		if err := s.profileRepo.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
	}

	profile.Bio = req.Bio
	profile.Interests = req.Interests
	profile.Skills = req.Skills
	if err := s.profileRepo.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	resp := dto.NewProfileResponse(profile)
	return &resp, nil
}

// Follow adds a directed follow edge from the actor to the target.
func (s *profileServiceImpl) Follow(ctx context.Context, actorID, targetID int64) error {
	if actorID == targetID {
		return apperrors.ErrValidationFailed
	}
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return err
	}
	return s.profileRepo.CreateFollow(ctx, actorID, targetID)
}

// Unfollow removes the actor's follow edge to the target.
func (s *profileServiceImpl) Unfollow(ctx context.Context, actorID, targetID int64) error {
	return s.profileRepo.DeleteFollow(ctx, actorID, targetID)
}

// GetFollowers lists the users following the given user.
func (s *profileServiceImpl) GetFollowers(ctx context.Context, userID int64) ([]dto.UserResponse, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	followers, err := s.profileRepo.GetFollowers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(followers), nil
}

// GetFollowing lists the users the given user follows.
func (s *profileServiceImpl) GetFollowing(ctx context.Context, userID int64) ([]dto.UserResponse, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	following, err := s.profileRepo.GetFollowing(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(following), nil
}

// SendFriendRequest creates a pending friendship offer from the actor
// to the target. A duplicate offer fails with ErrFriendRequestExists,
// and an offer to an established friend with ErrAlreadyConnected.
func (s *profileServiceImpl) SendFriendRequest(ctx context.Context, actorID, targetID int64) (*dto.FriendRequestResponse, error) {
	if actorID == targetID {
		return nil, apperrors.ErrValidationFailed
	}
	if _, err := s.userRepo.GetUserByID(ctx, targetID); err != nil {
		return nil, err
	}

	connected, err := s.profileRepo.ConnectionExists(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if connected {
		return nil, apperrors.ErrAlreadyConnected
	}

	request := &models.FriendRequest{
		FromUserID: actorID,
		ToUserID:   targetID,
	}
	if _, err := s.profileRepo.CreateFriendRequest(ctx, request); err != nil {
		return nil, err
	}

	resp := dto.NewFriendRequestResponse(request)
	return &resp, nil
}

// AcceptFriendRequest marks the request accepted and establishes the
// connection in one transaction. Only the recipient may accept.
func (s *profileServiceImpl) AcceptFriendRequest(ctx context.Context, actorID, requestID int64) error {
	request, err := s.profileRepo.GetFriendRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ToUserID != actorID {
		return apperrors.ErrPermissionDenied
	}
	if request.Accepted {
		return apperrors.ErrConflict
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.profileRepo.MarkFriendRequestAccepted(ctx, tx, requestID); err != nil {
			return err
		}
		return s.profileRepo.CreateConnectionTx(ctx, tx, request.FromUserID, request.ToUserID)
	})
	if err != nil {
		return err
	}

	s.logger.Info().
		Int64("requestID", requestID).
		Int64("fromUserID", request.FromUserID).
		Int64("toUserID", request.ToUserID).
		Msg("Friend request accepted")
	return nil
}

// DeclineFriendRequest removes a pending request. The recipient
// declines it, or the sender withdraws it.
func (s *profileServiceImpl) DeclineFriendRequest(ctx context.Context, actorID, requestID int64) error {
	request, err := s.profileRepo.GetFriendRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if request.ToUserID != actorID && request.FromUserID != actorID {
		return apperrors.ErrPermissionDenied
	}
	if request.Accepted {
		return apperrors.ErrConflict
	}
	return s.profileRepo.DeleteFriendRequest(ctx, requestID)
}

// ListFriendRequests lists the pending requests addressed to the actor.
func (s *profileServiceImpl) ListFriendRequests(ctx context.Context, actorID int64) ([]dto.FriendRequestResponse, error) {
	requests, err := s.profileRepo.ListPendingFriendRequests(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return dto.NewFriendRequestResponses(requests), nil
}

// GetConnections lists the user's established friendships.
func (s *profileServiceImpl) GetConnections(ctx context.Context, userID int64) ([]dto.UserResponse, error) {
	if _, err := s.userRepo.GetUserByID(ctx, userID); err != nil {
		return nil, err
	}
	connections, err := s.profileRepo.GetConnections(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.NewUserResponses(connections), nil
}
