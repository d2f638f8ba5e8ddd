package service

import (
	"context"
	"time"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

// UserService provides profile business logic.
type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// UpdateProfileInput is the payload for editing a profile. Nil or empty
// fields keep their current value.
type UpdateProfileInput struct {
	UserID    uint
	Username  string
	Bio       string
	Gender    string
	Birthday  *time.Time
	AvatarURL string
	IsPrivate *bool
}

// Profile is a user together with the viewer's relationship to them.
type Profile struct {
	models.User
	IsFollowing       bool `json:"is_following"`
	HasPendingRequest bool `json:"has_pending_request"`
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetProfile returns a user's profile with the viewer's relationship flags.
// The bare card stays readable on private accounts so a viewer can decide to
// request a follow, but the follower/following counts sit behind the account
// tier like the rest of the account's content.
func (s *UserService) GetProfile(ctx context.Context, viewerID, userID uint) (*Profile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	profile := &Profile{User: *user}

	if viewerID != 0 && viewerID != userID {
		edge, err := s.followRepo.GetEdge(ctx, viewerID, userID)
		if err != nil {
			return nil, err
		}
		if edge != nil {
			profile.IsFollowing = edge.Status == models.FollowStatusAccepted
			profile.HasPendingRequest = edge.Status == models.FollowStatusPending
		}
	}

	if err := CheckAccountVisibility(viewerID, userID, user.IsPrivate, profile.IsFollowing); err != nil {
		return profile, nil
	}

	followers, err := s.followRepo.CountAccepted(ctx, userID, models.DirectionFollowers)
	if err != nil {
		return nil, err
	}
	following, err := s.followRepo.CountAccepted(ctx, userID, models.DirectionFollowing)
	if err != nil {
		return nil, err
	}
	profile.FollowersCount = int(followers)
	profile.FollowingCount = int(following)

	return profile, nil
}

// UpdateProfile edits the caller's own profile, including the account
// privacy flag. Flipping an account public leaves pending requests pending;
// they still need an explicit accept.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != "" && in.Username != user.Username {
		if err := validation.ValidateUsername(in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		existing, err := s.userRepo.GetByUsername(ctx, in.Username)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, models.NewValidationError("Username is already taken")
		}
		user.Username = in.Username
	}
	if in.Bio != "" {
		bio := validation.StripHTML(in.Bio)
		if err := validation.ValidateBio(bio); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Bio = bio
	}
	if in.Gender != "" {
		if err := validation.ValidateGender(in.Gender); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Gender = in.Gender
	}
	if in.Birthday != nil {
		if in.Birthday.After(time.Now()) {
			return nil, models.NewValidationError("Birthday cannot be in the future")
		}
		user.Birthday = in.Birthday
	}
	if in.AvatarURL != "" {
		user.AvatarURL = in.AvatarURL
	}
	if in.IsPrivate != nil {
		user.IsPrivate = *in.IsPrivate
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
