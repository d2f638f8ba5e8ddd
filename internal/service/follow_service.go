package service

import (
	"context"
	"errors"

	"ripple/internal/models"
	"ripple/internal/observability"
	"ripple/internal/repository"
)

// FollowService implements the follow-relationship state machine on top of
// the follow graph. Edges move pending -> accepted or get deleted; there is
// no rejected state, so a rejected or removed edge can always be re-created.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
}

// NewFollowService returns a new FollowService.
func NewFollowService(followRepo repository.FollowRepository, userRepo repository.UserRepository) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
	}
}

// Follow creates an edge from the actor to the target. The target's privacy
// flag decides the initial status: private accounts get a pending request,
// public accounts an immediately accepted edge.
func (s *FollowService) Follow(ctx context.Context, actorID, targetID uint) (*models.Follow, error) {
	if actorID == targetID {
		return nil, models.NewSelfFollowError()
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	existing, err := s.followRepo.GetEdge(ctx, actorID, targetID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, edgeExistsError(existing)
	}

	status := models.FollowStatusAccepted
	if target.IsPrivate {
		status = models.FollowStatusPending
	}

	follow := &models.Follow{
		FollowerID:  actorID,
		FollowingID: targetID,
		Status:      status,
	}
	if err := s.followRepo.Create(ctx, follow); err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeDuplicateEdge {
			// Lost a race against a concurrent follow; report the state
			// that won instead of the raw conflict.
			winner, readErr := s.followRepo.GetEdge(ctx, actorID, targetID)
			if readErr == nil && winner != nil {
				return nil, edgeExistsError(winner)
			}
		}
		return nil, err
	}

	observability.FollowTransitions.WithLabelValues("follow").Inc()
	return s.followRepo.GetByID(ctx, follow.ID)
}

func edgeExistsError(edge *models.Follow) error {
	if edge.Status == models.FollowStatusAccepted {
		return models.NewAlreadyFollowingError()
	}
	return models.NewAlreadyPendingError()
}

// Unfollow removes the actor's edge to the target whatever its status, so it
// also cancels a pending request. It is idempotent: unfollowing a user you
// do not follow succeeds silently.
func (s *FollowService) Unfollow(ctx context.Context, actorID, targetID uint) error {
	deleted, err := s.followRepo.DeleteEdge(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if deleted {
		observability.FollowTransitions.WithLabelValues("unfollow").Inc()
	}
	return nil
}

// AcceptRequest accepts the pending request with the given edge id. Only the
// request's target may accept, and a request that is missing, already
// accepted, or addressed to someone else is reported identically so edge ids
// leak nothing. With followBack set, an independent reverse edge is created
// under the usual privacy rule; an already existing reverse edge is left
// as-is.
func (s *FollowService) AcceptRequest(ctx context.Context, userID, requestID uint, followBack bool) (*models.Follow, error) {
	edge, err := s.followRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if edge.FollowingID != userID || edge.Status != models.FollowStatusPending {
		return nil, models.NewRequestNotFoundError()
	}

	if err := s.followRepo.UpdateStatus(ctx, requestID, models.FollowStatusAccepted); err != nil {
		return nil, err
	}
	observability.FollowTransitions.WithLabelValues("accept").Inc()

	if followBack {
		if _, err := s.Follow(ctx, userID, edge.FollowerID); err != nil {
			var appErr *models.AppError
			if !errors.As(err, &appErr) ||
				(appErr.Code != models.CodeAlreadyFollow && appErr.Code != models.CodeAlreadyPend) {
				return nil, err
			}
		} else {
			observability.FollowTransitions.WithLabelValues("follow_back").Inc()
		}
	}

	return s.followRepo.GetByID(ctx, requestID)
}

// RejectRequest deletes the pending request with the given edge id. Deletion
// rather than a tombstone keeps the follower free to ask again.
func (s *FollowService) RejectRequest(ctx context.Context, userID, requestID uint) error {
	edge, err := s.followRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if edge.FollowingID != userID || edge.Status != models.FollowStatusPending {
		return models.NewRequestNotFoundError()
	}

	if err := s.followRepo.DeleteByID(ctx, requestID); err != nil {
		return err
	}
	observability.FollowTransitions.WithLabelValues("reject").Inc()
	return nil
}

// IsFollowing reports whether follower has an accepted edge to following.
// A pending request does not count.
func (s *FollowService) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	edge, err := s.followRepo.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == models.FollowStatusAccepted, nil
}

// HasPendingRequest reports whether follower has a pending request to following.
func (s *FollowService) HasPendingRequest(ctx context.Context, followerID, followingID uint) (bool, error) {
	edge, err := s.followRepo.GetEdge(ctx, followerID, followingID)
	if err != nil {
		return false, err
	}
	return edge != nil && edge.Status == models.FollowStatusPending, nil
}

// PendingRequestsFor returns the pending requests addressed to the user,
// oldest first, with the requesting users preloaded.
func (s *FollowService) PendingRequestsFor(ctx context.Context, userID uint) ([]models.Follow, error) {
	return s.followRepo.GetPendingRequests(ctx, userID)
}

// Followers lists the accepted followers of a user. The list sits behind the
// account-privacy tier: on a private account only the owner and accepted
// followers may read it.
func (s *FollowService) Followers(ctx context.Context, viewerID, ownerID uint, limit, offset int) ([]models.User, error) {
	if err := s.checkListAccess(ctx, viewerID, ownerID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowers(ctx, ownerID, limit, offset)
}

// Following lists the users a user follows with accepted edges, behind the
// same account-privacy tier as Followers.
func (s *FollowService) Following(ctx context.Context, viewerID, ownerID uint, limit, offset int) ([]models.User, error) {
	if err := s.checkListAccess(ctx, viewerID, ownerID); err != nil {
		return nil, err
	}
	return s.followRepo.GetFollowing(ctx, ownerID, limit, offset)
}

func (s *FollowService) checkListAccess(ctx context.Context, viewerID, ownerID uint) error {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	follows := false
	if viewerID != ownerID && owner.IsPrivate {
		follows, err = s.IsFollowing(ctx, viewerID, ownerID)
		if err != nil {
			return err
		}
	}
	return CheckAccountVisibility(viewerID, ownerID, owner.IsPrivate, follows)
}

// CountAccepted returns the accepted-edge count for one side of a user's
// graph, for follower/following counters on profiles.
func (s *FollowService) CountAccepted(ctx context.Context, userID uint, direction models.FollowDirection) (int64, error) {
	return s.followRepo.CountAccepted(ctx, userID, direction)
}
