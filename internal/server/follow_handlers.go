// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"ripple/internal/models"

	"github.com/gofiber/fiber/v2"
)

// FollowUser handles POST /api/users/:id/follow
func (s *Server) FollowUser(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	follow, err := s.followService.Follow(c.Context(), userID, targetID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(follow)
}

// UnfollowUser handles DELETE /api/users/:id/follow. Unfollowing someone you
// do not follow is a no-op, so the response is the same either way.
func (s *Server) UnfollowUser(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.Unfollow(c.Context(), userID, targetID); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetPendingFollowRequests handles GET /api/follows/pending
func (s *Server) GetPendingFollowRequests(c *fiber.Ctx) error {
	userID := currentUserID(c)

	requests, err := s.followService.PendingRequestsFor(c.Context(), userID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(requests)
}

// AcceptFollowRequest handles POST /api/follows/:id/accept
func (s *Server) AcceptFollowRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		FollowBack bool `json:"follow_back"`
	}
	// An empty body means accept without following back.
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("Invalid request body"))
		}
	}

	follow, err := s.followService.AcceptRequest(c.Context(), userID, requestID, req.FollowBack)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(follow)
}

// RejectFollowRequest handles DELETE /api/follows/:id/reject
func (s *Server) RejectFollowRequest(c *fiber.Ctx) error {
	userID := currentUserID(c)
	requestID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.followService.RejectRequest(c.Context(), userID, requestID); err != nil {
		return s.respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetFollowers handles GET /api/users/:id/followers
func (s *Server) GetFollowers(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, err := s.followService.Followers(c.Context(), userID, targetID, p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

// GetFollowing handles GET /api/users/:id/following
func (s *Server) GetFollowing(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	p := parsePagination(c, 20)

	users, err := s.followService.Following(c.Context(), userID, targetID, p.Limit, p.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(users)
}

// GetFollowStatus handles GET /api/users/:id/follow-status
func (s *Server) GetFollowStatus(c *fiber.Ctx) error {
	userID := currentUserID(c)
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	isFollowing, err := s.followService.IsFollowing(c.Context(), userID, targetID)
	if err != nil {
		return s.respondError(c, err)
	}
	hasPending, err := s.followService.HasPendingRequest(c.Context(), userID, targetID)
	if err != nil {
		return s.respondError(c, err)
	}

	status := "none"
	if isFollowing {
		status = "following"
	} else if hasPending {
		status = "pending"
	}

	return c.JSON(fiber.Map{
		"status":              status,
		"is_following":        isFollowing,
		"has_pending_request": hasPending,
	})
}
