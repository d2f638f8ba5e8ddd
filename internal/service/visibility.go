// Package service contains the application's business logic.
package service

import (
	"ripple/internal/models"
	"ripple/internal/observability"
)

// The visibility policy is deliberately pure: callers gather the facts
// (privacy flags, follow state) and the policy only decides. Checks run in a
// fixed order so the two tiers never leak information about each other:
//
//  1. Account tier: a private account hides everything from non-followers.
//     The failure is explicit, "this account is private" (forbidden).
//  2. Content tier: a private post on a visible account is reported exactly
//     like a post that does not exist (not found).
//
// An account-tier failure must never reveal whether the post exists, and a
// content-tier failure must never reveal that the post does.

// VisibilityInput carries the facts the policy decides on.
type VisibilityInput struct {
	ViewerID           uint
	OwnerID            uint
	OwnerPrivate       bool
	ContentPrivate     bool
	ViewerFollowsOwner bool
}

// CheckAccountVisibility applies the account tier alone. It gates surfaces
// that belong to a user rather than a post: profiles, follower and following
// lists, a user's post listing.
func CheckAccountVisibility(viewerID, ownerID uint, ownerPrivate, viewerFollowsOwner bool) error {
	if viewerID == ownerID {
		return nil
	}
	if ownerPrivate && !viewerFollowsOwner {
		observability.VisibilityDenials.WithLabelValues("account").Inc()
		return models.NewAccountPrivateError()
	}
	return nil
}

// CheckPostVisibility applies both tiers in order: account first, then
// content. A private post is visible to its owner only.
func CheckPostVisibility(in VisibilityInput) error {
	if in.ViewerID == in.OwnerID {
		return nil
	}
	if err := CheckAccountVisibility(in.ViewerID, in.OwnerID, in.OwnerPrivate, in.ViewerFollowsOwner); err != nil {
		return err
	}
	if in.ContentPrivate {
		observability.VisibilityDenials.WithLabelValues("content").Inc()
		return models.NewContentPrivateError()
	}
	return nil
}
