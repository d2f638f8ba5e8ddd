package service

import (
	"context"

	"ripple/internal/models"
	"ripple/internal/repository"
	"ripple/internal/validation"
)

// PostService provides post business logic: authoring, the feed, likes, and
// the per-post visibility gate.
type PostService struct {
	postRepo   repository.PostRepository
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
}

// CreatePostInput is the payload for creating a post.
type CreatePostInput struct {
	UserID    uint
	Title     string
	Content   string
	MediaType string
	MediaURL  string
	IsPrivate bool
}

// UpdatePostInput is the payload for editing a post. Empty fields keep their
// current value.
type UpdatePostInput struct {
	UserID  uint
	PostID  uint
	Title   string
	Content string
}

// NewPostService returns a new PostService.
func NewPostService(
	postRepo repository.PostRepository,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		userRepo:   userRepo,
		followRepo: followRepo,
	}
}

// checkPostAccess runs the two-tier visibility policy against a loaded post.
func (s *PostService) checkPostAccess(ctx context.Context, viewerID uint, post *models.Post) error {
	return checkPostAccess(ctx, s.userRepo, s.followRepo, viewerID, post)
}

func checkPostAccess(
	ctx context.Context,
	userRepo repository.UserRepository,
	followRepo repository.FollowRepository,
	viewerID uint,
	post *models.Post,
) error {
	if viewerID == post.UserID {
		return nil
	}

	owner, err := userRepo.GetByID(ctx, post.UserID)
	if err != nil {
		return err
	}

	follows := false
	if owner.IsPrivate {
		edge, err := followRepo.GetEdge(ctx, viewerID, post.UserID)
		if err != nil {
			return err
		}
		follows = edge != nil && edge.Status == models.FollowStatusAccepted
	}

	return CheckPostVisibility(VisibilityInput{
		ViewerID:           viewerID,
		OwnerID:            post.UserID,
		OwnerPrivate:       owner.IsPrivate,
		ContentPrivate:     post.IsPrivate,
		ViewerFollowsOwner: follows,
	})
}

// CreatePost validates and sanitizes the payload, then stores the post.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	title := validation.StripHTML(in.Title)
	content := validation.StripHTML(in.Content)

	if err := validation.ValidatePostTitle(title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePostContent(content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:     title,
		Content:   content,
		MediaType: in.MediaType,
		MediaURL:  in.MediaURL,
		UserID:    in.UserID,
		IsPrivate: in.IsPrivate,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}

	return s.postRepo.GetByID(ctx, post.ID, in.UserID)
}

// GetPost returns a single post after the visibility gate.
func (s *PostService) GetPost(ctx context.Context, viewerID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPostAccess(ctx, viewerID, post); err != nil {
		return nil, err
	}
	return post, nil
}

// GetFeed returns the viewer's feed. Visibility is enforced inside the feed
// query itself, so every returned post is one the viewer may see.
func (s *PostService) GetFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.postRepo.ListFeed(ctx, viewerID, limit, offset)
}

// GetUserPosts lists a user's posts for a given viewer. The account tier
// gates the whole listing; the content tier then hides private posts from
// everyone but the owner.
func (s *PostService) GetUserPosts(ctx context.Context, viewerID, ownerID uint, limit, offset int) ([]*models.Post, error) {
	owner, err := s.userRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	follows := false
	if viewerID != ownerID && owner.IsPrivate {
		edge, err := s.followRepo.GetEdge(ctx, viewerID, ownerID)
		if err != nil {
			return nil, err
		}
		follows = edge != nil && edge.Status == models.FollowStatusAccepted
	}
	if err := CheckAccountVisibility(viewerID, ownerID, owner.IsPrivate, follows); err != nil {
		return nil, err
	}

	publicOnly := viewerID != ownerID
	return s.postRepo.GetByUserID(ctx, ownerID, limit, offset, viewerID, publicOnly)
}

// UpdatePost edits a post's title or content. Author only.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, in.PostID, in.UserID)
	if err != nil {
		return nil, err
	}
	// A private post must look missing to everyone but its author, even
	// on the write path, before any ownership error can confirm it exists.
	if post.IsPrivate && post.UserID != in.UserID {
		return nil, models.NewContentPrivateError()
	}
	if post.UserID != in.UserID {
		return nil, models.NewUnauthorizedError("You can only update your own posts")
	}

	if in.Title != "" {
		title := validation.StripHTML(in.Title)
		if err := validation.ValidatePostTitle(title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = title
	}
	if in.Content != "" {
		content := validation.StripHTML(in.Content)
		if err := validation.ValidatePostContent(content); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Content = content
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// SetPostPrivacy flips a post's privacy flag. Author only.
func (s *PostService) SetPostPrivacy(ctx context.Context, userID, postID uint, isPrivate bool) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.IsPrivate && post.UserID != userID {
		return nil, models.NewContentPrivateError()
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only change the privacy of your own posts")
	}

	post.IsPrivate = isPrivate
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost removes a post with its comments and likes. Author only. The
// deleted post is returned so the caller can clean up attached media.
func (s *PostService) DeletePost(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if post.IsPrivate && post.UserID != userID {
		return nil, models.NewContentPrivateError()
	}
	if post.UserID != userID {
		return nil, models.NewUnauthorizedError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		return nil, err
	}
	return post, nil
}

// ToggleLike likes the post if the viewer has not liked it, unlikes it
// otherwise, and returns the post with fresh counts. Liking sits behind the
// full visibility gate.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID, userID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPostAccess(ctx, userID, post); err != nil {
		return nil, err
	}

	isLiked, err := s.postRepo.IsLiked(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if isLiked {
		if err := s.postRepo.Unlike(ctx, userID, postID); err != nil {
			return nil, err
		}
	} else {
		// The insert reports false when a concurrent like won the race,
		// which lands on the same final state.
		if _, err := s.postRepo.Like(ctx, userID, postID); err != nil {
			return nil, err
		}
	}

	return s.postRepo.GetByID(ctx, postID, userID)
}

// GetLikers lists the users who liked a post, behind the visibility gate.
func (s *PostService) GetLikers(ctx context.Context, viewerID, postID uint, limit, offset int) ([]models.User, error) {
	post, err := s.postRepo.GetByID(ctx, postID, viewerID)
	if err != nil {
		return nil, err
	}
	if err := s.checkPostAccess(ctx, viewerID, post); err != nil {
		return nil, err
	}
	return s.postRepo.ListLikers(ctx, postID, limit, offset)
}
