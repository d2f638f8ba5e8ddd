package service

import (
	"context"
	"strings"
	"testing"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn      func(context.Context, *models.Post) error
	getByIDFn     func(context.Context, uint, uint) (*models.Post, error)
	getByUserIDFn func(context.Context, uint, int, int, uint, bool) ([]*models.Post, error)
	listFeedFn    func(context.Context, uint, int, int) ([]*models.Post, error)
	updateFn      func(context.Context, *models.Post) error
	deleteFn      func(context.Context, uint) error
	isLikedFn     func(context.Context, uint, uint) (bool, error)
	likeFn        func(context.Context, uint, uint) (bool, error)
	unlikeFn      func(context.Context, uint, uint) error
	listLikersFn  func(context.Context, uint, int, int) ([]models.User, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id, currentUserID uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id, currentUserID)
}
func (s *postRepoStub) GetByUserID(ctx context.Context, userID uint, limit, offset int, currentUserID uint, publicOnly bool) ([]*models.Post, error) {
	return s.getByUserIDFn(ctx, userID, limit, offset, currentUserID, publicOnly)
}
func (s *postRepoStub) ListFeed(ctx context.Context, viewerID uint, limit, offset int) ([]*models.Post, error) {
	return s.listFeedFn(ctx, viewerID, limit, offset)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IsLiked(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isLikedFn(ctx, userID, postID)
}
func (s *postRepoStub) Like(ctx context.Context, userID, postID uint) (bool, error) {
	return s.likeFn(ctx, userID, postID)
}
func (s *postRepoStub) Unlike(ctx context.Context, userID, postID uint) error {
	return s.unlikeFn(ctx, userID, postID)
}
func (s *postRepoStub) ListLikers(ctx context.Context, postID uint, limit, offset int) ([]models.User, error) {
	return s.listLikersFn(ctx, postID, limit, offset)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, id, _ uint) (*models.Post, error) {
			return &models.Post{ID: id}, nil
		},
		getByUserIDFn: func(_ context.Context, _ uint, _, _ int, _ uint, _ bool) ([]*models.Post, error) { return nil, nil },
		listFeedFn:    func(_ context.Context, _ uint, _, _ int) ([]*models.Post, error) { return nil, nil },
		updateFn:      func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:      func(_ context.Context, _ uint) error { return nil },
		isLikedFn:     func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		likeFn:        func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		unlikeFn:      func(_ context.Context, _, _ uint) error { return nil },
		listLikersFn:  func(_ context.Context, _ uint, _, _ int) ([]models.User, error) { return nil, nil },
	}
}

func TestCreatePostValidation(t *testing.T) {
	svc := NewPostService(noopPostRepo(), noopUserRepo(), noopFollowRepo())

	_, err := svc.CreatePost(context.Background(), CreatePostInput{UserID: 1, Title: "ab", Content: "hello"})
	assertAppErrCode(t, err, models.CodeValidation)

	_, err = svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "A valid title",
		Content: strings.Repeat("x", 10001),
	})
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestCreatePostStripsHTML(t *testing.T) {
	repo := noopPostRepo()
	var created *models.Post
	repo.createFn = func(_ context.Context, p *models.Post) error {
		p.ID = 1
		created = p
		return nil
	}
	repo.getByIDFn = func(_ context.Context, _, _ uint) (*models.Post, error) { return created, nil }

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	post, err := svc.CreatePost(context.Background(), CreatePostInput{
		UserID:  1,
		Title:   "Hello <script>alert(1)</script>world",
		Content: "body",
	})
	require.NoError(t, err)
	assert.NotContains(t, post.Title, "<script>")
}

func TestGetPostContentPrivateHiddenFromOthers(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: false}, nil
	}

	svc := NewPostService(repo, users, noopFollowRepo())
	_, err := svc.GetPost(context.Background(), 1, 9)
	assertAppErrCode(t, err, models.CodeContentPrivate)
}

func TestGetPostAccountPrivateWinsOverContent(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: true}, nil
	}

	svc := NewPostService(repo, users, noopFollowRepo())
	_, err := svc.GetPost(context.Background(), 1, 9)
	assertAppErrCode(t, err, models.CodeAccountPrivate)
}

func TestGetPostOwnerSeesPrivatePost(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	post, err := svc.GetPost(context.Background(), 2, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), post.ID)
}

func TestGetPostFollowerSeesPublicPostOnPrivateAccount(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: false}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: true}, nil
	}
	follows := noopFollowRepo()
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.Follow, error) {
		return &models.Follow{Status: models.FollowStatusAccepted}, nil
	}

	svc := NewPostService(repo, users, follows)
	post, err := svc.GetPost(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.Equal(t, uint(9), post.ID)
}

func TestGetUserPostsPrivateAccountBlocked(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: true}, nil
	}

	svc := NewPostService(noopPostRepo(), users, noopFollowRepo())
	_, err := svc.GetUserPosts(context.Background(), 1, 2, 20, 0)
	assertAppErrCode(t, err, models.CodeAccountPrivate)
}

func TestGetUserPostsPublicOnlyForOtherViewers(t *testing.T) {
	repo := noopPostRepo()
	var gotPublicOnly bool
	repo.getByUserIDFn = func(_ context.Context, _ uint, _, _ int, _ uint, publicOnly bool) ([]*models.Post, error) {
		gotPublicOnly = publicOnly
		return nil, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())

	_, err := svc.GetUserPosts(context.Background(), 1, 2, 20, 0)
	require.NoError(t, err)
	assert.True(t, gotPublicOnly, "other viewers must only see public posts")

	_, err = svc.GetUserPosts(context.Background(), 2, 2, 20, 0)
	require.NoError(t, err)
	assert.False(t, gotPublicOnly, "the owner sees their private posts too")
}

func TestUpdatePostNotAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 9, Title: "New title"})
	assertAppErrCode(t, err, models.CodeUnauthorized)
}

func TestDeletePostNotAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.DeletePost(context.Background(), 1, 9)
	assertAppErrCode(t, err, models.CodeUnauthorized)
}

func TestUpdatePostPrivatePostLooksMissingToNonAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.UpdatePost(context.Background(), UpdatePostInput{UserID: 1, PostID: 9, Title: "New title"})
	assertAppErrCode(t, err, models.CodeContentPrivate)
}

func TestDeletePostPrivatePostLooksMissingToNonAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.DeletePost(context.Background(), 1, 9)
	assertAppErrCode(t, err, models.CodeContentPrivate)
}

func TestSetPostPrivacyPrivatePostLooksMissingToNonAuthor(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.SetPostPrivacy(context.Background(), 1, 9, false)
	assertAppErrCode(t, err, models.CodeContentPrivate)
}

func TestToggleLikeLikesWhenNotLiked(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	liked, unliked := false, false
	repo.likeFn = func(context.Context, uint, uint) (bool, error) {
		liked = true
		return true, nil
	}
	repo.unlikeFn = func(context.Context, uint, uint) error {
		unliked = true
		return nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.ToggleLike(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.False(t, unliked)
}

func TestToggleLikeUnlikesWhenLiked(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}
	repo.isLikedFn = func(context.Context, uint, uint) (bool, error) { return true, nil }
	unliked := false
	repo.unlikeFn = func(context.Context, uint, uint) error {
		unliked = true
		return nil
	}

	svc := NewPostService(repo, noopUserRepo(), noopFollowRepo())
	_, err := svc.ToggleLike(context.Background(), 1, 9)
	require.NoError(t, err)
	assert.True(t, unliked)
}

func TestToggleLikeBehindVisibilityGate(t *testing.T) {
	repo := noopPostRepo()
	repo.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}

	svc := NewPostService(repo, users, noopFollowRepo())
	_, err := svc.ToggleLike(context.Background(), 1, 9)
	assertAppErrCode(t, err, models.CodeContentPrivate)
}
