package service

import (
	"context"
	"testing"

	"ripple/internal/models"
)

type commentRepoStub struct {
	createFn     func(context.Context, *models.Comment) error
	getByIDFn    func(context.Context, uint) (*models.Comment, error)
	listByPostFn func(context.Context, uint, int, int) ([]*models.Comment, error)
	updateFn     func(context.Context, *models.Comment) error
	deleteFn     func(context.Context, uint) error
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn:     func(context.Context, *models.Comment) error { return nil },
		getByIDFn:    func(_ context.Context, id uint) (*models.Comment, error) { return &models.Comment{ID: id}, nil },
		listByPostFn: func(context.Context, uint, int, int) ([]*models.Comment, error) { return nil, nil },
		updateFn:     func(context.Context, *models.Comment) error { return nil },
		deleteFn:     func(context.Context, uint) error { return nil },
	}
}

func TestCreateCommentOnHiddenPost(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2, IsPrivate: true}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id}, nil
	}

	svc := NewCommentService(noopCommentRepo(), posts, users, noopFollowRepo())
	_, err := svc.CreateComment(context.Background(), 1, 9, "nice post")
	assertAppErrCode(t, err, models.CodeContentPrivate)
}

func TestCreateCommentValidation(t *testing.T) {
	svc := NewCommentService(noopCommentRepo(), noopPostRepo(), noopUserRepo(), noopFollowRepo())
	_, err := svc.CreateComment(context.Background(), 1, 9, "   ")
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestListCommentsBehindAccountTier(t *testing.T) {
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 2}, nil
	}
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, IsPrivate: true}, nil
	}

	svc := NewCommentService(noopCommentRepo(), posts, users, noopFollowRepo())
	_, err := svc.ListComments(context.Background(), 1, 9, 50, 0)
	assertAppErrCode(t, err, models.CodeAccountPrivate)
}

func TestUpdateCommentNotAuthor(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 2}, nil
	}

	svc := NewCommentService(comments, noopPostRepo(), noopUserRepo(), noopFollowRepo())
	_, err := svc.UpdateComment(context.Background(), 1, 4, "edited")
	assertAppErrCode(t, err, models.CodeUnauthorized)
}

func TestDeleteCommentByPostOwner(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 2, PostID: 9}, nil
	}
	var deletedID uint
	comments.deleteFn = func(_ context.Context, id uint) error {
		deletedID = id
		return nil
	}
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 1}, nil
	}

	svc := NewCommentService(comments, posts, noopUserRepo(), noopFollowRepo())
	if err := svc.DeleteComment(context.Background(), 1, 4); err != nil {
		t.Fatalf("post owner should be able to delete: %v", err)
	}
	if deletedID != 4 {
		t.Fatalf("expected comment 4 deleted, got %d", deletedID)
	}
}

func TestDeleteCommentByStranger(t *testing.T) {
	comments := noopCommentRepo()
	comments.getByIDFn = func(_ context.Context, id uint) (*models.Comment, error) {
		return &models.Comment{ID: id, UserID: 2, PostID: 9}, nil
	}
	posts := noopPostRepo()
	posts.getByIDFn = func(_ context.Context, id, _ uint) (*models.Post, error) {
		return &models.Post{ID: id, UserID: 3}, nil
	}

	svc := NewCommentService(comments, posts, noopUserRepo(), noopFollowRepo())
	err := svc.DeleteComment(context.Background(), 1, 4)
	assertAppErrCode(t, err, models.CodeUnauthorized)
}
