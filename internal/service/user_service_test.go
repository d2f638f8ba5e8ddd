package service

import (
	"context"
	"testing"
	"time"

	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetProfileCountsAndFlags(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}
	follows := noopFollowRepo()
	follows.countAcceptedFn = func(_ context.Context, _ uint, direction models.FollowDirection) (int64, error) {
		if direction == models.DirectionFollowers {
			return 12, nil
		}
		return 7, nil
	}
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.Follow, error) {
		return &models.Follow{Status: models.FollowStatusAccepted}, nil
	}

	svc := NewUserService(users, follows)
	profile, err := svc.GetProfile(context.Background(), 1, 2)
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, 12, profile.FollowersCount)
	assert.Equal(t, 7, profile.FollowingCount)
	assert.True(t, profile.IsFollowing)
	assert.False(t, profile.HasPendingRequest)
}

func TestGetProfilePrivateAccountHidesCounts(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice", IsPrivate: true}, nil
	}
	follows := noopFollowRepo()
	follows.countAcceptedFn = func(context.Context, uint, models.FollowDirection) (int64, error) {
		t.Fatal("counts must not be queried for a hidden private account")
		return 0, nil
	}
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.Follow, error) {
		return &models.Follow{Status: models.FollowStatusPending}, nil
	}

	svc := NewUserService(users, follows)
	profile, err := svc.GetProfile(context.Background(), 1, 2)
	require.NoError(t, err)

	// The bare card stays readable so the viewer can request a follow,
	// but the counts stay behind the account tier.
	assert.Equal(t, "alice", profile.Username)
	assert.Zero(t, profile.FollowersCount)
	assert.Zero(t, profile.FollowingCount)
	assert.False(t, profile.IsFollowing)
	assert.True(t, profile.HasPendingRequest)
}

func TestGetProfilePrivateAccountFollowerSeesCounts(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice", IsPrivate: true}, nil
	}
	follows := noopFollowRepo()
	follows.countAcceptedFn = func(_ context.Context, _ uint, direction models.FollowDirection) (int64, error) {
		if direction == models.DirectionFollowers {
			return 3, nil
		}
		return 4, nil
	}
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.Follow, error) {
		return &models.Follow{Status: models.FollowStatusAccepted}, nil
	}

	svc := NewUserService(users, follows)
	profile, err := svc.GetProfile(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, profile.FollowersCount)
	assert.Equal(t, 4, profile.FollowingCount)
	assert.True(t, profile.IsFollowing)
}

func TestGetProfileAnonymousViewerSkipsEdgeLookup(t *testing.T) {
	follows := noopFollowRepo()
	follows.getEdgeFn = func(context.Context, uint, uint) (*models.Follow, error) {
		t.Fatal("edge lookup must not run for anonymous viewers")
		return nil, nil
	}

	svc := NewUserService(noopUserRepo(), follows)
	profile, err := svc.GetProfile(context.Background(), 0, 2)
	require.NoError(t, err)
	assert.False(t, profile.IsFollowing)
}

func TestUpdateProfileUsernameTaken(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}
	users.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
		return &models.User{ID: 99, Username: username}, nil
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Username: "bob"})
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestUpdateProfileTogglePrivacy(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice", IsPrivate: false}, nil
	}
	var saved *models.User
	users.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}

	private := true
	svc := NewUserService(users, noopFollowRepo())
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, IsPrivate: &private})
	require.NoError(t, err)
	assert.True(t, updated.IsPrivate)
	require.NotNil(t, saved)
	assert.True(t, saved.IsPrivate)
}

func TestUpdateProfileGenderAndBirthday(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}

	birthday := time.Date(1990, time.June, 15, 0, 0, 0, 0, time.UTC)
	svc := NewUserService(users, noopFollowRepo())
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID:   1,
		Gender:   "female",
		Birthday: &birthday,
	})
	require.NoError(t, err)
	assert.Equal(t, "female", updated.Gender)
	require.NotNil(t, updated.Birthday)
	assert.True(t, updated.Birthday.Equal(birthday))
}

func TestUpdateProfileRejectsUnknownGender(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}

	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Gender: "robot"})
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestUpdateProfileRejectsFutureBirthday(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}

	future := time.Now().AddDate(1, 0, 0)
	svc := NewUserService(users, noopFollowRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Birthday: &future})
	assertAppErrCode(t, err, models.CodeValidation)
}

func TestUpdateProfileStripsBioHTML(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return &models.User{ID: id, Username: "alice"}, nil
	}

	svc := NewUserService(users, noopFollowRepo())
	updated, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{
		UserID: 1,
		Bio:    "hello <b>world</b>",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello world", updated.Bio)
}
