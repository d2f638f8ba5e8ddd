package seed

import (
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})
	return db
}

func TestSeedPopulates(t *testing.T) {
	db := setupSeedDB(t)

	err := Seed(db, Options{NumUsers: 8, NumPosts: 20, SkipBcrypt: true})
	require.NoError(t, err)

	var userCount, postCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Post{}).Count(&postCount)
	assert.Equal(t, int64(8), userCount)
	assert.Equal(t, int64(20), postCount)
}

func TestSeedFollowMeshRespectsPrivacy(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{NumUsers: 12, NumPosts: 5, SkipBcrypt: true}))

	// Pending requests only ever target private accounts.
	var leaks int64
	db.Model(&models.Follow{}).
		Joins("JOIN users ON users.id = follows.following_id").
		Where("follows.status = ? AND users.is_private = ?", models.FollowStatusPending, false).
		Count(&leaks)
	assert.Zero(t, leaks)
}

func TestFactoryCreateLikeIsIdempotent(t *testing.T) {
	db := setupSeedDB(t)
	factory := NewFactory(db, SeedOptions{SkipBcrypt: true})

	user, err := factory.CreateUser()
	require.NoError(t, err)
	post, err := factory.CreatePost(user)
	require.NoError(t, err)

	require.NoError(t, factory.CreateLike(user, post))
	require.NoError(t, factory.CreateLike(user, post))

	var likes int64
	db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likes)
	assert.Equal(t, int64(1), likes)
}
