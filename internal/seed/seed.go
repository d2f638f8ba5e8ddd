package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"ripple/internal/models"

	"gorm.io/gorm"
)

// Options configure a seeding run.
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	SkipBcrypt  bool
}

// Seed populates the database with sample users, a follow mesh, posts,
// comments and likes. The follow mesh respects account privacy: edges to
// private accounts are seeded as pending roughly half the time, edges to
// public accounts are always accepted.
func Seed(db *gorm.DB, opts Options) error {
	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			return fmt.Errorf("failed to clear data: %w", err)
		}
	}

	factory := NewFactory(db, SeedOptions{
		NumUsers:     opts.NumUsers,
		NumPosts:     opts.NumPosts,
		PrivateRatio: 0.3,
		SkipBcrypt:   opts.SkipBcrypt,
		MaxDays:      90,
	})

	//nolint:gosec // Weak random number generator is fine for seeding
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Seeding %d users...", opts.NumUsers)
	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := factory.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}

	log.Println("Seeding follow graph...")
	edges := 0
	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID {
				continue
			}
			if rng.Float64() >= 0.25 {
				continue
			}
			status := models.FollowStatusAccepted
			if following.IsPrivate && rng.Float64() < 0.5 {
				status = models.FollowStatusPending
			}
			if err := factory.CreateFollow(follower, following, status); err != nil {
				return fmt.Errorf("failed to create follow: %w", err)
			}
			edges++
		}
	}
	log.Printf("Seeded %d follow edges", edges)

	log.Printf("Seeding %d posts...", opts.NumPosts)
	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		author := users[rng.Intn(len(users))]
		post, err := factory.CreatePost(author)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}
		posts = append(posts, post)
	}

	log.Println("Seeding comments and likes...")
	for _, post := range posts {
		numComments := rng.Intn(4)
		for i := 0; i < numComments; i++ {
			commenter := users[rng.Intn(len(users))]
			if _, err := factory.CreateComment(commenter, post); err != nil {
				return fmt.Errorf("failed to create comment: %w", err)
			}
		}
		numLikes := rng.Intn(6)
		for i := 0; i < numLikes; i++ {
			liker := users[rng.Intn(len(users))]
			_ = factory.CreateLike(liker, post)
		}
	}

	log.Println("Seeding complete")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	return db.Exec("TRUNCATE TABLE comments, likes, posts, follows, users RESTART IDENTITY CASCADE").Error
}
