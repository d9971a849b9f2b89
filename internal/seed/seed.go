package seed

import (
	"fmt"
	"log"

	"netlife/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers    int
	NumPosts    int
	ShouldClean bool
	// SkipBcrypt stores plain text passwords, dev fast mode only
	SkipBcrypt bool
}

var tagPool = []string{
	"nature", "travel", "food", "art", "music", "sport", "photography",
	"sunset", "city", "friends", "family", "pets", "coding", "books",
}

// Seed populates the database with test data.
func Seed(db *gorm.DB, opts Options) error {
	log.Printf("Starting database seeding with %d users and %d posts...", opts.NumUsers, opts.NumPosts)

	if opts.ShouldClean {
		if err := clearData(db); err != nil {
			log.Println("Warning: could not clear all existing data, continuing anyway...")
		}
	}

	f := NewFactory(db, opts)

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser()
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)

		if i > 0 && i%100 == 0 {
			log.Printf("Created %d users...", i)
		}
	}
	log.Printf("%d test users created", len(users))

	if len(users) == 0 {
		return nil
	}

	posts := make([]*models.Post, 0, opts.NumPosts)
	for i := 0; i < opts.NumPosts; i++ {
		owner := users[gofakeit.Number(0, len(users)-1)]
		post, err := f.CreatePost(owner)
		if err != nil {
			return fmt.Errorf("failed to create post: %w", err)
		}

		tagCount := gofakeit.Number(0, 3)
		names := make([]string, 0, tagCount)
		for j := 0; j < tagCount; j++ {
			names = append(names, tagPool[gofakeit.Number(0, len(tagPool)-1)])
		}
		if err := f.AttachTags(post, names); err != nil {
			return fmt.Errorf("failed to attach tags: %w", err)
		}
		posts = append(posts, post)
	}
	log.Printf("%d posts created", len(posts))

	// Sprinkle likes and follow edges across the mesh
	for _, post := range posts {
		for i := 0; i < gofakeit.Number(0, 5); i++ {
			liker := users[gofakeit.Number(0, len(users)-1)]
			if err := f.CreateLike(liker, post); err != nil {
				log.Printf("Skipping like on post %d: %v", post.ID, err)
			}
		}
	}

	for _, follower := range users {
		for i := 0; i < gofakeit.Number(0, 4); i++ {
			followee := users[gofakeit.Number(0, len(users)-1)]
			if followee.ID == follower.ID {
				continue
			}
			if err := f.CreateFollow(follower, followee); err != nil {
				return fmt.Errorf("failed to create follow: %w", err)
			}
		}
	}

	log.Println("Database seeding completed successfully!")
	return nil
}

func clearData(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	sql := `TRUNCATE TABLE post_likes, post_tags, images, tags, posts, follows, profile_pages, users RESTART IDENTITY CASCADE;`
	return db.Exec(sql).Error
}
