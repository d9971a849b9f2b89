// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"time"

	"netlife/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db   *gorm.DB
	opts Options
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	return &Factory{db: db, opts: opts}
}

// CreateUser constructs and persists an activated sample user with its
// profile page. Optional override functions may modify the generated user
// before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Username: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Email:    gofakeit.Email(),
		IsActive: true,
	}

	// Password handling: allow skipping bcrypt in dev fast mode
	if f.opts.SkipBcrypt {
		user.Password = "Password123"
	} else {
		hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("Password123"), bcrypt.DefaultCost)
		user.Password = string(hashedPassword)
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, err
	}

	profile := &models.ProfilePage{
		UserID:     user.ID,
		FirstName:  gofakeit.FirstName(),
		SecondName: gofakeit.LastName(),
		Bio:        gofakeit.Sentence(10),
		Avatar:     models.DefaultAvatar,
	}
	if err := f.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// CreatePost constructs and persists a sample post for the given user with
// tags and an optional gallery.
func (f *Factory) CreatePost(user *models.User, overrides ...func(*models.Post)) (*models.Post, error) {
	ref := fmt.Sprintf("images/%s.jpg", gofakeit.UUID())
	post := &models.Post{
		UserID:        user.ID,
		MainImage:     ref,
		Preview:       ref,
		Description:   gofakeit.Paragraph(1, 3, 5, "\n"),
		DatePublished: gofakeit.DateRange(time.Now().AddDate(0, -3, 0), time.Now()),
	}

	galleryLen := gofakeit.Number(0, 3)
	for i := 0; i < galleryLen; i++ {
		img := fmt.Sprintf("images/%s.jpg", gofakeit.UUID())
		post.Images = append(post.Images, models.Image{File: img, Preview: img})
	}

	for _, override := range overrides {
		override(post)
	}

	if err := f.db.Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// AttachTags links the post to tags by name, creating missing tag rows.
func (f *Factory) AttachTags(post *models.Post, names []string) error {
	for _, name := range names {
		var tag models.Tag
		if err := f.db.Where(models.Tag{Name: name}).FirstOrCreate(&tag).Error; err != nil {
			return err
		}
		if err := f.db.Model(post).Association("Tags").Append(&tag); err != nil {
			return err
		}
	}
	return nil
}

// CreateLike persists a like from user on post.
func (f *Factory) CreateLike(user *models.User, post *models.Post) error {
	return f.db.Model(post).Association("Likes").Append(user)
}

// CreateFollow persists a follow edge from follower toward followee.
func (f *Factory) CreateFollow(follower, followee *models.User) error {
	edge := &models.Follow{
		FollowerID: follower.ID,
		FolloweeID: followee.ID,
	}
	if err := f.db.Create(edge).Error; err != nil {
		log.Printf("Skipping duplicate follow %d -> %d: %v", follower.ID, followee.ID, err)
	}
	return nil
}
