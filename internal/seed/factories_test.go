package seed

import (
	"testing"

	"netlife/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.ProfilePage{},
		&models.Post{},
		&models.Image{},
		&models.Tag{},
		&models.Follow{},
	))
	return db
}

func TestFactory_CreateUser(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.True(t, user.IsActive, "seeded users skip the activation flow")

	var profile models.ProfilePage
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
	assert.Equal(t, models.DefaultAvatar, profile.Avatar)
}

func TestFactory_CreateUserOverride(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser(func(u *models.User) {
		u.Username = "fixed-name"
	})
	require.NoError(t, err)
	assert.Equal(t, "fixed-name", user.Username)
}

func TestFactory_CreatePostWithTags(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	user, err := f.CreateUser()
	require.NoError(t, err)

	post, err := f.CreatePost(user)
	require.NoError(t, err)
	assert.Equal(t, post.MainImage, post.Preview)

	require.NoError(t, f.AttachTags(post, []string{"nature", "travel"}))
	require.NoError(t, f.AttachTags(post, []string{"nature"}))

	// Tag rows are shared, not duplicated.
	var tagCount int64
	require.NoError(t, db.Model(&models.Tag{}).Where("name = ?", "nature").Count(&tagCount).Error)
	assert.Equal(t, int64(1), tagCount)
}

func TestFactory_CreateFollowIgnoresDuplicates(t *testing.T) {
	db := setupSeedDB(t)
	f := NewFactory(db, Options{SkipBcrypt: true})

	alice, err := f.CreateUser()
	require.NoError(t, err)
	bob, err := f.CreateUser()
	require.NoError(t, err)

	require.NoError(t, f.CreateFollow(alice, bob))
	require.NoError(t, f.CreateFollow(alice, bob))

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSeed_PopulatesMesh(t *testing.T) {
	db := setupSeedDB(t)

	require.NoError(t, Seed(db, Options{
		NumUsers:   5,
		NumPosts:   10,
		SkipBcrypt: true,
	}))

	var users, posts int64
	require.NoError(t, db.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, db.Model(&models.Post{}).Count(&posts).Error)
	assert.Equal(t, int64(5), users)
	assert.Equal(t, int64(10), posts)
}
