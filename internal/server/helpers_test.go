package server

import (
	"bytes"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"netlife/internal/config"
	"netlife/internal/mailer"
	"netlife/internal/models"
	"netlife/internal/repository"
	"netlife/internal/service"
	"netlife/internal/storage"
	"netlife/internal/token"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

// newTestServer wires a Server over in-memory sqlite with the real template
// engine, skipping the global middleware stack.
func newTestServer(t *testing.T) (*Server, *fiber.App, *gorm.DB) {
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

	media, err := storage.NewMediaStore(t.TempDir())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	postRepo := repository.NewPostRepository(db)
	followRepo := repository.NewFollowRepository(db)
	tokens := token.NewActivationMaker(testSecret)

	s := &Server{
		config:         &config.Config{BaseURL: "http://localhost:8375", SecretKey: testSecret, Env: "test"},
		db:             db,
		sessions:       newSessionStore(),
		media:          media,
		userRepo:       userRepo,
		profileRepo:    profileRepo,
		postRepo:       postRepo,
		followRepo:     followRepo,
		accountService: service.NewAccountService(userRepo, profileRepo, mailer.LogSender{}, tokens, "http://localhost:8375", time.Now),
		contentService: service.NewContentService(postRepo, media, time.Now),
		socialService:  service.NewSocialService(userRepo, profileRepo, postRepo, followRepo, media),
	}

	app := fiber.New(fiber.Config{
		Views: html.New("../../templates", ".html"),
	})
	s.SetupRoutes(app)

	return s, app, db
}

func createActiveUser(t *testing.T, db *gorm.DB, username, password string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: string(hash),
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Create(&models.ProfilePage{
		UserID:       user.ID,
		Avatar:       models.DefaultAvatar,
		RegisterDate: time.Now(),
	}).Error)
	return user
}

func postForm(t *testing.T, app *fiber.App, path string, values url.Values, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

func getPage(t *testing.T, app *fiber.App, path string, cookies ...*http.Cookie) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	return resp
}

// login performs the login request and returns the session cookie.
func login(t *testing.T, app *fiber.App, username, password string) *http.Cookie {
	t.Helper()
	resp := postForm(t, app, "/login/", url.Values{
		"username": {username},
		"password": {password},
	})
	require.Equal(t, http.StatusFound, resp.StatusCode, "expected a redirect after successful login")
	for _, c := range resp.Cookies() {
		if c.Name == "netlife_session" {
			return c
		}
	}
	t.Fatal("session cookie not set after login")
	return nil
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	return buf.Bytes()
}

// multipartBody builds a post-creation form with the given files and fields.
func multipartBody(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	for name, content := range files {
		part, err := writer.CreateFormFile(name, name+".png")
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}
