package server

import (
	"time"

	"netlife/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const (
	sessionUserIDKey   = "userID"
	sessionUsernameKey = "username"
	sessionFlashKey    = "flash"
)

func newSessionStore() *session.Store {
	return session.New(session.Config{
		Expiration:     7 * 24 * time.Hour,
		KeyLookup:      "cookie:netlife_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

// currentUser returns the session's user id and username, or (0, "") when
// the request is unauthenticated.
func (s *Server) currentUser(c *fiber.Ctx) (uint, string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return 0, ""
	}
	uid, ok := sess.Get(sessionUserIDKey).(uint)
	if !ok {
		return 0, ""
	}
	username, _ := sess.Get(sessionUsernameKey).(string)
	return uid, username
}

// establishSession logs the user in.
func (s *Server) establishSession(c *fiber.Ctx, userID uint, username string) error {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return err
	}
	sess.Set(sessionUserIDKey, userID)
	sess.Set(sessionUsernameKey, username)
	return sess.Save()
}

// destroySession logs the user out unconditionally.
func (s *Server) destroySession(c *fiber.Ctx) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	_ = sess.Destroy()
}

// AuthRequired redirects unauthenticated requests to the login page and puts
// the user id and username into Locals for downstream handlers.
func (s *Server) AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid, username := s.currentUser(c)
		if uid == 0 {
			return c.Redirect("/login/", fiber.StatusFound)
		}
		c.Locals("userID", uid)
		c.Locals("username", username)
		return c.Next()
	}
}

// addFlash queues a one-shot notice shown on the next rendered page.
func (s *Server) addFlash(c *fiber.Ctx, message string) {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return
	}
	messages, _ := sess.Get(sessionFlashKey).([]string)
	sess.Set(sessionFlashKey, append(messages, message))
	_ = sess.Save()
}

// popFlashes drains queued notices.
func (s *Server) popFlashes(c *fiber.Ctx) []string {
	sess, err := s.sessions.Get(c)
	if err != nil {
		return nil
	}
	messages, _ := sess.Get(sessionFlashKey).([]string)
	if len(messages) > 0 {
		sess.Delete(sessionFlashKey)
		_ = sess.Save()
	}
	return messages
}

// sessionAvatar resolves the logged-in user's avatar for the shared layout.
func (s *Server) sessionAvatar(c *fiber.Ctx, username string) string {
	profile, err := s.profileRepo.GetByUsername(c.UserContext(), username)
	if err != nil || profile == nil {
		return models.DefaultAvatar
	}
	return profile.Avatar
}

// render wraps c.Render, injecting flash messages, the session user and the
// session user's avatar into every template context. A handler that already
// bound "avatar" (the profile page binds the viewed profile's) wins.
func (s *Server) render(c *fiber.Ctx, name string, bind fiber.Map) error {
	if bind == nil {
		bind = fiber.Map{}
	}
	bind["messages"] = s.popFlashes(c)
	if _, username := s.currentUser(c); username != "" {
		bind["session_user"] = username
		if _, ok := bind["avatar"]; !ok {
			bind["avatar"] = s.sessionAvatar(c, username)
		}
	}
	return c.Render(name, bind)
}
