package server

import (
	"fmt"

	"netlife/internal/models"
	"netlife/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Profile handles GET /profile/:username
func (s *Server) Profile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	username := c.Params("username")

	view, err := s.socialService.Profile(c.UserContext(), username, userID)
	if err != nil {
		if models.IsCode(err, models.ErrCodeNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	return s.render(c, "profile", fiber.Map{
		"profile":          view.Profile,
		"posts":            view.Posts,
		"avatar":           view.Profile.Avatar,
		"username":         username,
		"amount_posts":     view.PostCount,
		"button_text":      view.ButtonText,
		"followers_amount": view.FollowerCount,
		"following_amount": view.FollowingCount,
		"is_own_profile":   username == c.Locals("username").(string),
	})
}

// UpdateProfilePage handles GET /update_profile for the session user.
func (s *Server) UpdateProfilePage(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	profile, err := s.profileRepo.GetByUsername(c.UserContext(), username)
	if err != nil {
		return err
	}

	return s.render(c, "update_profile", fiber.Map{
		"profile":      profile,
		"current_user": username,
	})
}

// UpdateProfile handles POST /update_profile with an optional avatar upload.
func (s *Server) UpdateProfile(c *fiber.Ctx) error {
	username := c.Locals("username").(string)

	in := service.UpdateProfileInput{
		Username:   username,
		FirstName:  c.FormValue("first_name"),
		SecondName: c.FormValue("second_name"),
		Bio:        c.FormValue("bio"),
	}

	if fh, err := c.FormFile("avatar"); err == nil {
		name, content, err := readUpload(fh)
		if err != nil {
			return err
		}
		in.AvatarName = name
		in.Avatar = content
	}

	profile, fieldErrs, err := s.socialService.UpdateProfile(c.UserContext(), in)
	if err != nil {
		return err
	}
	if fieldErrs.HasErrors() {
		return s.render(c, "update_profile", fiber.Map{
			"profile":      profile,
			"current_user": username,
			"errors":       fieldErrs,
		})
	}

	s.addFlash(c, "Your profile was successfully updated!")
	return c.Redirect("/profile/"+username, fiber.StatusFound)
}

// Follow handles POST /follow/:follower/:user. The first path segment names
// the follow target and drives the flash and the redirect; the actor is
// always the session user, never trusted from the path.
func (s *Server) Follow(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	target := c.Params("follower")

	followed, err := s.socialService.ToggleFollow(c.UserContext(), userID, target)
	if err != nil {
		if models.IsCode(err, models.ErrCodeNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	if followed {
		s.addFlash(c, fmt.Sprintf("You have just followed with %s", target))
	} else {
		s.addFlash(c, fmt.Sprintf("You have just unfollowed from %s", target))
	}
	return c.Redirect("/profile/"+target, fiber.StatusFound)
}

// FollowingAccounts handles GET /following_accounts/:username
func (s *Server) FollowingAccounts(c *fiber.Ctx) error {
	username := c.Params("username")

	follows, err := s.socialService.Following(c.UserContext(), username)
	if err != nil {
		if models.IsCode(err, models.ErrCodeNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	return s.render(c, "following_accounts", fiber.Map{
		"username": username,
		"follows":  follows,
	})
}

// FollowersAccounts handles GET /followers_accounts/:username
func (s *Server) FollowersAccounts(c *fiber.Ctx) error {
	username := c.Params("username")

	follows, err := s.socialService.Followers(c.UserContext(), username)
	if err != nil {
		if models.IsCode(err, models.ErrCodeNotFound) {
			return fiber.ErrNotFound
		}
		return err
	}

	return s.render(c, "followers_accounts", fiber.Map{
		"username": username,
		"follows":  follows,
	})
}
