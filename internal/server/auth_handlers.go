package server

import (
	"netlife/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// RegisterPage handles GET /register/
func (s *Server) RegisterPage(c *fiber.Ctx) error {
	if uid, _ := s.currentUser(c); uid != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "registration/register", fiber.Map{
		"form":   validation.RegistrationForm{},
		"errors": validation.FieldErrors{},
	})
}

// Register handles POST /register/
func (s *Server) Register(c *fiber.Ctx) error {
	if uid, _ := s.currentUser(c); uid != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}

	form := validation.RegistrationForm{
		Username:             c.FormValue("username"),
		Email:                c.FormValue("email"),
		Password:             c.FormValue("password1"),
		PasswordConfirmation: c.FormValue("password2"),
	}

	fieldErrs, err := s.accountService.Register(c.UserContext(), form)
	if err != nil {
		return err
	}
	if fieldErrs.HasErrors() {
		return s.render(c, "registration/register", fiber.Map{
			"form":   form,
			"errors": fieldErrs,
		})
	}

	s.addFlash(c, "Please confirm your email address to complete the registration")
	return s.render(c, "registration/register", fiber.Map{
		"form":   validation.RegistrationForm{},
		"errors": validation.FieldErrors{},
	})
}

// LoginPage handles GET /login/
func (s *Server) LoginPage(c *fiber.Ctx) error {
	if uid, _ := s.currentUser(c); uid != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}
	return s.render(c, "registration/login", fiber.Map{})
}

// Login handles POST /login/
func (s *Server) Login(c *fiber.Ctx) error {
	if uid, _ := s.currentUser(c); uid != 0 {
		return c.Redirect("/", fiber.StatusFound)
	}

	username := c.FormValue("username")
	password := c.FormValue("password")

	user, err := s.accountService.Authenticate(c.UserContext(), username, password)
	if err != nil {
		// Same message for wrong password, unknown user and inactive account.
		s.addFlash(c, "Username or password is incorrect!")
		return s.render(c, "registration/login", fiber.Map{})
	}

	if err := s.establishSession(c, user.ID, user.Username); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// EnsureProfile handles GET /login_via_accounts/. It creates the profile
// page on first login and is safe to hit repeatedly.
func (s *Server) EnsureProfile(c *fiber.Ctx) error {
	userID := c.Locals("userID").(uint)
	if _, err := s.accountService.EnsureProfile(c.UserContext(), userID); err != nil {
		return err
	}
	return c.Redirect("/", fiber.StatusFound)
}

// Logout handles GET /logout/
func (s *Server) Logout(c *fiber.Ctx) error {
	s.destroySession(c)
	return c.Redirect("/login/", fiber.StatusFound)
}

// Activate handles GET /activate/:uid/:token/
func (s *Server) Activate(c *fiber.Ctx) error {
	if err := s.accountService.Activate(c.UserContext(), c.Params("uid"), c.Params("token")); err != nil {
		// Malformed link, unknown user and consumed token all read the same.
		return c.Status(fiber.StatusOK).SendString("Activation link is invalid!")
	}
	s.addFlash(c, "You have successfully registered. Sign In to your account.")
	return c.Redirect("/", fiber.StatusFound)
}
