package validation

import "strings"

// FieldErrors maps a form field name to the message shown next to it.
type FieldErrors map[string]string

// HasErrors reports whether any field failed validation.
func (fe FieldErrors) HasErrors() bool {
	return len(fe) > 0
}

// RegistrationForm carries the raw registration input. Derived fields (active
// flag, password hash) are never accepted here; the account service computes
// them.
type RegistrationForm struct {
	Username             string
	Email                string
	Password             string
	PasswordConfirmation string
}

// Validate checks every field and returns field-scoped errors. A non-empty
// result means nothing may be persisted. Username uniqueness is checked by
// the account service against the store, not here.
func (f *RegistrationForm) Validate() FieldErrors {
	errs := FieldErrors{}

	f.Username = strings.TrimSpace(f.Username)
	f.Email = strings.TrimSpace(f.Email)

	if f.Username == "" {
		errs["username"] = "username is required"
	} else if err := ValidateUsername(f.Username); err != nil {
		errs["username"] = err.Error()
	}

	if f.Email == "" {
		errs["email"] = "email is required"
	} else if err := ValidateEmail(f.Email); err != nil {
		errs["email"] = err.Error()
	}

	if err := ValidatePassword(f.Password); err != nil {
		errs["password"] = err.Error()
	} else if f.Password != f.PasswordConfirmation {
		errs["password_confirmation"] = "passwords do not match"
	}

	return errs
}
