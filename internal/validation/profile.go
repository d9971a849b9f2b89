package validation

import "strings"

const maxNameLen = 50

// ProfileForm carries a profile edit. Every field is optional; the edit is
// always scoped to one existing profile being updated in place.
type ProfileForm struct {
	FirstName  string
	SecondName string
	Bio        string
	Avatar     []byte
}

// Validate checks the profile form and returns field-scoped errors.
func (f *ProfileForm) Validate() FieldErrors {
	errs := FieldErrors{}

	f.FirstName = strings.TrimSpace(f.FirstName)
	f.SecondName = strings.TrimSpace(f.SecondName)

	if len(f.FirstName) > maxNameLen {
		errs["first_name"] = "first name too long"
	}
	if len(f.SecondName) > maxNameLen {
		errs["second_name"] = "second name too long"
	}
	if len(f.Bio) > maxDescriptionLen {
		errs["bio"] = "bio too long"
	}
	if len(f.Avatar) > 0 {
		if err := ValidateImage(f.Avatar); err != nil {
			errs["avatar"] = err.Error()
		}
	}

	return errs
}
