package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProfileForm_AllFieldsOptional(t *testing.T) {
	form := ProfileForm{}
	assert.False(t, form.Validate().HasErrors())
}

func TestProfileForm_Valid(t *testing.T) {
	form := ProfileForm{
		FirstName:  " Alice ",
		SecondName: "Cooper",
		Bio:        "hello",
		Avatar:     pngBytes(t),
	}
	errs := form.Validate()
	assert.False(t, errs.HasErrors())
	assert.Equal(t, "Alice", form.FirstName)
}

func TestProfileForm_Limits(t *testing.T) {
	form := ProfileForm{
		FirstName:  strings.Repeat("a", maxNameLen+1),
		SecondName: strings.Repeat("b", maxNameLen+1),
		Bio:        strings.Repeat("c", maxDescriptionLen+1),
		Avatar:     []byte("junk"),
	}
	errs := form.Validate()
	assert.Contains(t, errs, "first_name")
	assert.Contains(t, errs, "second_name")
	assert.Contains(t, errs, "bio")
	assert.Contains(t, errs, "avatar")
}
