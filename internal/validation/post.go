package validation

import "strings"

const (
	maxDescriptionLen = 5000
	maxTagLen         = 100
	maxTagsPerPost    = 20
)

// PostForm carries the raw post creation input. Owner, publish timestamp,
// like set, author name and preview are computed by the content service and
// never accepted from the caller.
type PostForm struct {
	MainImage   []byte
	Description string
	Tags        []string
}

// Validate checks the post form and returns field-scoped errors.
func (f *PostForm) Validate() FieldErrors {
	errs := FieldErrors{}

	if err := ValidateImage(f.MainImage); err != nil {
		errs["main_image"] = err.Error()
	}

	f.Description = strings.TrimSpace(f.Description)
	if len(f.Description) > maxDescriptionLen {
		errs["description"] = "description too long"
	}

	f.Tags = NormalizeTags(f.Tags)
	if len(f.Tags) > maxTagsPerPost {
		errs["tags"] = "too many tags"
	}
	for _, tag := range f.Tags {
		if len(tag) > maxTagLen {
			errs["tags"] = "tag too long"
			break
		}
	}

	return errs
}

// NormalizeTags trims whitespace and drops empties and duplicates while
// keeping input order.
func NormalizeTags(tags []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(tags))
	for _, raw := range tags {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// ParseTagList splits a comma-separated tags input field.
func ParseTagList(raw string) []string {
	return NormalizeTags(strings.Split(raw, ","))
}
