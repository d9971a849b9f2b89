package validation

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"

	_ "golang.org/x/image/webp" // register WebP decoder
)

// MaxImageSizeBytes caps uploads; anything larger is rejected before decoding.
const MaxImageSizeBytes = 10 * 1024 * 1024

var allowedImageMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

// ValidateImage checks that content is a well-formed image of an accepted
// format and within the size limit.
func ValidateImage(content []byte) error {
	if len(content) == 0 {
		return fmt.Errorf("no file uploaded")
	}
	if len(content) > MaxImageSizeBytes {
		return fmt.Errorf("file too large (max %dMB)", MaxImageSizeBytes/(1024*1024))
	}

	detectedType := http.DetectContentType(content)
	if _, ok := allowedImageMIMEs[detectedType]; !ok {
		return fmt.Errorf("invalid image type %q", detectedType)
	}

	if _, _, err := image.Decode(bytes.NewReader(content)); err != nil {
		return fmt.Errorf("invalid image file")
	}
	return nil
}

// ValidateImageBatch validates an optional gallery of images. An empty batch
// is fine; every present file must be a well-formed image.
func ValidateImageBatch(contents [][]byte) FieldErrors {
	errs := FieldErrors{}
	for i, content := range contents {
		if err := ValidateImage(content); err != nil {
			errs[fmt.Sprintf("images[%d]", i)] = err.Error()
		}
	}
	return errs
}
