package validate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/familylane/memory-lane/internal/model"
)

var emailRx = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// mediaTypeRx accepts MIME types such as image/jpeg or video/mp4.
var mediaTypeRx = regexp.MustCompile(`^[a-z]+/[A-Za-z0-9.+\-]+$`)

const (
	maxTitle    = 200
	maxStory    = 20000
	maxLocation = 200
	maxTags     = 30
	maxTagLen   = 50
	maxMedia    = 50
	maxCaptions = 10000
)

func Email(v string) error {
	if v == "" {
		return fmt.Errorf("email is required")
	}
	if len(v) > 320 || !emailRx.MatchString(v) {
		return fmt.Errorf("invalid email")
	}
	return nil
}

func NonEmpty(field, v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field string, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// SaveMemory checks the shape of an add/edit form payload. Date formats are
// checked by the service, which knows the configured time zone.
func SaveMemory(req model.SaveMemoryRequest) error {
	if err := MaxLen("title", req.Title, maxTitle); err != nil {
		return err
	}
	if err := MaxLen("story", req.Story, maxStory); err != nil {
		return err
	}
	if err := MaxLen("location", req.Location, maxLocation); err != nil {
		return err
	}
	if err := MaxLen("captions", req.Captions, maxCaptions); err != nil {
		return err
	}
	if req.OwnerEmail != "" {
		if err := Email(req.OwnerEmail); err != nil {
			return fmt.Errorf("ownerEmail: %w", err)
		}
	}
	if len(req.Tags) > maxTags {
		return fmt.Errorf("at most %d tags allowed", maxTags)
	}
	for _, tag := range req.Tags {
		if err := MaxLen("tag", tag, maxTagLen); err != nil {
			return err
		}
	}
	if len(req.Media) > maxMedia {
		return fmt.Errorf("at most %d media items allowed", maxMedia)
	}
	for i, m := range req.Media {
		if err := NonEmpty(fmt.Sprintf("media[%d].url", i), m.URL); err != nil {
			return err
		}
		if m.Type != "" && !mediaTypeRx.MatchString(m.Type) {
			return fmt.Errorf("media[%d].type %q is not a MIME type", i, m.Type)
		}
	}
	return nil
}
