package services

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// MaxImagesPerNote caps how many image URLs one suggestion request
	// may carry.
	MaxImagesPerNote = 5

	imageHost = "res.cloudinary.com"
)

// ValidateImages checks a list of candidate image URLs against the
// upload whitelist: only HTTPS Cloudinary delivery URLs, at most
// MaxImagesPerNote of them. Validation is all-or-nothing and purely
// syntactic; no network calls are made. On success the input is
// returned unchanged, order preserved.
func ValidateImages(images []string) ([]string, error) {
	validated := make([]string, 0, len(images))

	for i, raw := range images {
		if i >= MaxImagesPerNote {
			return nil, &ImageValidationError{
				Reason:  "TOO_MANY_IMAGES",
				Message: fmt.Sprintf("at most %d images can be attached", MaxImagesPerNote),
			}
		}

		u, err := url.Parse(raw)
		if err != nil || u.Host == "" {
			return nil, &ImageValidationError{
				Reason:  "INVALID_FORMAT",
				Message: "invalid image URL format",
			}
		}

		if u.Host != imageHost {
			return nil, &ImageValidationError{
				Reason:  "DISALLOWED_SOURCE",
				Message: "only Cloudinary images are allowed; upload through the provided widget",
			}
		}

		if u.Scheme != "https" {
			return nil, &ImageValidationError{
				Reason:  "INSECURE_PROTOCOL",
				Message: "images must use the secure HTTPS protocol",
			}
		}

		validated = append(validated, raw)
	}

	return validated, nil
}

// OptimizeImageURLs rewrites Cloudinary delivery URLs to request an
// auto-quality, auto-format, width-capped rendition. URLs that are not
// recognized Cloudinary upload paths pass through untouched. Pure
// string transform.
func OptimizeImageURLs(images []string) []string {
	optimized := make([]string, len(images))
	for i, img := range images {
		if u, err := url.Parse(img); err == nil && u.Host == imageHost && strings.Contains(img, "/upload/") {
			optimized[i] = strings.Replace(img, "/upload/", "/upload/q_auto,f_auto,w_1200/", 1)
			continue
		}
		optimized[i] = img
	}
	return optimized
}
