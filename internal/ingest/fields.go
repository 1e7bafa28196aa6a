package ingest

import (
	"net/url"
	"regexp"
	"strings"
)

// ExtractedFields holds the values read off a job poster. Pointer fields are
// nil when the poster did not show the value.
type ExtractedFields struct {
	Title         *string `json:"title"`
	Company       *string `json:"company"`
	Location      *string `json:"location"`
	JobType       string  `json:"jobType"`
	Email         *string `json:"email"`
	ContactNumber *string `json:"contactNumber"`
	ApplyLink     *string `json:"applyLink"`
	Description   *string `json:"description"`
}

// JobTypes is the closed set of accepted job type labels.
var JobTypes = []string{"Full-time", "Part-time", "Internship", "Remote", "Hybrid", "Contract"}

const (
	DefaultJobType = "Full-time"
	maxDescription = 500
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// DefaultFields returns a zero-value extraction used when the model call
// fails or is not configured.
func DefaultFields() ExtractedFields {
	return ExtractedFields{JobType: DefaultJobType}
}

// NormalizeJobType maps a free-form label onto the closed job type set,
// matching case-insensitively and falling back to the default.
func NormalizeJobType(raw string) string {
	trimmed := strings.TrimSpace(raw)
	for _, jt := range JobTypes {
		if strings.EqualFold(trimmed, jt) {
			return jt
		}
	}
	return DefaultJobType
}

// ValidEmail reports whether s looks like an email address.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidApplyLink reports whether s parses as an absolute http(s) URL,
// retrying with an https:// prefix when the scheme is missing.
func ValidApplyLink(s string) (string, bool) {
	candidate := strings.TrimSpace(s)
	if candidate == "" {
		return "", false
	}
	if u, err := url.ParseRequestURI(candidate); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return candidate, true
	}
	prefixed := "https://" + candidate
	if u, err := url.ParseRequestURI(prefixed); err == nil && u.Host != "" && strings.Contains(u.Host, ".") {
		return prefixed, true
	}
	return "", false
}

// SanitizeFields cleans a raw extraction in place and returns it. Whitespace
// is trimmed, the job type is normalized onto the closed set, invalid emails
// and links are dropped, and the description is capped. Sanitizing an
// already-sanitized value is a no-op.
func SanitizeFields(f ExtractedFields) ExtractedFields {
	f.Title = cleanString(f.Title)
	f.Company = cleanString(f.Company)
	f.Location = cleanString(f.Location)
	f.ContactNumber = cleanString(f.ContactNumber)
	f.JobType = NormalizeJobType(f.JobType)

	if f.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*f.Email))
		if ValidEmail(email) {
			f.Email = &email
		} else {
			f.Email = nil
		}
	}

	if f.ApplyLink != nil {
		if link, ok := ValidApplyLink(*f.ApplyLink); ok {
			f.ApplyLink = &link
		} else {
			f.ApplyLink = nil
		}
	}

	if f.Description != nil {
		desc := strings.TrimSpace(*f.Description)
		// Cap on runes, not bytes, so a multi-byte character is never split.
		if runes := []rune(desc); len(runes) > maxDescription {
			desc = strings.TrimSpace(string(runes[:maxDescription]))
		}
		if desc == "" {
			f.Description = nil
		} else {
			f.Description = &desc
		}
	}

	return f
}

func cleanString(p *string) *string {
	if p == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*p)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
