package ingest

import "math"

// scoredFields are the fields that count toward extraction confidence.
const scoredFields = 6

// Score computes the extraction confidence as the rounded percentage of
// scored fields that came back non-empty. JobType always has a value and is
// deliberately excluded, as is the description.
func Score(f ExtractedFields) int {
	filled := 0
	for _, p := range []*string{f.Title, f.Company, f.Location, f.Email, f.ContactNumber, f.ApplyLink} {
		if p != nil && *p != "" {
			filled++
		}
	}
	return int(math.Round(100 * float64(filled) / scoredFields))
}
