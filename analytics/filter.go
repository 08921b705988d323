package analytics

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/danielhkuo/meai-survey/models"
)

const dateLayout = "2006-01-02"

// Filter narrows the submissions a report or export covers. Zero fields
// do not filter. Dates are inclusive UTC calendar days.
type Filter struct {
	StartDate     string
	EndDate       string
	AgeGroup      string
	PlaceOfLiving string
}

// ParseFilter reads startDate, endDate, ageGroup and placeOfLiving.
func ParseFilter(q url.Values) (Filter, error) {
	f := Filter{
		StartDate:     strings.TrimSpace(q.Get("startDate")),
		EndDate:       strings.TrimSpace(q.Get("endDate")),
		AgeGroup:      strings.TrimSpace(q.Get("ageGroup")),
		PlaceOfLiving: strings.TrimSpace(q.Get("placeOfLiving")),
	}
	if err := f.Validate(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func (f Filter) Validate() error {
	dates := []struct{ name, value string }{
		{"startDate", f.StartDate},
		{"endDate", f.EndDate},
	}
	for _, d := range dates {
		if d.value == "" {
			continue
		}
		if _, err := time.Parse(dateLayout, d.value); err != nil {
			return fmt.Errorf("%s must be YYYY-MM-DD", d.name)
		}
	}
	if f.StartDate != "" && f.EndDate != "" && f.StartDate > f.EndDate {
		return errors.New("startDate must not be after endDate")
	}
	return nil
}

func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Match reports whether sub passes the filter.
func (f Filter) Match(sub models.Submission) bool {
	if f.StartDate != "" || f.EndDate != "" {
		if sub.Timestamp.IsZero() {
			return false
		}
		day := sub.Timestamp.UTC().Format(dateLayout)
		if f.StartDate != "" && day < f.StartDate {
			return false
		}
		if f.EndDate != "" && day > f.EndDate {
			return false
		}
	}
	if f.AgeGroup != "" {
		if v, ok := demographic(sub.Answers, models.QuestionAgeGroup); !ok || v != f.AgeGroup {
			return false
		}
	}
	if f.PlaceOfLiving != "" {
		if v, ok := demographic(sub.Answers, models.QuestionPlaceOfLiving); !ok || v != f.PlaceOfLiving {
			return false
		}
	}
	return true
}

// Apply keeps the submissions that match, in order.
func (f Filter) Apply(subs []models.Submission) []models.Submission {
	if f.IsZero() {
		return subs
	}
	out := make([]models.Submission, 0, len(subs))
	for _, sub := range subs {
		if f.Match(sub) {
			out = append(out, sub)
		}
	}
	return out
}
