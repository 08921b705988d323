package analytics

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/meai-survey/catalog"
	"github.com/danielhkuo/meai-survey/models"
	"github.com/danielhkuo/meai-survey/store"
)

func dated(id string, day string, age, place string) models.Submission {
	ts, _ := time.Parse("2006-01-02 15:04", day)
	answers := models.Answers{}
	if age != "" {
		answers[models.QuestionAgeGroup] = models.TextAnswer(age)
	}
	if place != "" {
		answers[models.QuestionPlaceOfLiving] = models.TextAnswer(place)
	}
	return models.Submission{ID: id, Timestamp: ts, Answers: answers}
}

func ids(subs []models.Submission) []string {
	out := make([]string, len(subs))
	for i, s := range subs {
		out[i] = s.ID
	}
	return out
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter(url.Values{
		"startDate":     {"2025-01-01"},
		"endDate":       {"2025-01-31"},
		"ageGroup":      {" 18-24 "},
		"placeOfLiving": {"Urban"},
	})
	require.NoError(t, err)
	assert.Equal(t, Filter{StartDate: "2025-01-01", EndDate: "2025-01-31", AgeGroup: "18-24", PlaceOfLiving: "Urban"}, f)

	f, err = ParseFilter(url.Values{})
	require.NoError(t, err)
	assert.True(t, f.IsZero())
}

func TestParseFilter_Errors(t *testing.T) {
	tests := []struct {
		name string
		q    url.Values
	}{
		{"bad start", url.Values{"startDate": {"01/02/2025"}}},
		{"bad end", url.Values{"endDate": {"2025-13-01"}}},
		{"reversed", url.Values{"startDate": {"2025-02-01"}, "endDate": {"2025-01-01"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseFilter(tt.q)
			assert.Error(t, err)
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	subs := []models.Submission{
		dated("1", "2025-01-01 00:00", "18-24", "Urban"),
		dated("2", "2025-01-15 23:59", "25-34", "Urban"),
		dated("3", "2025-01-31 12:00", "18-24", "Rural"),
		dated("4", "2025-02-01 00:00", "18-24", "Urban"),
		{ID: "5", Answers: models.Answers{models.QuestionAgeGroup: models.TextAnswer("18-24")}},
	}

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero", Filter{}, []string{"1", "2", "3", "4", "5"}},
		{"inclusive range", Filter{StartDate: "2025-01-01", EndDate: "2025-01-31"}, []string{"1", "2", "3"}},
		{"start only", Filter{StartDate: "2025-01-31"}, []string{"3", "4"}},
		{"age", Filter{AgeGroup: "18-24"}, []string{"1", "3", "4", "5"}},
		{"age and place", Filter{AgeGroup: "18-24", PlaceOfLiving: "Urban"}, []string{"1", "4"}},
		{"no match", Filter{PlaceOfLiving: "Suburban"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(tt.filter.Apply(subs)))
		})
	}
}

type failingStore struct{ store.Unavailable }

func (failingStore) ListAll(context.Context) ([]models.Submission, error) {
	return nil, errors.New("corrupt page")
}

func TestService_Report(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Append(ctx, dated("1", "2025-01-01 10:00", "18-24", "Urban")))
	require.NoError(t, st.Append(ctx, dated("2", "2025-03-01 10:00", "25-34", "Rural")))

	svc := NewService(st, catalog.Default())

	r, err := svc.Report(ctx, Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Summary.TotalSubmissions)

	r, err = svc.Report(ctx, Filter{EndDate: "2025-02-01"})
	require.NoError(t, err)
	assert.Equal(t, 1, r.Summary.TotalSubmissions)
	assert.Equal(t, `{"18-24":1}`, mustJSON(t, r.Summary.AgeGroupCounts))
}

func TestService_UnavailableGivesEmptyReport(t *testing.T) {
	svc := NewService(store.Unavailable{}, catalog.Default())

	r, err := svc.Report(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Summary.TotalSubmissions)
	assert.Equal(t, 0, r.Summary.AverageCompletionTime)

	subs, err := svc.Submissions(context.Background(), Filter{})
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestService_StoreErrorIsReturned(t *testing.T) {
	svc := NewService(failingStore{}, catalog.Default())

	_, err := svc.Report(context.Background(), Filter{})
	assert.Error(t, err)
}
