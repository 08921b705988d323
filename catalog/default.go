package catalog

import "github.com/danielhkuo/meai-survey/models"

const (
	defaultTitle       = "MeAi Survey"
	defaultDescription = "Help us understand you better"
)

var (
	ratingOptions    = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10"}
	qualityOptions   = []string{"Excellent", "Good", "Fair", "Poor", "Very Poor"}
	oneToTen         = &models.Validation{Min: float(1), Max: float(10)}
	defaultQuestions = []models.Question{
		{
			ID: models.QuestionAgeGroup, Type: models.TypeSingleChoice, Text: "Age Group",
			Required: true, Locked: true, Order: 0,
			Options: []string{"13-17", "18-24", "25-34", "35-44", "45-50"},
		},
		{
			ID: models.QuestionPlaceOfLiving, Type: models.TypeSingleChoice, Text: "Place of Living",
			Required: true, Locked: true, Order: 1,
			Options: []string{"Urban", "Suburban", "Rural"},
		},
		{
			ID: "happiness_level", Type: models.TypeRating,
			Text:     "On a scale of 1-10, how happy are you with your current life?",
			Required: true, Order: 2, Options: ratingOptions, Validation: oneToTen,
		},
		{
			ID: "stress_level", Type: models.TypeRating,
			Text:     "How would you rate your stress level in the past week?",
			Required: true, Order: 3, Options: ratingOptions, Validation: oneToTen,
		},
		{
			ID: "social_connections", Type: models.TypeSingleChoice,
			Text:     "How satisfied are you with your social connections?",
			Required: true, Order: 4,
			Options:  []string{"Very Satisfied", "Satisfied", "Neutral", "Dissatisfied", "Very Dissatisfied"},
		},
		{
			ID: "work_life_balance", Type: models.TypeSingleChoice,
			Text:     "How would you describe your work-life balance?",
			Required: true, Order: 5, Options: qualityOptions,
		},
		{
			ID: "hobbies", Type: models.TypeMultipleChoice,
			Text:  "What activities do you enjoy? (Select all that apply)",
			Order: 6,
			Options: []string{"Reading", "Sports", "Music", "Art", "Cooking", "Gaming", "Traveling", "Other"},
		},
		{
			ID: "sleep_quality", Type: models.TypeSingleChoice,
			Text:     "How would you rate your sleep quality?",
			Required: true, Order: 7, Options: qualityOptions,
		},
		{
			ID: "health_rating", Type: models.TypeRating,
			Text:     "How would you rate your overall health?",
			Required: true, Order: 8, Options: ratingOptions, Validation: oneToTen,
		},
		{
			ID: "future_outlook", Type: models.TypeSingleChoice,
			Text:     "How do you feel about your future?",
			Required: true, Order: 9,
			Options:  []string{"Very Optimistic", "Optimistic", "Neutral", "Pessimistic", "Very Pessimistic"},
		},
		{
			ID: "additional_thoughts", Type: models.TypeLongText,
			Text:  "Is there anything else you would like to share?",
			Order: 10,
		},
	}
)

func float(f float64) *float64 { return &f }

// Default returns the built-in MeAi catalog.
func Default() *Catalog {
	c, err := New(defaultTitle, defaultDescription, defaultQuestions)
	if err != nil {
		panic("catalog: built-in catalog is invalid: " + err.Error())
	}
	return c
}
