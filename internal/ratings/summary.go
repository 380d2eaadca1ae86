package ratings

import "philcali.me/mealplanner/internal/data"

// Summary is the rating aggregate of one recipe. Average is nil without
// reviews, never zero.
type Summary struct {
	Average *float64 `json:"avg_rating"`
	Count   int      `json:"review_count"`
}

func Summarize(reviews []data.ReviewDTO) Summary {
	if len(reviews) == 0 {
		return Summary{}
	}
	total := 0
	for _, review := range reviews {
		total += review.Rating
	}
	average := float64(total) / float64(len(reviews))
	return Summary{
		Average: &average,
		Count:   len(reviews),
	}
}
