package internal

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"
)

// Recommender finds follow-up videos for a topic via the YouTube Data API
type Recommender struct {
	apiKey     string
	maxResults int
	verbose    bool
}

// NewRecommender creates a new roadmap recommender
func NewRecommender(apiKey string, maxResults int, verbose bool) *Recommender {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Recommender{
		apiKey:     apiKey,
		maxResults: maxResults,
		verbose:    verbose,
	}
}

// Recommendations searches YouTube for videos matching the topic at the given
// learning level, ordered by relevance.
func (r *Recommender) Recommendations(ctx context.Context, topic string, level LearningLevel) ([]RecommendationEntry, error) {
	if err := ValidateYouTubeAPIKey(r.apiKey); err != nil {
		return nil, err
	}

	service, err := youtube.NewService(ctx, option.WithAPIKey(r.apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating YouTube service: %w", err)
	}

	query := fmt.Sprintf("%s for %s tutorial", topic, level.QueryForm())
	if r.verbose {
		fmt.Printf("Searching YouTube for %q\n", query)
	}

	response, err := service.Search.List([]string{"snippet"}).
		Q(query).
		MaxResults(int64(r.maxResults)).
		Type("video").
		RelevanceLanguage("en").
		Order("relevance").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("searching videos: %w", err)
	}

	var recommendations []RecommendationEntry
	for _, item := range response.Items {
		if item.Id == nil || item.Id.VideoId == "" || item.Snippet == nil {
			continue
		}
		entry := RecommendationEntry{
			Title: item.Snippet.Title,
			URL:   "https://www.youtube.com/watch?v=" + item.Id.VideoId,
		}
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			entry.Thumbnail = item.Snippet.Thumbnails.High.Url
		}
		recommendations = append(recommendations, entry)
	}

	if r.verbose {
		fmt.Printf("Found %d recommendations\n", len(recommendations))
	}
	return recommendations, nil
}
