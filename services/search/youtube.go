package search

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"strings"

	"quiznight/models"

	"github.com/samber/lo"
)

const (
	youtubeSearchURL  = "https://www.googleapis.com/youtube/v3/search"
	youtubeMaxResults = "3"
)

type YouTubeClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewYouTubeClient(apiKey string, httpClient *http.Client) *YouTubeClient {
	return &YouTubeClient{
		apiKey:     apiKey,
		baseURL:    youtubeSearchURL,
		httpClient: defaultHTTPClient(httpClient),
	}
}

type youtubeSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
		Snippet struct {
			Title        string `json:"title"`
			ChannelTitle string `json:"channelTitle"`
			Thumbnails   struct {
				Medium struct {
					URL string `json:"url"`
				} `json:"medium"`
			} `json:"thumbnails"`
		} `json:"snippet"`
	} `json:"items"`
}

// SearchVideos returns up to three videos in the order the API ranks them.
func (c *YouTubeClient) SearchVideos(ctx context.Context, term string) ([]models.Video, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrMissingSearchTerm
	}
	if c.apiKey == "" {
		return nil, ErrNotConfigured
	}

	log.Printf("[INFO] Searching YouTube for %q", term)

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", term)
	params.Set("type", "video")
	params.Set("maxResults", youtubeMaxResults)
	params.Set("key", c.apiKey)

	req, err := newGet(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload youtubeSearchResponse
	if err := doJSON(c.httpClient, req, "youtube search", &payload); err != nil {
		log.Printf("[ERROR] YouTube search for %q failed: %v", term, err)
		return nil, err
	}

	videos := make([]models.Video, 0, len(payload.Items))
	for _, item := range payload.Items {
		if item.ID.VideoID == "" {
			continue
		}
		videos = append(videos, models.Video{
			VideoID:      item.ID.VideoID,
			Title:        item.Snippet.Title,
			Thumbnail:    item.Snippet.Thumbnails.Medium.URL,
			ChannelTitle: item.Snippet.ChannelTitle,
		})
	}

	log.Printf("[INFO] YouTube returned %d videos for %q: %v", len(videos), term,
		lo.Map(videos, func(v models.Video, _ int) string { return v.VideoID }))
	return videos, nil
}
