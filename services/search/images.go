package search

import (
	"context"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"quiznight/models"

	"github.com/samber/lo"
)

const (
	imageSearchURL   = "https://www.googleapis.com/customsearch/v1"
	maxImageURLBytes = 2000
)

// Hosts whose images are preferred for picture rounds.
var trustedImageSources = []string{"wikipedia", "wikimedia", "britannica"}

type ImageClient struct {
	apiKey         string
	searchEngineID string
	baseURL        string
	httpClient     *http.Client
}

func NewImageClient(apiKey, searchEngineID string, httpClient *http.Client) *ImageClient {
	return &ImageClient{
		apiKey:         apiKey,
		searchEngineID: searchEngineID,
		baseURL:        imageSearchURL,
		httpClient:     defaultHTTPClient(httpClient),
	}
}

func (c *ImageClient) Configured() bool {
	return c != nil && c.apiKey != "" && c.searchEngineID != ""
}

type imageSearchResponse struct {
	Items []struct {
		Link        string `json:"link"`
		Title       string `json:"title"`
		DisplayLink string `json:"displayLink"`
		Image       struct {
			ThumbnailLink string `json:"thumbnailLink"`
		} `json:"image"`
	} `json:"items"`
}

// SearchImages queries the custom search engine for large, safe images.
// Unusable links are dropped and encyclopedic sources are moved to the front;
// otherwise the API order is kept.
func (c *ImageClient) SearchImages(ctx context.Context, term string) ([]models.Image, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, ErrMissingSearchTerm
	}
	if !c.Configured() {
		log.Printf("[WARN] Image search not configured, picture rounds disabled")
		return nil, ErrNotConfigured
	}

	log.Printf("[INFO] Searching images for %q", term)

	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("cx", c.searchEngineID)
	params.Set("q", term)
	params.Set("searchType", "image")
	params.Set("num", "10")
	params.Set("imgSize", "large")
	params.Set("safe", "active")

	req, err := newGet(ctx, c.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var payload imageSearchResponse
	if err := doJSON(c.httpClient, req, "image search", &payload); err != nil {
		log.Printf("[ERROR] Image search for %q failed: %v", term, err)
		return nil, err
	}

	images := make([]models.Image, 0, len(payload.Items))
	for _, item := range payload.Items {
		if !usableImageLink(item.Link) {
			continue
		}
		thumbnail := item.Image.ThumbnailLink
		if thumbnail == "" {
			thumbnail = item.Link
		}
		images = append(images, models.Image{
			URL:       item.Link,
			Thumbnail: thumbnail,
			Title:     item.Title,
			Source:    item.DisplayLink,
			Priority:  sourcePriority(item.DisplayLink),
		})
	}

	sort.SliceStable(images, func(i, j int) bool {
		return images[i].Priority > images[j].Priority
	})

	log.Printf("[INFO] Image search returned %d usable images for %q", len(images), term)
	return images, nil
}

func usableImageLink(link string) bool {
	if link == "" || len(link) >= maxImageURLBytes {
		return false
	}
	lower := strings.ToLower(link)
	return !strings.Contains(lower, "data:image") && !strings.Contains(lower, "javascript:")
}

func sourcePriority(displayLink string) int {
	if lo.SomeBy(trustedImageSources, func(s string) bool {
		return strings.Contains(displayLink, s)
	}) {
		return 1
	}
	return 0
}
