package models

type GenerateRequest struct {
	Prompt     string     `json:"prompt"`
	Category   Category   `json:"type"`
	Difficulty Difficulty `json:"difficulty"`
	Count      int        `json:"count"`
	ImageCount int        `json:"imageCount,omitempty"`
	Enrich     bool       `json:"enrich,omitempty"`
}

// TargetCount is the number of questions the request asks for. Picture
// rounds with an image count use it instead of the question count.
func (r GenerateRequest) TargetCount() int {
	if r.Category == CategoryPicture && r.ImageCount > 0 {
		return r.ImageCount
	}
	return r.Count
}

// GeneratedQuestion is a draft question as produced by the generator and
// edited on the client before saving.
type GeneratedQuestion struct {
	Question   string   `json:"question"`
	Answer     string   `json:"answer"`
	Category   Category `json:"type"`
	SearchHint string   `json:"searchTerm,omitempty"`

	YouTubeVideoID      string `json:"youtubeVideoId,omitempty"`
	YouTubeStartSeconds *int   `json:"youtubeStartSeconds,omitempty"`
	YouTubeEndSeconds   *int   `json:"youtubeEndSeconds,omitempty"`
	ImageURL            string `json:"imageUrl,omitempty"`
	AudioPreviewURL     string `json:"spotifyPreviewUrl,omitempty"`
}

func (q GeneratedQuestion) Media() Media {
	return Media{
		YouTubeVideoID:      q.YouTubeVideoID,
		YouTubeStartSeconds: q.YouTubeStartSeconds,
		YouTubeEndSeconds:   q.YouTubeEndSeconds,
		ImageURL:            q.ImageURL,
		AudioPreviewURL:     q.AudioPreviewURL,
	}
}

type GenerateResponse struct {
	Questions []GeneratedQuestion `json:"questions"`
}

type SearchRequest struct {
	SearchTerm string `json:"searchTerm"`
}

type Video struct {
	VideoID      string `json:"videoId"`
	Title        string `json:"title"`
	Thumbnail    string `json:"thumbnail"`
	ChannelTitle string `json:"channelTitle"`
}

type Image struct {
	URL       string `json:"url"`
	Thumbnail string `json:"thumbnail"`
	Title     string `json:"title"`
	Source    string `json:"source"`
	Priority  int    `json:"priority"`
}

// AudioPreview is a track preview. A nil PreviewURL means no preview was
// available, which is not an error.
type AudioPreview struct {
	PreviewURL *string `json:"previewUrl"`
	TrackName  string  `json:"trackName"`
	Artist     string  `json:"artist"`
	Error      string  `json:"error,omitempty"`
}

func (p AudioPreview) Available() bool {
	return p.PreviewURL != nil && *p.PreviewURL != ""
}
