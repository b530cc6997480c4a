package enrichment

import (
	"context"
	"sort"
	"strings"

	"quiznight/models"
	"quiznight/services/search"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// VideoCandidates returns every video the search offers for a hint, best
// title match first, so the user can replace an automatic pick.
func (e *Enricher) VideoCandidates(ctx context.Context, hint string) ([]models.Video, error) {
	if e.videos == nil {
		return nil, search.ErrNotConfigured
	}
	videos, err := e.videos.SearchVideos(ctx, hint)
	if err != nil {
		return nil, err
	}
	RankVideos(hint, videos)
	return videos, nil
}

// RankVideos orders videos by how many hint words their titles contain,
// then by overall closeness to the hint, then by search order.
func RankVideos(hint string, videos []models.Video) {
	words := strings.Fields(strings.ToLower(strings.ReplaceAll(hint, " - ", " ")))

	scores := make(map[string]int, len(videos))
	distances := make(map[string]int, len(videos))
	for _, v := range videos {
		title := strings.ToLower(v.Title)
		matched := 0
		for _, w := range words {
			if fuzzy.MatchFold(w, title) {
				matched++
			}
		}
		scores[v.VideoID] = matched

		distance := fuzzy.RankMatchFold(strings.ToLower(hint), title)
		if distance < 0 {
			distance = len(title) + len(hint)
		}
		distances[v.VideoID] = distance
	}

	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i].VideoID, videos[j].VideoID
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return distances[a] < distances[b]
	})
}
