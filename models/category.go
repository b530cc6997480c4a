package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Category string

const (
	CategoryGeneral   Category = "general"
	CategoryMusic     Category = "music"
	CategoryFilm      Category = "film"
	CategoryHistory   Category = "history"
	CategoryGeography Category = "geography"
	CategoryScience   Category = "science"
	CategorySports    Category = "sports"
	CategoryFood      Category = "food"
	CategoryDecades   Category = "decades"
	CategoryPicture   Category = "picture"
)

var Categories = []Category{
	CategoryGeneral,
	CategoryMusic,
	CategoryFilm,
	CategoryHistory,
	CategoryGeography,
	CategoryScience,
	CategorySports,
	CategoryFood,
	CategoryDecades,
	CategoryPicture,
}

type MediaKind int

const (
	MediaNone MediaKind = iota
	MediaVideo
	MediaImage
)

func (k MediaKind) String() string {
	switch k {
	case MediaVideo:
		return "video"
	case MediaImage:
		return "image"
	default:
		return "none"
	}
}

func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("unknown question type %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	switch c {
	case CategoryGeneral, CategoryMusic, CategoryFilm, CategoryHistory, CategoryGeography,
		CategoryScience, CategorySports, CategoryFood, CategoryDecades, CategoryPicture:
		return true
	}
	return false
}

// MediaKind is the kind of media the category may attach.
func (c Category) MediaKind() MediaKind {
	switch c {
	case CategoryMusic, CategoryFilm:
		return MediaVideo
	case CategoryPicture:
		return MediaImage
	case CategoryGeneral, CategoryHistory, CategoryGeography, CategoryScience,
		CategorySports, CategoryFood, CategoryDecades:
		return MediaNone
	}
	return MediaNone
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if strings.TrimSpace(s) == "" {
		*c = ""
		return nil
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty maps an empty tag to medium.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}
