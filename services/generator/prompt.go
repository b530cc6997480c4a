package generator

import (
	"fmt"
	"strings"

	"quiznight/models"
)

// categoryTemplate carries the instructions for one question category and
// the shape its search hints must take.
type categoryTemplate struct {
	Instructions string
	HintShape    string
	HintRule     string
}

const musicInstructions = `MUSIC QUESTION STYLES - Mix these formats:

1. Direct identification (40% of questions):
   - Question: "Identify this 1967 Beatles hit"
   - Search term: "The Beatles - Strawberry Fields Forever"
   - Answer: "Strawberry Fields Forever"

2. Lyric-based puzzles (30% of questions):
   - Question: "Which Beatles song contains the lyric 'nothing is real'?"
   - Search term: "The Beatles - Strawberry Fields Forever"
   - Answer: "Strawberry Fields Forever"

3. Year, chart or album questions (30% of questions):
   - Question: "This 1969 Beatles track was the final song on Abbey Road"
   - Search term: "The Beatles - The End"
   - Answer: "The End"

IMPORTANT: searchTerm must always be "Artist - Song Title" so the clip search finds the right recording.`

const filmInstructions = `FILM/TV QUESTION STYLES - Mix these formats:

1. Scene identification (40%):
   - Question: "In which film does Tom Hanks say 'Houston, we have a problem'?"
   - Search term: "Apollo 13 Houston we have a problem scene"
   - Answer: "Apollo 13"

2. Quote-based (30%):
   - Question: "Which film features the line 'I'll be back'?"
   - Search term: "Terminator I'll be back scene"
   - Answer: "The Terminator"

3. Plot or character questions (30%):
   - Question: "Name the 1994 film where a box of chocolates becomes a famous metaphor"
   - Search term: "Forrest Gump box of chocolates scene"
   - Answer: "Forrest Gump"

IMPORTANT: searchTerm must name the movie plus the key scene or quote.`

const pictureInstructions = `PICTURE ROUND - Generate visual identification questions:

1. Famous landmarks (30%):
   - Question: "Name this famous Italian landmark"
   - Search term: "Colosseum Rome ancient amphitheater architecture"
   - Answer: "The Colosseum"

2. Famous people (30%):
   - Question: "Who is this famous scientist?"
   - Search term: "Albert Einstein portrait photograph face"
   - Answer: "Albert Einstein"

3. Buildings and monuments WITHOUT visible text (20%):
   - Question: "Which famous London department store is this?"
   - Search term: "Harrods building exterior architecture facade London"
   - Answer: "Harrods"

4. Art and paintings (20%):
   - Question: "Name this famous painting"
   - Search term: "Mona Lisa painting Leonardo da Vinci artwork"
   - Answer: "Mona Lisa"

SEARCH TERM RULES TO AVOID TEXT IN IMAGES:
- Buildings and stores: use "exterior architecture", "facade" or "building view", never the business name alone
- Landmarks: add "architecture", "monument" or "structure" to get wider shots
- People: use "portrait photograph", "face closeup" or "headshot"
- NEVER use terms that show signage (avoid "sign", "logo", "storefront sign")
- Prefer distant architectural shots over close-up signage

GOOD: "Big Ben clock tower architecture London", "Sydney Opera House architectural structure"
BAD: "Harrods sign London", "McDonald's logo", "Hollywood sign California"`

func templateFor(c models.Category) categoryTemplate {
	switch c {
	case models.CategoryMusic:
		return categoryTemplate{
			Instructions: musicInstructions,
			HintShape:    "Artist - Song Title",
			HintRule:     `For music: searchTerm must be "Artist - Song Title" format`,
		}
	case models.CategoryFilm:
		return categoryTemplate{
			Instructions: filmInstructions,
			HintShape:    "Movie Title scene description",
			HintRule:     "For film: searchTerm should be the movie title plus a scene or quote description",
		}
	case models.CategoryPicture:
		return categoryTemplate{
			Instructions: pictureInstructions,
			HintShape:    "specific image description",
			HintRule:     "For picture: searchTerm should be a specific visual description with no visible text",
		}
	case models.CategoryHistory:
		return plainTemplate("HISTORY - Include dates, events and figures, and mix ancient, medieval and modern history.")
	case models.CategoryGeography:
		return plainTemplate("GEOGRAPHY - Include countries, capitals, landmarks, rivers, mountains and interesting facts.")
	case models.CategoryScience:
		return plainTemplate("SCIENCE - Cover physics, chemistry, biology and astronomy, and mix theoretical and practical questions.")
	case models.CategorySports:
		return plainTemplate("SPORTS - Include various sports, athletes, championships, records and memorable moments.")
	case models.CategoryFood:
		return plainTemplate("FOOD & DRINK - Include ingredients, origins, cooking methods, famous dishes and beverages.")
	case models.CategoryDecades:
		return plainTemplate("DECADES - Focus heavily on the decade(s) named in the request. Include pop culture, events and nostalgia.")
	case models.CategoryGeneral:
		return plainTemplate("GENERAL KNOWLEDGE - Vary question types and topics within the theme.")
	}
	return plainTemplate("GENERAL KNOWLEDGE - Vary question types and topics within the theme.")
}

func plainTemplate(instructions string) categoryTemplate {
	return categoryTemplate{
		Instructions: instructions,
		HintRule:     "No searchTerm needed for this question type",
	}
}

func difficultyGuidance(d models.Difficulty) string {
	switch d {
	case models.DifficultyEasy:
		return "Make the questions EASY difficulty - suitable for beginners, with straightforward answers that most people would know."
	case models.DifficultyHard:
		return "Make the questions HARD difficulty - expert level, with challenging obscure facts and detailed knowledge required."
	default:
		return "Make the questions MEDIUM difficulty - balanced challenge, requiring general knowledge but not too obscure."
	}
}

func closingGuidance(d models.Difficulty) string {
	switch d {
	case models.DifficultyEasy:
		return "Keep answers simple and well-known."
	case models.DifficultyHard:
		return "Include obscure facts and challenging details."
	default:
		return "Balance well-known and lesser-known facts."
	}
}

// buildPrompt assembles the single request sent to the language model. The
// request must already be normalized.
func buildPrompt(req models.GenerateRequest, avoid []string) string {
	tmpl := templateFor(req.Category)
	count := req.TargetCount()

	var b strings.Builder
	b.WriteString("You are a creative quiz master creating engaging pub quiz questions.\n\n")
	fmt.Fprintf(&b, "DIFFICULTY LEVEL: %s\n\n", difficultyGuidance(req.Difficulty))
	fmt.Fprintf(&b, "QUESTION TYPE: %s\n%s", strings.ToUpper(string(req.Category)), tmpl.Instructions)

	if req.Category == models.CategoryPicture {
		if req.ImageCount > 0 {
			fmt.Fprintf(&b, "\n\nIMPORTANT: Generate EXACTLY %d questions with images. All %d questions MUST have a searchTerm for image retrieval.", req.ImageCount, req.ImageCount)
		}
		b.WriteString("\n\nCRITICAL FOR PICTURE ROUNDS: search terms MUST avoid images with visible text, labels or signs that reveal the answer. Use \"architecture\", \"exterior\", \"facade\" or \"building view\" instead of \"sign\" or \"storefront\".")
	}

	fmt.Fprintf(&b, "\n\nUSER REQUEST: %s\n\n", req.Prompt)
	fmt.Fprintf(&b, "Generate EXACTLY %d questions. %s\n", count, closingGuidance(req.Difficulty))

	if len(avoid) > 0 {
		b.WriteString("\nThese questions were used in earlier quizzes. Do not repeat them or ask for the same answers:\n")
		for _, q := range avoid {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}

	b.WriteString("\nCRITICAL FORMATTING INSTRUCTIONS:\n")
	b.WriteString("- Return ONLY valid JSON, no additional text\n")
	fmt.Fprintf(&b, "- searchTerm: %q\n", tmpl.HintShape)
	fmt.Fprintf(&b, "- %s\n", tmpl.HintRule)
	fmt.Fprintf(&b, "\nThe reply must be one JSON object matching this JSON Schema:\n%s\n", replySchemaJSON())

	return b.String()
}
