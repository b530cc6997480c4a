package main

import (
	"fmt"
	"io"
	"strings"

	"quiznight/services/player"
)

const (
	ColorReset  = "\033[0m"
	ColorRed    = "\033[31m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorBlue   = "\033[34m"

	clearScreen = "\033[H\033[2J"
)

func colorize(color, text string) string {
	return color + text + ColorReset
}

// renderSlide writes the current slide. In fullscreen mode the terminal is
// cleared first and the key help is left out.
func renderSlide(w io.Writer, quizName string, p *player.Player) {
	state := p.State()
	if state.Fullscreen {
		fmt.Fprint(w, clearScreen)
	}

	fmt.Fprintln(w, colorize(ColorRed, quizName))
	fmt.Fprintln(w, colorize(ColorYellow, p.Progress()))

	slide := p.Current()
	switch slide.Kind {
	case player.SlideCompleted:
		fmt.Fprintln(w, "Press q to exit the presentation.")
		return
	case player.SlidePictureGrid:
		fmt.Fprintf(w, "Round %d: %s\n\n", slide.RoundNumber, slide.Theme)
		for _, q := range slide.Grid {
			line := fmt.Sprintf("  %2d. %s", q.QuestionNumber, q.ImageURL)
			if slide.AnswerVisible {
				line += "  " + colorize(ColorGreen, q.AnswerText)
			}
			fmt.Fprintln(w, line)
		}
	case player.SlideQuestion:
		q := slide.Question
		fmt.Fprintf(w, "Round %d: %s\n\n", slide.RoundNumber, slide.Theme)
		fmt.Fprintln(w, colorize(ColorBlue, fmt.Sprintf("Q%d: %s", q.QuestionNumber, q.QuestionText)))
		if slide.Clip != nil {
			fmt.Fprintf(w, "  Clip: https://www.youtube.com/watch?v=%s&t=%ds (stop at %ds)\n", slide.Clip.VideoID, slide.Clip.Start, slide.Clip.End)
		}
		if slide.AudioURL != "" {
			fmt.Fprintf(w, "  Preview: %s\n", slide.AudioURL)
		}
		if q.HasImage() {
			fmt.Fprintf(w, "  Picture: %s\n", q.ImageURL)
		}
		if slide.AnswerVisible {
			fmt.Fprintln(w, colorize(ColorGreen, "Answer: "+q.AnswerText))
		}
	}

	if !state.Fullscreen {
		fmt.Fprintln(w, strings.Repeat("-", 40))
		fmt.Fprintln(w, "[n]ext  [p]revious  [a]nswer  [f]ullscreen  [q]uit")
	}
}

// apply runs one key command. It returns false when the user wants to exit.
func apply(p *player.Player, command string) bool {
	switch strings.ToLower(strings.TrimSpace(command)) {
	case "", "n", "next":
		p.Next()
	case "p", "prev", "previous":
		p.Previous()
	case "a", "answer":
		p.ToggleAnswer()
	case "f", "fullscreen":
		p.ToggleFullscreen()
	case "q", "quit", "exit":
		return false
	}
	return true
}
