package printing

import (
	"fmt"
	"io"
	"log"

	"quiznight/models"

	"github.com/xuri/excelize/v2"
)

const masterSheetName = "Master Sheet"

var masterSheetHeaders = []interface{}{
	"Round", "Theme", "Question #", "Type", "Question", "Answer", "Picture", "Clip", "Audio Preview",
}

// WriteMasterSheetXLSX writes every question and answer of the quiz as one
// spreadsheet row.
func WriteMasterSheetXLSX(w io.Writer, tree *models.QuizTree) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", masterSheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	sw, err := f.NewStreamWriter(masterSheetName)
	if err != nil {
		return fmt.Errorf("failed to create stream writer: %w", err)
	}

	if err := sw.SetRow("A1", masterSheetHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	rowNum := 2
	for _, round := range tree.Rounds {
		for _, q := range round.Questions {
			row := []interface{}{
				round.RoundNumber,
				cellText(round.Theme),
				q.QuestionNumber,
				string(q.Category),
				cellText(q.QuestionText),
				cellText(q.AnswerText),
				q.ImageURL,
				clipLabel(q.Media),
				q.AudioPreviewURL,
			}
			cell, err := excelize.CoordinatesToCellName(1, rowNum)
			if err != nil {
				return fmt.Errorf("failed to address row %d: %w", rowNum, err)
			}
			if err := sw.SetRow(cell, row); err != nil {
				return fmt.Errorf("failed to write row %d: %w", rowNum, err)
			}
			rowNum++
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("failed to flush spreadsheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		log.Printf("[ERROR] Failed to write master sheet for quiz %s: %v", tree.ID, err)
		return fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	return nil
}

// cellText stops spreadsheet apps from reading quiz text as a formula.
func cellText(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}
