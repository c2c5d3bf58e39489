// Package export writes batch results to an Excel workbook for hiring
// managers who live in spreadsheets rather than JSON.
package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rsavchuk/talentflow/internal/models"

	"github.com/xuri/excelize/v2"
)

const (
	summarySheet    = "Summary"
	candidatesSheet = "Ranked Candidates"
)

// ToExcel writes the batch result to an .xlsx workbook at outputPath.
func ToExcel(result *models.Result, job *models.JobDescription, outputPath string) error {
	if result == nil {
		return fmt.Errorf("result is required")
	}

	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	f.SetSheetName("Sheet1", summarySheet)
	if _, err := f.NewSheet(candidatesSheet); err != nil {
		return fmt.Errorf("create candidates sheet: %w", err)
	}

	if err := writeSummarySheet(f, result, job); err != nil {
		return fmt.Errorf("write summary sheet: %w", err)
	}

	if err := writeCandidatesSheet(f, result.RankedCandidates); err != nil {
		return fmt.Errorf("write candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	return nil
}

func writeSummarySheet(f *excelize.File, result *models.Result, job *models.JobDescription) error {
	if err := f.SetColWidth(summarySheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(summarySheet, "B", "B", 50); err != nil {
		return err
	}

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return err
	}

	f.SetCellValue(summarySheet, "A1", "Recruitment Batch Report")
	f.SetCellStyle(summarySheet, "A1", "B1", titleStyle)
	f.MergeCell(summarySheet, "A1", "B1")

	rows := [][2]any{
		{"Batch ID", result.BatchID},
		{"Status", result.Status},
	}

	if job != nil {
		rows = append(rows,
			[2]any{"Position", job.Title},
			[2]any{"Required Skills", strings.Join(job.RequiredSkills, ", ")},
		)
	}

	if s := result.ProcessingSummary; s != nil {
		rows = append(rows,
			[2]any{"Total Resumes", s.TotalResumes},
			[2]any{"Successfully Parsed", s.SuccessfullyParsed},
			[2]any{"Evaluation Failures", s.EvaluationFailures},
			[2]any{"Qualified Candidates", s.QualifiedCandidates},
			[2]any{"Interviews Scheduled", s.InterviewsScheduled},
		)
	}

	for i, row := range rows {
		cell := i + 3
		f.SetCellValue(summarySheet, fmt.Sprintf("A%d", cell), row[0])
		f.SetCellStyle(summarySheet, fmt.Sprintf("A%d", cell), fmt.Sprintf("A%d", cell), labelStyle)
		f.SetCellValue(summarySheet, fmt.Sprintf("B%d", cell), row[1])
	}

	return nil
}

func writeCandidatesSheet(f *excelize.File, candidates []models.RankedCandidate) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	headers := []string{
		"Rank", "Name", "Email", "Phone",
		"Overall Score", "Skills Match", "Cultural Fit", "Experience",
		"Tier", "Recommendation", "Missing Skills",
	}

	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		f.SetCellValue(candidatesSheet, cell, header)
		f.SetCellStyle(candidatesSheet, cell, cell, headerStyle)
	}

	for row, candidate := range candidates {
		missing := make([]string, 0, len(candidate.MissingSkills))
		for _, skill := range candidate.MissingSkills {
			missing = append(missing, skill.Skill)
		}

		values := []any{
			row + 1,
			candidate.Name,
			candidate.Email,
			candidate.Phone,
			candidate.OverallScore,
			candidate.SkillsMatchScore,
			candidate.CulturalFitScore,
			candidate.ExperienceScore,
			candidate.Tier,
			candidate.Recommendation,
			strings.Join(missing, ", "),
		}

		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			f.SetCellValue(candidatesSheet, cell, value)
		}
	}

	return nil
}
