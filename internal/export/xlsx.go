// Package export writes the ledger to a spreadsheet.
package export

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/theirongolddev/selforge/internal/model"

	"github.com/xuri/excelize/v2"
)

// Sheet names, in workbook order.
const (
	SheetDays       = "Days"
	SheetFood       = "Food"
	SheetActivities = "Activities"
	SheetStudy      = "Study"
	SheetStreaks    = "Streaks"
)

type sheet struct {
	name   string
	header []string
	widths []float64
	rows   [][]any
}

// WriteXLSX writes days (as summarized for the export window) and every
// recorded entry in st as an .xlsx workbook.
func WriteXLSX(w io.Writer, st model.AppState, days []model.DaySummary) error {
	f := excelize.NewFile()
	defer f.Close()

	sheets := []sheet{
		daysSheet(days),
		foodSheet(st),
		activitiesSheet(st),
		studySheet(st),
		streaksSheet(st),
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sh.name); err != nil {
				return fmt.Errorf("naming sheet %s: %w", sh.name, err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("creating sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, bold); err != nil {
			return fmt.Errorf("writing sheet %s: %w", sh.name, err)
		}
	}
	f.SetActiveSheet(0)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh sheet, headerStyle int) error {
	header := make([]any, len(sh.header))
	for i, h := range sh.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sh.name, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(sh.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sh.name, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, row := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sh.name, cell, &row); err != nil {
			return err
		}
	}

	for i, width := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func daysSheet(days []model.DaySummary) sheet {
	sh := sheet{
		name: SheetDays,
		header: []string{"Date", "Goals", "Completed", "Counts", "Eaten (kcal)", "Burned (kcal)",
			"Net (kcal)", "Protein (g)", "Sugar (g)", "School", "Study done"},
		widths: []float64{12, 44, 10, 8, 12, 13, 10, 11, 10, 8, 11},
	}
	for _, d := range days {
		var goals []string
		for _, k := range model.GoalKeys {
			if d.Goals.Get(k) {
				goals = append(goals, string(k))
			}
		}
		sh.rows = append(sh.rows, []any{
			d.Key, strings.Join(goals, ", "), d.GoalsCompleted, yesNo(d.Qualifies),
			d.CaloriesEaten, d.CaloriesBurned, d.NetCalories, d.Protein, d.Sugar,
			yesNo(d.WentToSchool), d.StudyDone,
		})
	}
	return sh
}

func foodSheet(st model.AppState) sheet {
	sh := sheet{
		name:   SheetFood,
		header: []string{"Date", "Food", "Quantity (g)", "Calories", "Protein (g)", "Sugar (g)", "Brand", "Source"},
		widths: []float64{12, 28, 12, 10, 11, 10, 16, 10},
	}
	for _, date := range sortedDates(st) {
		for _, e := range st.DailyData[date].FoodEntries {
			sh.rows = append(sh.rows, []any{
				date, e.Name, e.QuantityGrams, e.Calories, e.Protein, e.Sugar, e.Brand, string(e.Source),
			})
		}
	}
	return sh
}

func activitiesSheet(st model.AppState) sheet {
	sh := sheet{
		name:   SheetActivities,
		header: []string{"Date", "Type", "Exercise", "Muscle group", "Sets", "Reps", "Weight (kg)", "Minutes", "Burned (kcal)"},
		widths: []float64{12, 8, 22, 14, 6, 6, 12, 9, 13},
	}
	for _, date := range sortedDates(st) {
		for _, a := range st.DailyData[date].GymActivities {
			name := a.ExerciseName
			if a.Type == model.ActivityCardio {
				name = a.ActivityType
			}
			sh.rows = append(sh.rows, []any{
				date, string(a.Type), name, a.MuscleGroup, a.Sets, a.Reps, a.WeightKg, a.DurationMinutes, a.CaloriesBurned,
			})
		}
	}
	return sh
}

func studySheet(st model.AppState) sheet {
	sh := sheet{
		name:   SheetStudy,
		header: []string{"Date", "Subject", "Chapter", "Status"},
		widths: []float64{12, 20, 30, 10},
	}
	for _, date := range sortedDates(st) {
		for _, t := range st.DailyData[date].StudyTopics {
			sh.rows = append(sh.rows, []any{date, t.Subject, t.Chapter, string(t.Status)})
		}
	}
	return sh
}

func streaksSheet(st model.AppState) sheet {
	sh := sheet{
		name:   SheetStreaks,
		header: []string{"Start", "End", "Days"},
		widths: []float64{12, 12, 8},
	}
	for _, h := range st.StreakHistory {
		sh.rows = append(sh.rows, []any{h.StartDate, h.EndDate, h.LengthDays})
	}
	return sh
}

func sortedDates(st model.AppState) []string {
	dates := make([]string, 0, len(st.DailyData))
	for d := range st.DailyData {
		dates = append(dates, d)
	}
	slices.Sort(dates)
	return dates
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
