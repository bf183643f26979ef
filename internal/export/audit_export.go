package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/da-kil/reviewflow/internal/domain/assignment"
	"github.com/da-kil/reviewflow/internal/domain/event"
)

const timeLayout = "2006-01-02 15:04:05"

// AuditExporter renders an assignment and its full event history into an
// Excel workbook for HR audit archiving.
type AuditExporter struct {
	companyName string
	logger      *zap.Logger
}

// NewAuditExporter creates a new audit exporter
func NewAuditExporter(companyName string, logger *zap.Logger) *AuditExporter {
	return &AuditExporter{
		companyName: companyName,
		logger:      logger,
	}
}

// Write renders the workbook for one assignment and writes it to w
func (e *AuditExporter) Write(a *assignment.Assignment, history []event.Event, w io.Writer) error {
	e.logger.Info("Exporting assignment audit workbook",
		zap.String("assignment_id", a.ID),
		zap.Int("events", len(history)))

	f := excelize.NewFile()
	defer f.Close()

	if err := e.fillSummary(f, a); err != nil {
		return err
	}
	e.fillSections(f, a)
	e.fillGoals(f, a)
	e.fillRatings(f, a)
	e.fillHistory(f, history)

	// Drop the default sheet created by NewFile
	if err := f.DeleteSheet("Sheet1"); err != nil {
		e.logger.Warn("Failed to remove default sheet", zap.Error(err))
	}
	idx, err := f.GetSheetIndex("Summary")
	if err == nil {
		f.SetActiveSheet(idx)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *AuditExporter) fillSummary(f *excelize.File, a *assignment.Assignment) error {
	sheet := "Summary"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}

	rows := [][2]interface{}{
		{"Company", e.companyName},
		{"Assignment ID", a.ID},
		{"Template ID", a.TemplateID},
		{"Employee ID", a.EmployeeID},
		{"Assigned By", a.AssignedBy},
		{"Assigned At", a.AssignedAt.Format(timeLayout)},
		{"Due Date", a.DueDate.Format("2006-01-02")},
		{"Requires Manager Review", a.RequiresManagerReview},
		{"State", a.State.String()},
		{"Withdrawn", a.Withdrawn},
		{"Employee Submitted At", formatOptional(a.EmployeeSubmittedAt)},
		{"Manager Submitted At", formatOptional(a.ManagerSubmittedAt)},
		{"Review Started At", formatOptional(a.ReviewStartedAt)},
		{"Review Finished At", formatOptional(a.ReviewFinishedAt)},
		{"Review Summary", a.ReviewSummary},
		{"Employee Confirmed At", formatOptional(a.EmployeeConfirmedAt)},
		{"Manager Confirmed At", formatOptional(a.ManagerConfirmedAt)},
		{"Finalized At", formatOptional(a.FinalizedAt)},
		{"Finalized By", a.FinalizedBy},
	}
	for i, row := range rows {
		e.setCell(f, sheet, fmt.Sprintf("A%d", i+1), row[0])
		e.setCell(f, sheet, fmt.Sprintf("B%d", i+1), row[1])
	}
	return nil
}

func (e *AuditExporter) fillSections(f *excelize.File, a *assignment.Assignment) {
	sheet := "Sections"
	if _, err := f.NewSheet(sheet); err != nil {
		e.logger.Warn("Failed to create sheet", zap.String("sheet", sheet), zap.Error(err))
		return
	}

	e.setHeader(f, sheet, "Section ID", "Employee Done", "Employee Done At", "Manager Done", "Manager Done At")
	for i, s := range a.Sections {
		row := i + 2
		e.setCell(f, sheet, fmt.Sprintf("A%d", row), s.SectionID)
		e.setCell(f, sheet, fmt.Sprintf("B%d", row), s.IsEmployeeCompleted)
		e.setCell(f, sheet, fmt.Sprintf("C%d", row), formatOptional(s.EmployeeCompletedAt))
		e.setCell(f, sheet, fmt.Sprintf("D%d", row), s.IsManagerCompleted)
		e.setCell(f, sheet, fmt.Sprintf("E%d", row), formatOptional(s.ManagerCompletedAt))
	}
}

func (e *AuditExporter) fillGoals(f *excelize.File, a *assignment.Assignment) {
	sheet := "Goals"
	if _, err := f.NewSheet(sheet); err != nil {
		e.logger.Warn("Failed to create sheet", zap.String("sheet", sheet), zap.Error(err))
		return
	}

	e.setHeader(f, sheet, "Goal ID", "Question ID", "Objective", "Metric", "Weighting %",
		"Timeframe From", "Timeframe To", "Added By", "Added At", "Edits")
	for i, g := range a.Goals {
		row := i + 2
		e.setCell(f, sheet, fmt.Sprintf("A%d", row), g.ID)
		e.setCell(f, sheet, fmt.Sprintf("B%d", row), g.QuestionID)
		e.setCell(f, sheet, fmt.Sprintf("C%d", row), g.ObjectiveDescription)
		e.setCell(f, sheet, fmt.Sprintf("D%d", row), g.MeasurementMetric)
		e.setCell(f, sheet, fmt.Sprintf("E%d", row), g.WeightingPercentage)
		e.setCell(f, sheet, fmt.Sprintf("F%d", row), g.TimeframeFrom.Format("2006-01-02"))
		e.setCell(f, sheet, fmt.Sprintf("G%d", row), g.TimeframeTo.Format("2006-01-02"))
		e.setCell(f, sheet, fmt.Sprintf("H%d", row), fmt.Sprintf("%s (%s)", g.AddedByEmployeeID, g.AddedByRole))
		e.setCell(f, sheet, fmt.Sprintf("I%d", row), g.AddedAt.Format(timeLayout))
		e.setCell(f, sheet, fmt.Sprintf("J%d", row), len(g.Modifications))
	}
}

func (e *AuditExporter) fillRatings(f *excelize.File, a *assignment.Assignment) {
	sheet := "Ratings"
	if _, err := f.NewSheet(sheet); err != nil {
		e.logger.Warn("Failed to create sheet", zap.String("sheet", sheet), zap.Error(err))
		return
	}

	e.setHeader(f, sheet, "Rating ID", "Source Assignment", "Source Goal", "Objective at Rating Time",
		"Achievement %", "Justification", "Rated By", "Rated At", "Edits")
	for i, r := range a.Ratings {
		row := i + 2
		e.setCell(f, sheet, fmt.Sprintf("A%d", row), r.ID)
		e.setCell(f, sheet, fmt.Sprintf("B%d", row), r.SourceAssignmentID)
		e.setCell(f, sheet, fmt.Sprintf("C%d", row), r.SourceGoalID)
		e.setCell(f, sheet, fmt.Sprintf("D%d", row), r.Snapshot.ObjectiveDescription)
		e.setCell(f, sheet, fmt.Sprintf("E%d", row), r.DegreeOfAchievement)
		e.setCell(f, sheet, fmt.Sprintf("F%d", row), r.Justification)
		e.setCell(f, sheet, fmt.Sprintf("G%d", row), fmt.Sprintf("%s (%s)", r.RatedByEmployeeID, r.RatedByRole))
		e.setCell(f, sheet, fmt.Sprintf("H%d", row), r.RatedAt.Format(timeLayout))
		e.setCell(f, sheet, fmt.Sprintf("I%d", row), len(r.Modifications))
	}
}

func (e *AuditExporter) fillHistory(f *excelize.File, history []event.Event) {
	sheet := "History"
	if _, err := f.NewSheet(sheet); err != nil {
		e.logger.Warn("Failed to create sheet", zap.String("sheet", sheet), zap.Error(err))
		return
	}

	e.setHeader(f, sheet, "Version", "Event Type", "Occurred At", "Event ID")
	for i, evt := range history {
		row := i + 2
		e.setCell(f, sheet, fmt.Sprintf("A%d", row), i+1)
		e.setCell(f, sheet, fmt.Sprintf("B%d", row), string(evt.EventType()))
		e.setCell(f, sheet, fmt.Sprintf("C%d", row), evt.OccurredAt().Format(timeLayout))
		e.setCell(f, sheet, fmt.Sprintf("D%d", row), evt.EventID())
	}
}

func (e *AuditExporter) setHeader(f *excelize.File, sheet string, titles ...string) {
	for i, title := range titles {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			continue
		}
		e.setCell(f, sheet, col+"1", title)
	}
}

// setCell sets a cell value, logging rather than failing on errors
func (e *AuditExporter) setCell(f *excelize.File, sheet, cell string, value interface{}) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("sheet", sheet),
			zap.String("cell", cell),
			zap.Error(err))
	}
}

func formatOptional(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}
