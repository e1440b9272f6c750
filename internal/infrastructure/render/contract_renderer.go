package render

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

// ContractRenderer implements port.ContractRenderer by building the
// renewal confirmation workbook HR files with the contract record.
type ContractRenderer struct {
	institutionName string
	logger          *zap.Logger
}

// NewContractRenderer creates a new contract renderer
func NewContractRenderer(institutionName string, logger *zap.Logger) *ContractRenderer {
	return &ContractRenderer{
		institutionName: institutionName,
		logger:          logger,
	}
}

// Render produces the confirmation document as an xlsx byte slice
func (r *ContractRenderer) Render(ctx context.Context, data *port.ContractData) ([]byte, error) {
	r.logger.Info("Rendering renewal confirmation",
		zap.String("banner_id", data.BannerID),
		zap.Int("renewal_years", data.RenewalYears))

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	titleStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	labelStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	r.setCell(f, sheet, "A1", r.institutionName)
	r.setCell(f, sheet, "A2", "Contract Renewal Confirmation")
	if err := f.MergeCell(sheet, "A1", "B1"); err != nil {
		return nil, fmt.Errorf("failed to merge cells: %w", err)
	}
	if err := f.MergeCell(sheet, "A2", "B2"); err != nil {
		return nil, fmt.Errorf("failed to merge cells: %w", err)
	}
	_ = f.SetCellStyle(sheet, "A1", "B2", titleStyle)

	rows := [][2]string{
		{"Faculty Member", data.FacultyName},
		{"Banner ID", data.BannerID},
		{"Job Title", data.JobTitle},
		{"Department", data.Department},
		{"Years Granted", fmt.Sprintf("%d", data.RenewalYears)},
		{"Previous Expiration", data.PreviousExpiration},
		{"New Expiration", data.NewExpiration},
	}
	rowNum := 4
	for _, row := range rows {
		r.setCell(f, sheet, fmt.Sprintf("A%d", rowNum), row[0])
		r.setCell(f, sheet, fmt.Sprintf("B%d", rowNum), row[1])
		_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), labelStyle)
		rowNum++
	}

	rowNum++
	r.setCell(f, sheet, fmt.Sprintf("A%d", rowNum), "Approvals")
	_ = f.SetCellStyle(sheet, fmt.Sprintf("A%d", rowNum), fmt.Sprintf("A%d", rowNum), labelStyle)
	rowNum++
	for _, role := range workflow.ChainFor(workflow.KindRenewal).Roles() {
		date, ok := data.ApprovalDates[role]
		if !ok {
			continue
		}
		r.setCell(f, sheet, fmt.Sprintf("A%d", rowNum), string(role))
		r.setCell(f, sheet, fmt.Sprintf("B%d", rowNum), date)
		rowNum++
	}

	if err := f.SetColWidth(sheet, "A", "A", 24); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "B", 32); err != nil {
		return nil, fmt.Errorf("failed to set column width: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		r.logger.Error("Failed to write workbook", zap.Error(err))
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	r.logger.Info("Confirmation rendered", zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func (r *ContractRenderer) setCell(f *excelize.File, sheet, cell, value string) {
	if err := f.SetCellValue(sheet, cell, value); err != nil {
		r.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

// Verify interface compliance
var _ port.ContractRenderer = (*ContractRenderer)(nil)
