package render

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/facultyops/renewal-workflow/internal/application/port"
	"github.com/facultyops/renewal-workflow/internal/domain/workflow"
)

func TestContractRenderer_Render(t *testing.T) {
	r := NewContractRenderer("Example University", zap.NewNop())

	doc, err := r.Render(context.Background(), &port.ContractData{
		FacultyName:        "Ada Lovelace",
		BannerID:           "B00123456",
		JobTitle:           "Associate Professor",
		Department:         "Mathematics",
		RenewalYears:       3,
		PreviousExpiration: "2027-06-30",
		NewExpiration:      "2030-06-30",
		ApprovalDates: map[workflow.Role]string{
			workflow.RoleDepartmentChair: "2026-09-01",
			workflow.RoleDean:            "2026-09-05",
			workflow.RoleProvost:         "2026-09-10",
			workflow.RoleHR:              "2026-09-12",
		},
	})
	require.NoError(t, err)
	require.NotEmpty(t, doc)

	f, err := excelize.OpenReader(bytes.NewReader(doc))
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(0)
	title, err := f.GetCellValue(sheet, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Example University", title)

	name, err := f.GetCellValue(sheet, "B4")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", name)

	years, err := f.GetCellValue(sheet, "B8")
	require.NoError(t, err)
	assert.Equal(t, "3", years)
}
