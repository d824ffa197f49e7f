package report

import (
	"fmt"
	"strings"

	"github.com/nao1215/medphys/internal/model"
	"github.com/xuri/excelize/v2"
)

// headerLabels are the captions written left of each header cell in a skeleton.
var headerLabels = map[string]string{
	FieldSite:            "Site",
	FieldLocationDetail:  "Location",
	FieldUnitType:        "Unit Type",
	FieldMfrModel:        "Manufacturer / Model",
	FieldIDNumber:        "ID Number",
	FieldReportType:      "Report Type",
	FieldSurveyDate:      "Survey Date",
	FieldTestedBy:        "Tested By",
	FieldTestedBySPN:     "Tested By SPN",
	FieldCheckedBy:       "Checked By",
	FieldCheckedBySPN:    "Checked By SPN",
	FieldDetectorModel:   "Detector Model",
	FieldDetectorSN:      "Detector S/N",
	FieldDetectorCalDate: "Detector Cal Date",
}

// WriteSkeleton saves a minimal template workbook for key at path: a
// "Report" sheet with a title and a caption next to every header cell.
// It is a starting point for building a real survey worksheet.
func WriteSkeleton(key model.TemplateKey, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	title := strings.ToUpper(key.String()) + " Survey"
	if err := f.SetCellValue(SheetName, "A1", title); err != nil {
		return fmt.Errorf("failed to write title: %w", err)
	}

	for _, hc := range HeaderLayout() {
		col, row, err := excelize.CellNameToCoordinates(hc.Cell)
		if err != nil {
			return fmt.Errorf("invalid header cell %s: %w", hc.Cell, err)
		}
		captionCell, err := excelize.CoordinatesToCellName(col-1, row)
		if err != nil {
			return fmt.Errorf("invalid caption cell for %s: %w", hc.Cell, err)
		}
		if err := f.SetCellValue(SheetName, captionCell, headerLabels[hc.Field]); err != nil {
			return fmt.Errorf("failed to write caption %s: %w", captionCell, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
