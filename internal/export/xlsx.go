// Package export renders inquiries as a spreadsheet for offline use.
package export

import (
	"fmt"

	"github.com/atinyakov/AdmissionDesk/internal/models"
	"github.com/xuri/excelize/v2"
)

const (
	// SheetName is the single sheet every export contains.
	SheetName = "Sheet1"
	// ContentType is sent with the downloadable workbook.
	ContentType = "application/vnd.openxmlformats"
	// Filename is the attachment name offered to the browser.
	Filename = "custom_filename.xlsx"
)

// Columns is the fixed header row. Row values follow the same order.
var Columns = []string{
	"studname",
	"parentname",
	"email",
	"phone",
	"grade",
	"year_of_passing",
	"pschool",
	"referral",
}

func row(in models.Inquiry) []any {
	return []any{
		in.StudentName,
		in.ParentName,
		in.Email,
		in.Phone,
		in.Grade,
		in.YearOfPassing,
		in.PriorSchool,
		in.ReferralSource,
	}
}

// Inquiries builds an xlsx workbook with a header row followed by one row per
// inquiry, in the order given. The whole workbook is returned as bytes.
func Inquiries(inquiries []models.Inquiry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, in := range inquiries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		values := row(in)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode workbook: %w", err)
	}
	return buf.Bytes(), nil
}
