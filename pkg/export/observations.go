// Package export renders observation search results as spreadsheets.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"astro/entities"
)

const SheetName = "Observations"

var Header = []string{
	"ID", "Datetime (UTC)", "Object", "Place", "Instrument", "Property", "Value", "Observation",
}

// WriteObservations writes one header row and one row per observation, in the given order.
func WriteObservations(w io.Writer, rows []entities.ObservationView) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := f.SetRowStyle(SheetName, 1, 1, bold); err != nil {
		return err
	}

	for i, o := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			o.ID,
			o.ObservationDatetime.UTC().Format(time.DateTime),
			o.ObjectName,
			o.PlaceName,
			o.InstrumentName,
			deref(o.PropertyName),
			deref(o.PropertyValue),
			o.ObservationText,
		}
		if err := f.SetSheetRow(SheetName, cell, &row); err != nil {
			return fmt.Errorf("row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(SheetName, "B", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "C", "G", 16); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetName, "H", "H", 60); err != nil {
		return err
	}
	_, err = f.WriteTo(w)
	return err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
