package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/urbfiscalizacao/denuncias-api/models"
)

// ExportHeader is the column set shared by the CSV and XLSX exports,
// one column per record field plus the computed recurrence count.
var ExportHeader = []string{
	"id",
	"external_id",
	"created_at",
	"origin",
	"category",
	"street",
	"house_number",
	"neighborhood",
	"zone",
	"latitude",
	"longitude",
	"description",
	"received_by",
	"status",
	"night_action",
	"recurrence_count",
}

func exportRow(c models.Complaint) []string {
	return []string{
		strconv.FormatUint(uint64(c.ID), 10),
		c.ExternalID,
		c.CreatedAt.Format(timestampLayout),
		c.Origin,
		c.Category,
		c.Street,
		c.HouseNumber,
		c.Neighborhood,
		c.Zone,
		c.Latitude,
		c.Longitude,
		c.Description,
		c.ReceivedBy,
		c.Status,
		strconv.FormatBool(c.NightAction),
		strconv.FormatInt(c.RecurrenceCount, 10),
	}
}

// GenerateComplaintsCSV writes the complaint set as CSV, one row per
// complaint, in the order given.
func GenerateComplaintsCSV(complaints []models.Complaint) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(ExportHeader); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, c := range complaints {
		if err := w.Write(exportRow(c)); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// GenerateComplaintsXLSX writes the complaint set as a spreadsheet with a
// styled header row, one data row per complaint.
func GenerateComplaintsXLSX(complaints []models.Complaint) ([]byte, error) {
	f := excelize.NewFile()
	// WriteTo needs the file open, so Close only on error paths.

	sheetName := "Denúncias"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range ExportHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for rowIdx, c := range complaints {
		for col, value := range exportRow(c) {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
		}
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write spreadsheet: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close spreadsheet: %w", err)
	}
	return buf.Bytes(), nil
}
