// Package export renders employee subsets for use outside the directory.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/rcliao/staff-directory/internal/model"
	"github.com/rcliao/staff-directory/internal/stats"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// ParseFormat maps a user-supplied name to a Format.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (want json, csv or xlsx)", s)
	}
}

// Options controls workbook output.
type Options struct {
	// IsBookmarked marks rows in the Bookmarked column. Nil leaves it blank.
	IsBookmarked func(id int) bool
}

// Write renders records in format f.
func Write(w io.Writer, f Format, records []model.Employee, opts Options) error {
	switch f {
	case FormatJSON:
		return JSON(w, records)
	case FormatCSV:
		return CSV(w, records, opts)
	case FormatXLSX:
		return XLSX(w, records, opts)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// JSON writes records as an indented JSON array. The output can be read
// back by ReadJSON.
func JSON(w io.Writer, records []model.Employee) error {
	if records == nil {
		records = []model.Employee{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// ReadJSON decodes a JSON array of employees.
func ReadJSON(r io.Reader) ([]model.Employee, error) {
	var employees []model.Employee
	if err := json.NewDecoder(r).Decode(&employees); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return employees, nil
}

var header = []string{
	"ID", "First Name", "Last Name", "Email", "Phone", "Age",
	"Department", "Rating", "City", "State", "Country", "Projects", "Bookmarked",
}

func row(e model.Employee, opts Options) []interface{} {
	marked := ""
	if opts.IsBookmarked != nil {
		marked = "no"
		if opts.IsBookmarked(e.ID) {
			marked = "yes"
		}
	}
	return []interface{}{
		e.ID, e.FirstName, e.LastName, e.Email, e.Phone, e.Age,
		e.Department, e.Rating, e.Address.City, e.Address.State, e.Address.Country,
		strings.Join(e.Projects, "; "), marked,
	}
}

// CSV writes one header line and one line per record.
func CSV(w io.Writer, records []model.Employee, opts Options) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, e := range records {
		values := row(e, opts)
		line := make([]string, len(values))
		for i, v := range values {
			line[i] = fmt.Sprint(v)
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

const (
	employeesSheet   = "Employees"
	departmentsSheet = "Departments"
)

// XLSX writes a workbook with an Employees sheet and a Departments sheet
// holding the department breakdown of records.
func XLSX(w io.Writer, records []model.Employee, opts Options) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", employeesSheet); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	if err := writeSheet(f, employeesSheet, bold, toRow(header), func(add func([]interface{}) error) error {
		for _, e := range records {
			if err := add(row(e, opts)); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	f.SetColWidth(employeesSheet, "B", "D", 18)
	f.SetColWidth(employeesSheet, "G", "G", 18)

	if _, err := f.NewSheet(departmentsSheet); err != nil {
		return err
	}
	isBookmarked := opts.IsBookmarked
	if isBookmarked == nil {
		isBookmarked = func(int) bool { return false }
	}
	deptHeader := toRow([]string{"Department", "Employees", "Average Rating", "Bookmarked"})
	if err := writeSheet(f, departmentsSheet, bold, deptHeader, func(add func([]interface{}) error) error {
		for _, d := range stats.DepartmentBreakdown(records, isBookmarked) {
			if err := add([]interface{}{d.Department, d.Count, stats.RoundTo1(d.AverageRating), d.Bookmarked}); err != nil {
				return err
			}
		}
		return nil
	}); err != nil {
		return err
	}
	f.SetColWidth(departmentsSheet, "A", "A", 20)

	f.SetActiveSheet(0)
	return f.Write(w)
}

func toRow(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func writeSheet(f *excelize.File, sheet string, headerStyle int, head []interface{}, fill func(add func([]interface{}) error) error) error {
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("%s header: %w", sheet, err)
	}
	last, _ := excelize.CoordinatesToCellName(len(head), 1)
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	rowNum := 2
	return fill(func(values []interface{}) error {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("%s row %d: %w", sheet, rowNum, err)
		}
		rowNum++
		return nil
	})
}
