package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"book-catalog/internal/domains/book/model"
)

const maxImportRows = 1000

var (
	ErrUnsupportedFileType = errors.New("unsupported import file type")
	ErrMissingColumns      = errors.New("import file is missing required columns")
	ErrTooManyRows         = errors.New("import file exceeds row limit")
	ErrUnreadableFile      = errors.New("import file could not be read")
)

type bulkImportService struct {
	create *CreatePipeline
}

func NewBulkImportService(create *CreatePipeline) BulkImportServiceInterface {
	return &bulkImportService{create: create}
}

// ImportBooks đọc file, mỗi dòng đi qua create pipeline độc lập:
// một dòng lỗi không chặn các dòng còn lại.
func (s *bulkImportService) ImportBooks(ctx context.Context, filename string, r io.Reader) (*model.ImportResult, error) {
	log.Info().Str("file_name", filename).Msg("Starting bulk import books")

	// PHASE 1: Parse file
	rows, err := readRows(filename, r)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrMissingColumns
	}

	columns, err := headerIndex(rows[0])
	if err != nil {
		return nil, err
	}

	data := rows[1:]
	if len(data) > maxImportRows {
		return nil, fmt.Errorf("%w: %d rows (max %d)", ErrTooManyRows, len(data), maxImportRows)
	}

	// PHASE 2: Create từng dòng
	result := &model.ImportResult{Results: make([]model.ImportRowResult, 0, len(data))}
	for i, row := range data {
		if isBlankRow(row) {
			continue
		}
		result.TotalRows++

		raw := model.RawBook{}
		for field, idx := range columns {
			raw[string(field)] = cell(row, idx)
		}

		rowResult := model.ImportRowResult{Row: i + 1}
		book, err := s.create.Run(ctx, raw)
		if err != nil {
			out := model.Classify(err)
			rowResult.Status = model.ImportStatusFailed
			rowResult.Error = out.Message
			if out.Message == "" {
				rowResult.Error = strings.Join(out.Messages, "; ")
			}
			result.Failed++
		} else {
			rowResult.Status = model.ImportStatusImported
			rowResult.ID = book.ID
			result.Imported++
		}
		result.Results = append(result.Results, rowResult)
	}

	log.Info().
		Int("total_rows", result.TotalRows).
		Int("imported", result.Imported).
		Int("failed", result.Failed).
		Msg("Bulk import finished")
	return result, nil
}

func readRows(filename string, r io.Reader) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		reader := csv.NewReader(r)
		reader.FieldsPerRecord = -1
		reader.TrimLeadingSpace = true
		rows, err := reader.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%w: parse csv: %v", ErrUnreadableFile, err)
		}
		return rows, nil
	case ".xlsx":
		f, err := excelize.OpenReader(r)
		if err != nil {
			return nil, fmt.Errorf("%w: open xlsx: %v", ErrUnreadableFile, err)
		}
		defer f.Close()

		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil
		}
		rows, err := f.GetRows(sheets[0])
		if err != nil {
			return nil, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadableFile, sheets[0], err)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedFileType
	}
}

func headerIndex(header []string) (map[model.Field]int, error) {
	columns := make(map[model.Field]int, len(model.RequiredFields))
	for i, name := range header {
		f := model.Field(strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))))
		for _, required := range model.RequiredFields {
			if f == required {
				if _, dup := columns[f]; !dup {
					columns[f] = i
				}
			}
		}
	}
	if len(columns) != len(model.RequiredFields) {
		return nil, ErrMissingColumns
	}
	return columns, nil
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
