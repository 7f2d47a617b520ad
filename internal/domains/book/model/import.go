package model

// ImportRowResult là kết quả của một dòng trong file import (row đếm từ 1, không tính header)
type ImportRowResult struct {
	Row    int    `json:"row"`
	Status string `json:"status"` // imported, failed
	ID     int64  `json:"id,omitempty"`
	Error  string `json:"error,omitempty"`
}

const (
	ImportStatusImported = "imported"
	ImportStatusFailed   = "failed"
)

type ImportResult struct {
	TotalRows int               `json:"total_rows"`
	Imported  int               `json:"imported"`
	Failed    int               `json:"failed"`
	Results   []ImportRowResult `json:"results"`
}
