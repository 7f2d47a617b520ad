package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
)

type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldISBN   Field = "isbn"
	FieldAll    Field = "all"
)

// RequiredFields theo thứ tự khai báo, quyết định thứ tự trong message lỗi
var RequiredFields = []Field{FieldTitle, FieldAuthor, FieldISBN}

// ParseSearchField: rỗng -> all
func ParseSearchField(raw string) (Field, bool) {
	switch f := Field(strings.TrimSpace(raw)); f {
	case "":
		return FieldAll, true
	case FieldAll, FieldTitle, FieldAuthor, FieldISBN:
		return f, true
	default:
		return "", false
	}
}

// RawBook là JSON object chưa normalize: value có thể thiếu, null hoặc không phải string
type RawBook map[string]interface{}

var errNotObject = errors.New("request body is not a JSON object")

// DecodeRawBook decode body thành JSON object
func DecodeRawBook(body []byte) (RawBook, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}

	var raw RawBook
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// Has báo key có mặt trong object (kể cả khi value là null)
func (r RawBook) Has(field Field) bool {
	_, ok := r[string(field)]
	return ok
}

// Text trả về value đã trim; value không phải string coi như rỗng
func (r RawBook) Text(field Field) string {
	s, ok := r[string(field)].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
