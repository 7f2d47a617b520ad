package model

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	ErrBookNotFound   = errors.New("book not found")
	ErrDuplicateISBN  = errors.New("isbn already exists")
	ErrSimulatedFault = errors.New("simulated internal server error")
)

// Messages của API, giữ nguyên từng chữ vì clients so sánh trực tiếp
const (
	MsgMissingFields = "Missing or empty required fields: "

	MsgTitleRule  = "Title contains special characters, only alphanumeric characters and spaces are allowed."
	MsgAuthorRule = "Author name cannot contain numbers."
	MsgISBNRule   = "ISBN must be numeric and either 10 or 13 digits long."

	MsgDuplicateBook = "Duplicate book detected! The book is already in the list."
	MsgTitleTaken    = "A book with this title already exists"
	MsgAuthorTaken   = "A book by this author already exists"
	MsgISBNTaken     = "A book with this ISBN already exists"

	MsgBookNotFound     = "Book not found"
	MsgResourceNotFound = "Resource not found"

	MsgMalformedBody  = "Request body must be a valid JSON object"
	MsgSimulatedFault = "This is a simulated internal server error"
	MsgInternal       = "Internal server error"

	MsgSearchQueryRequired = "Search query is required"
	MsgInvalidSearchField  = "Invalid search field"
	MsgNoSearchResults     = "No books found matching the search criteria"

	MsgImportFileRequired   = "file is required"
	MsgUnsupportedFileType  = "Unsupported file type"
	MsgImportMissingColumns = "File must contain title, author and isbn columns"
)

// Kind phân loại failure của pipeline
type Kind string

const (
	KindMissingField     Kind = "missing_field"
	KindRuleViolation    Kind = "rule_violation"
	KindConflict         Kind = "conflict"
	KindNotFound         Kind = "not_found"
	KindMalformedRequest Kind = "malformed_request"
	KindInvalidQuery     Kind = "invalid_query"
	KindInternalFault    Kind = "internal_fault"
)

var kindStatus = map[Kind]int{
	KindMissingField:     http.StatusBadRequest,
	KindRuleViolation:    http.StatusBadRequest,
	KindConflict:         http.StatusConflict,
	KindNotFound:         http.StatusNotFound,
	KindMalformedRequest: http.StatusBadRequest,
	KindInvalidQuery:     http.StatusBadRequest,
	KindInternalFault:    http.StatusInternalServerError,
}

// BookError là failure đã được phân loại. Multi = true khi messages
// phải trả về dưới key "errors" thay vì "error".
type BookError struct {
	Kind     Kind
	Messages []string
	Multi    bool
	Err      error
}

func (e *BookError) Error() string {
	msg := strings.Join(e.Messages, "; ")
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, msg)
}

func (e *BookError) Unwrap() error { return e.Err }

func newError(kind Kind, msg string, cause error) *BookError {
	return &BookError{Kind: kind, Messages: []string{msg}, Err: cause}
}

func MissingFields(fields []Field) *BookError {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = string(f)
	}
	return newError(KindMissingField, MsgMissingFields+strings.Join(names, ", "), nil)
}

func RuleViolation(msg string) *BookError {
	return newError(KindRuleViolation, msg, nil)
}

// Duplicate: create với ISBN đã tồn tại
func Duplicate(cause error) *BookError {
	return newError(KindConflict, MsgDuplicateBook, cause)
}

// Conflicts: update va chạm với records khác, luôn trả về list
func Conflicts(msgs []string, cause error) *BookError {
	return &BookError{Kind: KindConflict, Messages: msgs, Multi: true, Err: cause}
}

func NotFound(msg string) *BookError {
	return newError(KindNotFound, msg, ErrBookNotFound)
}

func Malformed(cause error) *BookError {
	return newError(KindMalformedRequest, MsgMalformedBody, cause)
}

func InvalidQuery(msg string) *BookError {
	return newError(KindInvalidQuery, msg, nil)
}

func Internal(msg string, cause error) *BookError {
	return newError(KindInternalFault, msg, cause)
}

// ToHTTPStatus map error sang HTTP status; error chưa phân loại là 500
func ToHTTPStatus(err error) int {
	var be *BookError
	if errors.As(err, &be) {
		if status, ok := kindStatus[be.Kind]; ok {
			return status
		}
	}
	return http.StatusInternalServerError
}
