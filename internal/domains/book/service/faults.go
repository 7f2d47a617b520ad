package service

import (
	"strings"

	"book-catalog/internal/domains/book/model"
)

const faultSentinelTitle = "trigger_error"

// simulatedFault là test hook: title (raw, không trim) bằng "trigger_error"
// không phân biệt hoa thường -> 500 trước mọi validation.
func simulatedFault(enabled bool, raw model.RawBook) error {
	if !enabled {
		return nil
	}
	title, ok := raw[string(model.FieldTitle)].(string)
	if ok && strings.EqualFold(title, faultSentinelTitle) {
		return model.Internal(model.MsgSimulatedFault, model.ErrSimulatedFault)
	}
	return nil
}
