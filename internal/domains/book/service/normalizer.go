package service

import (
	"book-catalog/internal/domains/book/model"
)

// NormalizeForCreate: một pass. Field thiếu, null, không phải string
// hoặc chỉ có whitespace đều bị coi là missing.
func NormalizeForCreate(raw model.RawBook) (model.BookFields, error) {
	fields := trimmedFields(raw)

	var missing []model.Field
	for _, f := range model.RequiredFields {
		if fields.Value(f) == "" {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return model.BookFields{}, model.MissingFields(missing)
	}
	return fields, nil
}

// NormalizeForUpdate: hai pass. Pass 1 báo các key vắng mặt; chỉ khi đủ key
// mới tới pass 2 báo các value rỗng.
func NormalizeForUpdate(raw model.RawBook) (model.BookFields, error) {
	var absent []model.Field
	for _, f := range model.RequiredFields {
		if !raw.Has(f) {
			absent = append(absent, f)
		}
	}
	if len(absent) > 0 {
		return model.BookFields{}, model.MissingFields(absent)
	}

	fields := trimmedFields(raw)

	var empty []model.Field
	for _, f := range model.RequiredFields {
		if fields.Value(f) == "" {
			empty = append(empty, f)
		}
	}
	if len(empty) > 0 {
		return model.BookFields{}, model.MissingFields(empty)
	}
	return fields, nil
}

func trimmedFields(raw model.RawBook) model.BookFields {
	return model.BookFields{
		Title:  raw.Text(model.FieldTitle),
		Author: raw.Text(model.FieldAuthor),
		ISBN:   raw.Text(model.FieldISBN),
	}
}
