// Package fixtures chứa test data dùng chung cho API harness và page objects
package fixtures

import (
	"math/rand/v2"
	"strings"
)

// Credentials của seed user
const (
	ValidUser       = "test_user"
	ValidPassword   = "test_pass123"
	InvalidUser     = "wrong_user"
	InvalidPassword = "wrong_password"
)

// Login form messages (.error-message)
const (
	ErrEmptyUsername   = "Username is required"
	ErrEmptyPassword   = "Password is required"
	ErrInvalidUsername = "Username not found"
	ErrInvalidPassword = "Incorrect password"
	ErrEmptyBoth       = "Username and password are required"
)

// Book page messages (#error-message)
const (
	AlertEmptyForm = "Please fill out at least one field."
	AlertDuplicate = "Duplicate book detected! The book is already in the list."
)

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func RandomString(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(letters[rand.IntN(len(letters))])
	}
	return b.String()
}

// RandomDigits trả về chuỗi n chữ số (có thể bắt đầu bằng 0)
func RandomDigits(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(byte('0' + rand.IntN(10)))
	}
	return b.String()
}

// RandomISBN: ISBN-13 ngẫu nhiên, chỉ kiểm tra format (không checksum)
func RandomISBN() string {
	return RandomDigits(13)
}

// BookCase - một case của bảng add/edit trên book page.
// Field rỗng nghĩa là không nhập; Updated là các field mong đợi thay đổi.
type BookCase struct {
	Title   string
	Author  string
	ISBN    string
	Updated []string
	Alert   string
}

func (c BookCase) Empty() bool {
	return c.Title == "" && c.Author == "" && c.ISBN == ""
}

// BookCases sinh bảng case mới mỗi lần gọi (giá trị random khác nhau)
func BookCases() []BookCase {
	return []BookCase{
		{Title: RandomString(6), Updated: []string{"title"}},
		{Author: RandomString(6), Updated: []string{"author"}},
		{ISBN: RandomISBN(), Updated: []string{"isbn"}},
		{Title: RandomString(6), Author: RandomString(6), Updated: []string{"title", "author"}},
		{Title: RandomString(6), ISBN: RandomISBN(), Updated: []string{"title", "isbn"}},
		{Author: RandomString(6), ISBN: RandomISBN(), Updated: []string{"author", "isbn"}},
		{Title: RandomString(6), Author: RandomString(6), ISBN: RandomISBN(), Updated: []string{"title", "author", "isbn"}},
		{Alert: AlertEmptyForm},
	}
}

// NewBook: title/author/isbn hợp lệ, đủ random để không đụng record có sẵn
func NewBook() (title, author, isbn string) {
	return "Book " + RandomString(8), "Author " + RandomString(8), RandomISBN()
}

// LoginCase - một case của login form
type LoginCase struct {
	Username string
	Password string
	Alert    string // rỗng = login thành công
}

func LoginCases() []LoginCase {
	return []LoginCase{
		{Username: ValidUser, Password: ValidPassword},
		{Username: ValidUser, Password: InvalidPassword, Alert: ErrInvalidPassword},
		{Username: InvalidUser, Password: ValidPassword, Alert: ErrInvalidUsername},
		{Alert: ErrEmptyBoth},
		{Password: ValidPassword, Alert: ErrEmptyUsername},
		{Username: ValidUser, Alert: ErrEmptyPassword},
	}
}
