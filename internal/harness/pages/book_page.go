package pages

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Selectors của books page
const (
	addBookButton = "#add-book"
	titleInput    = "#book-title"
	authorInput   = "#book-author"
	isbnInput     = "#book-isbn"
	saveButton    = "#save-book"
	cancelButton  = "#cancel-book"
	bookAlert     = "#error-message"
	editButton    = ".edit-btn"
	deleteButton  = ".delete-btn"
	bookRows      = "#books-list tr"
)

var ErrNoRows = errors.New("books table is empty")

// BookRow - một dòng của #books-list
type BookRow struct {
	Number string
	Title  string
	Author string
	ISBN   string
}

type BookPage struct {
	page    *rod.Page
	timeout time.Duration
}

func NewBookPage(page *rod.Page, timeout time.Duration) *BookPage {
	return &BookPage{page: page, timeout: timeout}
}

func (p *BookPage) el(selector string) (*rod.Element, error) {
	el, err := p.page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", selector, err)
	}
	return el.CancelTimeout(), nil
}

func (p *BookPage) clickSelector(selector string) error {
	el, err := p.el(selector)
	if err != nil {
		return err
	}
	return click(el)
}

// Reload tải lại trang và chờ load xong
func (p *BookPage) Reload() error {
	if err := p.page.Reload(); err != nil {
		return err
	}
	return p.page.WaitLoad()
}

// AddBook mở modal và điền các field (field rỗng không nhập). Chưa save.
func (p *BookPage) AddBook(title, author, isbn string) error {
	if err := p.clickSelector(addBookButton); err != nil {
		return err
	}
	return p.fill(title, author, isbn, false)
}

// fill điền modal; overwrite=false bỏ qua field rỗng
func (p *BookPage) fill(title, author, isbn string, overwrite bool) error {
	el, err := p.el(titleInput)
	if err != nil {
		return err
	}
	if err := el.Timeout(p.timeout).WaitVisible(); err != nil {
		return fmt.Errorf("modal not visible: %w", err)
	}

	for _, f := range []struct{ sel, value string }{
		{titleInput, title},
		{authorInput, author},
		{isbnInput, isbn},
	} {
		if f.value == "" && !overwrite {
			continue
		}
		input, err := p.el(f.sel)
		if err != nil {
			return err
		}
		if err := setValue(input, f.value); err != nil {
			return fmt.Errorf("fill %s: %w", f.sel, err)
		}
	}
	return nil
}

// Save click #save-book, không chờ kết quả
func (p *BookPage) Save() error {
	return p.clickSelector(saveButton)
}

// SaveAndReload click #save-book và chờ trang reload (save thành công)
func (p *BookPage) SaveAndReload() error {
	btn, err := p.el(saveButton)
	if err != nil {
		return err
	}
	wait := p.page.Timeout(p.timeout).WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := click(btn); err != nil {
		return err
	}
	wait()
	return nil
}

func (p *BookPage) Cancel() error {
	return p.clickSelector(cancelButton)
}

// Alert chờ #error-message có text rồi trả về
func (p *BookPage) Alert() (string, error) {
	el, err := p.el(bookAlert)
	if err != nil {
		return "", err
	}
	if err := el.Timeout(p.timeout).Wait(rod.Eval(`() => this.innerText.trim().length > 0`)); err != nil {
		return "", fmt.Errorf("wait alert: %w", err)
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// EmptySaveAlert mở modal add và save form rỗng
func (p *BookPage) EmptySaveAlert() (string, error) {
	if err := p.clickSelector(addBookButton); err != nil {
		return "", err
	}
	if err := p.Save(); err != nil {
		return "", err
	}
	return p.Alert()
}

// EditLast sửa dòng cuối cùng. Cả ba field rỗng: xoá form, save và trả về alert.
// Ngược lại chỉ ghi đè các field khác rỗng, save và chờ reload.
func (p *BookPage) EditLast(title, author, isbn string) (string, error) {
	row, err := p.lastRow()
	if err != nil {
		return "", err
	}
	btn, err := row.Element(editButton)
	if err != nil {
		return "", err
	}
	if err := click(btn); err != nil {
		return "", err
	}

	if title == "" && author == "" && isbn == "" {
		if err := p.fill("", "", "", true); err != nil {
			return "", err
		}
		if err := p.Save(); err != nil {
			return "", err
		}
		return p.Alert()
	}

	if err := p.fill(title, author, isbn, false); err != nil {
		return "", err
	}
	return "", p.SaveAndReload()
}

// DeleteLast xoá dòng cuối, accept confirm dialog và chờ dòng biến mất
func (p *BookPage) DeleteLast() error {
	rows, err := p.page.Elements(bookRows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return ErrNoRows
	}
	before := len(rows)

	btn, err := rows.Last().Element(deleteButton)
	if err != nil {
		return err
	}

	wait, handle := p.page.HandleDialog()
	done := make(chan error, 1)
	go func() {
		wait()
		done <- handle(&proto.PageHandleJavaScriptDialog{Accept: true})
	}()

	if err := click(btn); err != nil {
		return err
	}
	if err := <-done; err != nil {
		return fmt.Errorf("accept confirm: %w", err)
	}

	js := `(n) => document.querySelectorAll('#books-list tr').length < n`
	return p.page.Timeout(p.timeout).Wait(rod.Eval(js, before))
}

// Books đọc toàn bộ #books-list; bỏ qua dòng có ít hơn 4 cột
func (p *BookPage) Books() ([]BookRow, error) {
	if _, err := p.el("#books-list"); err != nil {
		return nil, err
	}
	rows, err := p.page.Elements(bookRows)
	if err != nil {
		return nil, err
	}

	out := make([]BookRow, 0, len(rows))
	for _, row := range rows {
		cols, err := row.Elements("td")
		if err != nil {
			return nil, err
		}
		if len(cols) < 4 {
			continue
		}
		texts := make([]string, 4)
		for i := range texts {
			t, err := cols[i].Text()
			if err != nil {
				return nil, err
			}
			texts[i] = strings.TrimSpace(t)
		}
		out = append(out, BookRow{Number: texts[0], Title: texts[1], Author: texts[2], ISBN: texts[3]})
	}
	return out, nil
}

func (p *BookPage) lastRow() (*rod.Element, error) {
	if _, err := p.el(bookRows); err != nil {
		return nil, ErrNoRows
	}
	rows, err := p.page.Elements(bookRows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoRows
	}
	return rows.Last(), nil
}
