// Package smoke chạy bộ API scenarios black-box against một catalog đang chạy
package smoke

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/sync/errgroup"

	"book-catalog/internal/harness/apiclient"
	"book-catalog/internal/harness/fixtures"
)

// Result - kết quả của một scenario
type Result struct {
	Name     string
	Passed   bool
	Detail   string
	Duration time.Duration
}

// Report - tổng hợp một lần chạy
type Report struct {
	Results []Result
}

func (r Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.Passed {
			n++
		}
	}
	return n
}

func (r Report) Passed() int { return len(r.Results) - r.Failed() }

// Write in report dạng bảng text
func (r Report) Write(w io.Writer) {
	for _, res := range r.Results {
		status := "PASS"
		if !res.Passed {
			status = "FAIL"
		}
		fmt.Fprintf(w, "%-4s %-45s %8s\n", status, res.Name, res.Duration.Round(time.Millisecond))
		if res.Detail != "" {
			for _, line := range strings.Split(strings.TrimRight(res.Detail, "\n"), "\n") {
				fmt.Fprintf(w, "     %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\n%d passed, %d failed\n", r.Passed(), r.Failed())
}

// Scenario nhận client mới (chưa login); trả về error mô tả mismatch đầu tiên
type Scenario struct {
	Name string
	Run  func(ctx context.Context, c *apiclient.Client) error
}

// Run chạy scenarios tuần tự; mỗi scenario có client (cookie jar) riêng
func Run(ctx context.Context, baseURL string, scenarios []Scenario) (Report, error) {
	var report Report
	for _, sc := range scenarios {
		c, err := apiclient.New(baseURL)
		if err != nil {
			return report, err
		}

		start := time.Now()
		err = sc.Run(ctx, c)
		res := Result{Name: sc.Name, Passed: err == nil, Duration: time.Since(start)}
		if err != nil {
			res.Detail = err.Error()
		}
		report.Results = append(report.Results, res)
	}
	return report, nil
}

// ========================================
// ASSERTION HELPERS
// ========================================

func expectStatus(resp *apiclient.Response, want int) error {
	if resp.Status != want {
		return fmt.Errorf("status: want %d, got %d (body %s)", want, resp.Status, strings.TrimSpace(string(resp.Body)))
	}
	return nil
}

// expect so sánh status và field "error"/"errors"/"message"
func expect(resp *apiclient.Response, status int, key string, want interface{}) error {
	if err := expectStatus(resp, status); err != nil {
		return err
	}

	var got interface{}
	switch key {
	case "error":
		got = resp.Error()
	case "errors":
		got = resp.Errors()
	case "message":
		got = resp.Message()
	default:
		return fmt.Errorf("unknown key %q", key)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("%s mismatch (-want +got):\n%s", key, diff)
	}
	return nil
}

func create(ctx context.Context, c *apiclient.Client, title, author, isbn string) (apiclient.Book, error) {
	resp, err := c.CreateBook(ctx, apiclient.Payload(title, author, isbn))
	if err != nil {
		return apiclient.Book{}, err
	}
	if err := expectStatus(resp, http.StatusCreated); err != nil {
		return apiclient.Book{}, err
	}
	var b apiclient.Book
	return b, resp.Decode(&b)
}

// ========================================
// SCENARIOS
// ========================================

// DefaultScenarios: các hành vi quan sát được của catalog API
func DefaultScenarios() []Scenario {
	return []Scenario{
		{"login with valid and invalid credentials", loginScenario},
		{"logout requires a session", logoutScenario},
		{"create reports empty fields in order", createMissingFieldsScenario},
		{"create enforces field rules", createRulesScenario},
		{"create rejects duplicate isbn", createDuplicateScenario},
		{"get after create/update returns written values", readYourWritesScenario},
		{"update of unknown id is 404", updateNotFoundScenario},
		{"update aggregates conflicts", updateConflictsScenario},
		{"update trigger_error is 500", updateFaultScenario},
		{"delete then get is 404", deleteScenario},
		{"invalid ids are 404 resource not found", invalidIDScenario},
		{"search validates query and field", searchScenario},
		{"concurrent creates with same isbn", concurrentCreateScenario},
	}
}

func loginScenario(ctx context.Context, c *apiclient.Client) error {
	cases := []struct {
		user, pass string
		status     int
		key, msg   string
	}{
		{fixtures.ValidUser, fixtures.ValidPassword, 200, "message", "Login successful"},
		{fixtures.ValidUser, fixtures.InvalidPassword, 401, "error", "Invalid password"},
		{fixtures.InvalidUser, fixtures.ValidPassword, 401, "error", "Invalid username"},
		{"", fixtures.ValidPassword, 400, "error", "Username and password are required"},
		{fixtures.ValidUser, "", 400, "error", "Username and password are required"},
		{"", "", 400, "error", "Username and password are required"},
	}
	for _, tc := range cases {
		resp, err := c.Login(ctx, tc.user, tc.pass)
		if err != nil {
			return err
		}
		if err := expect(resp, tc.status, tc.key, tc.msg); err != nil {
			return fmt.Errorf("login(%q, %q): %w", tc.user, tc.pass, err)
		}
	}
	return nil
}

func logoutScenario(ctx context.Context, c *apiclient.Client) error {
	resp, err := c.Logout(ctx)
	if err != nil {
		return err
	}
	if err := expect(resp, http.StatusForbidden, "error", "You are not logged in"); err != nil {
		return err
	}

	if resp, err = c.Login(ctx, fixtures.ValidUser, fixtures.ValidPassword); err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}

	resp, err = c.Logout(ctx)
	if err != nil {
		return err
	}
	return expect(resp, http.StatusOK, "message", "Logged out successfully")
}

func createMissingFieldsScenario(ctx context.Context, c *apiclient.Client) error {
	cases := []struct {
		title, author, isbn string
		want                string
	}{
		{"", "Tofi", "1020306050", "Missing or empty required fields: title"},
		{"Kofkof", "", "1020306050", "Missing or empty required fields: author"},
		{"Kofkof", "Tofi", "", "Missing or empty required fields: isbn"},
		{"", "", "", "Missing or empty required fields: title, author, isbn"},
		{"  ", "Tofi", " ", "Missing or empty required fields: title, isbn"},
	}
	for _, tc := range cases {
		resp, err := c.CreateBook(ctx, apiclient.Payload(tc.title, tc.author, tc.isbn))
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusBadRequest, "error", tc.want); err != nil {
			return err
		}
	}
	return nil
}

func createRulesScenario(ctx context.Context, c *apiclient.Client) error {
	cases := []struct {
		title, author, isbn string
		want                string
	}{
		{"?#$%^&", "Hihi", "1020306050", "Title contains special characters, only alphanumeric characters and spaces are allowed."},
		{"MipMip", "MipMip12121", "1020306050", "Author name cannot contain numbers."},
		{"MipMip", "Hihi", "20AAAA203030", "ISBN must be numeric and either 10 or 13 digits long."},
		{"MipMip", "Hihi", "12345678901", "ISBN must be numeric and either 10 or 13 digits long."},
	}
	for _, tc := range cases {
		resp, err := c.CreateBook(ctx, apiclient.Payload(tc.title, tc.author, tc.isbn))
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusBadRequest, "error", tc.want); err != nil {
			return err
		}
	}
	return nil
}

func createDuplicateScenario(ctx context.Context, c *apiclient.Client) error {
	title, author, isbn := fixtures.NewBook()
	if _, err := create(ctx, c, title, author, isbn); err != nil {
		return err
	}
	resp, err := c.CreateBook(ctx, apiclient.Payload("Other "+fixtures.RandomString(6), author, isbn))
	if err != nil {
		return err
	}
	return expect(resp, http.StatusConflict, "error", fixtures.AlertDuplicate)
}

func readYourWritesScenario(ctx context.Context, c *apiclient.Client) error {
	title, author, isbn := fixtures.NewBook()
	b, err := create(ctx, c, title, author, isbn)
	if err != nil {
		return err
	}
	if err := expectBook(ctx, c, apiclient.Book{ID: b.ID, Title: title, Author: author, ISBN: isbn}); err != nil {
		return err
	}

	newTitle, newAuthor, newISBN := fixtures.NewBook()
	resp, err := c.UpdateBook(ctx, b.IDString(), apiclient.Payload(newTitle, newAuthor, newISBN))
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	return expectBook(ctx, c, apiclient.Book{ID: b.ID, Title: newTitle, Author: newAuthor, ISBN: newISBN})
}

func expectBook(ctx context.Context, c *apiclient.Client, want apiclient.Book) error {
	resp, err := c.GetBook(ctx, want.IDString())
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusOK); err != nil {
		return err
	}
	var got apiclient.Book
	if err := resp.Decode(&got); err != nil {
		return err
	}
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Errorf("book mismatch (-want +got):\n%s", diff)
	}
	return nil
}

func updateNotFoundScenario(ctx context.Context, c *apiclient.Client) error {
	// body không hợp lệ vẫn là 404
	for _, payload := range []interface{}{
		apiclient.Payload("Valid", "Valid", "1234567890"),
		map[string]string{},
		apiclient.Payload("trigger_error", "", ""),
	} {
		resp, err := c.UpdateBook(ctx, "987654321", payload)
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusNotFound, "error", "Book not found"); err != nil {
			return err
		}
	}
	return nil
}

func updateConflictsScenario(ctx context.Context, c *apiclient.Client) error {
	t1, a1, i1 := fixtures.NewBook()
	if _, err := create(ctx, c, t1, a1, i1); err != nil {
		return err
	}
	t2, a2, i2 := fixtures.NewBook()
	target, err := create(ctx, c, t2, a2, i2)
	if err != nil {
		return err
	}

	resp, err := c.UpdateBook(ctx, target.IDString(), apiclient.Payload(t1, a1, i1))
	if err != nil {
		return err
	}
	if err := expect(resp, http.StatusConflict, "errors", []string{
		"A book with this title already exists",
		"A book by this author already exists",
		"A book with this ISBN already exists",
	}); err != nil {
		return err
	}

	// update giữ nguyên giá trị của chính nó không phải conflict
	resp, err = c.UpdateBook(ctx, target.IDString(), apiclient.Payload(t2, a2, i2))
	if err != nil {
		return err
	}
	return expectStatus(resp, http.StatusOK)
}

func updateFaultScenario(ctx context.Context, c *apiclient.Client) error {
	title, author, isbn := fixtures.NewBook()
	b, err := create(ctx, c, title, author, isbn)
	if err != nil {
		return err
	}
	for _, sentinel := range []string{"trigger_error", "TRIGGER_ERROR"} {
		resp, err := c.UpdateBook(ctx, b.IDString(), apiclient.Payload(sentinel, "", ""))
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusInternalServerError, "error", "This is a simulated internal server error"); err != nil {
			return err
		}
	}
	return nil
}

func deleteScenario(ctx context.Context, c *apiclient.Client) error {
	title, author, isbn := fixtures.NewBook()
	b, err := create(ctx, c, title, author, isbn)
	if err != nil {
		return err
	}

	resp, err := c.DeleteBook(ctx, b.IDString())
	if err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusNoContent); err != nil {
		return err
	}

	if resp, err = c.GetBook(ctx, b.IDString()); err != nil {
		return err
	}
	if err := expectStatus(resp, http.StatusNotFound); err != nil {
		return err
	}

	if resp, err = c.DeleteBook(ctx, b.IDString()); err != nil {
		return err
	}
	return expect(resp, http.StatusNotFound, "error", "Book not found")
}

func invalidIDScenario(ctx context.Context, c *apiclient.Client) error {
	for _, id := range []string{"khkhkhk", "-1", "1.5"} {
		resp, err := c.GetBook(ctx, id)
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusNotFound, "error", "Resource not found"); err != nil {
			return fmt.Errorf("GET %s: %w", id, err)
		}
		if resp, err = c.DeleteBook(ctx, id); err != nil {
			return err
		}
		if err := expect(resp, http.StatusNotFound, "error", "Resource not found"); err != nil {
			return fmt.Errorf("DELETE %s: %w", id, err)
		}
	}
	return nil
}

func searchScenario(ctx context.Context, c *apiclient.Client) error {
	title, author, isbn := fixtures.NewBook()
	if _, err := create(ctx, c, title, author, isbn); err != nil {
		return err
	}

	for _, q := range []struct{ q, field string }{
		{strings.ToUpper(title), "title"},
		{author[len(author)-4:], "author"},
		{isbn, "isbn"},
		{title, ""},
		{isbn[:6], "all"},
	} {
		books, resp, err := c.SearchBooks(ctx, q.q, q.field)
		if err != nil {
			return err
		}
		if err := expectStatus(resp, http.StatusOK); err != nil {
			return fmt.Errorf("search %q/%q: %w", q.q, q.field, err)
		}
		if !containsISBN(books, isbn) {
			return fmt.Errorf("search %q/%q: created book missing from results", q.q, q.field)
		}
	}

	cases := []struct{ q, field, want string }{
		{"", "", "Search query is required"},
		{"x", "title_id_autor", "Invalid search field"},
		{"zz" + fixtures.RandomDigits(12), "title", "No books found matching the search criteria"},
	}
	for _, tc := range cases {
		_, resp, err := c.SearchBooks(ctx, tc.q, tc.field)
		if err != nil {
			return err
		}
		if err := expect(resp, http.StatusBadRequest, "error", tc.want); err != nil {
			return err
		}
	}
	return nil
}

func containsISBN(books []apiclient.Book, isbn string) bool {
	for _, b := range books {
		if b.ISBN == isbn {
			return true
		}
	}
	return false
}

// concurrentCreateScenario: đúng một request 201, còn lại 409
func concurrentCreateScenario(ctx context.Context, c *apiclient.Client) error {
	const workers = 8
	isbn := fixtures.RandomISBN()

	var (
		mu       sync.Mutex
		statuses = map[int]int{}
	)
	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			resp, err := c.CreateBook(gctx, apiclient.Payload("Race "+fixtures.RandomString(6), "Racer", isbn))
			if err != nil {
				return err
			}
			mu.Lock()
			statuses[resp.Status]++
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	want := map[int]int{http.StatusCreated: 1, http.StatusConflict: workers - 1}
	if diff := cmp.Diff(want, statuses); diff != "" {
		return fmt.Errorf("status counts mismatch (-want +got):\n%s", diff)
	}
	return nil
}
