package pages

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Selectors của login page
const (
	usernameInput = "#username"
	passwordInput = "#password"
	loginButton   = "button[type='submit']"
	loginError    = ".error-message"
	logoutButton  = "#logout"
)

type LoginPage struct {
	page    *rod.Page
	timeout time.Duration
}

func NewLoginPage(page *rod.Page, timeout time.Duration) *LoginPage {
	return &LoginPage{page: page, timeout: timeout}
}

func (p *LoginPage) el(selector string) (*rod.Element, error) {
	el, err := p.page.Timeout(p.timeout).Element(selector)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", selector, err)
	}
	return el.CancelTimeout(), nil
}

// Login điền form và submit, chờ trang kế tiếp load xong
func (p *LoginPage) Login(username, password string) error {
	for _, f := range []struct{ sel, value string }{
		{usernameInput, username},
		{passwordInput, password},
	} {
		el, err := p.el(f.sel)
		if err != nil {
			return err
		}
		if err := setValue(el, f.value); err != nil {
			return fmt.Errorf("fill %s: %w", f.sel, err)
		}
	}

	btn, err := p.el(loginButton)
	if err != nil {
		return err
	}

	wait := p.page.Timeout(p.timeout).WaitNavigation(proto.PageLifecycleEventNameLoad)
	if err := click(btn); err != nil {
		return fmt.Errorf("submit login: %w", err)
	}
	wait()
	return nil
}

// ErrorMessage đọc text của .error-message
func (p *LoginPage) ErrorMessage() (string, error) {
	el, err := p.el(loginError)
	if err != nil {
		return "", err
	}
	text, err := el.Text()
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// IsLoggedIn: books page (có #logout) hiển thị trong timeout
func (p *LoginPage) IsLoggedIn() bool {
	_, err := p.page.Timeout(p.timeout).Element(logoutButton)
	return err == nil
}
