// Package pages là page objects (go-rod) cho login page và books page
package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

var ErrNoBrowser = errors.New("no chromium/chrome binary found")

// DefaultTimeout cho mỗi thao tác chờ element (tương đương explicit wait)
const DefaultTimeout = 10 * time.Second

type BrowserConfig struct {
	Headless bool
	Bin      string // rỗng: tự tìm bằng launcher.LookPath
	Timeout  time.Duration
}

// Browser bọc một rod.Browser và launcher của nó
type Browser struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	timeout  time.Duration
}

// Launch start chromium local. Không có binary -> ErrNoBrowser (không tự download).
func Launch(ctx context.Context, cfg BrowserConfig) (*Browser, error) {
	bin := cfg.Bin
	if bin == "" {
		path, ok := launcher.LookPath()
		if !ok {
			return nil, ErrNoBrowser
		}
		bin = path
	}

	l := launcher.New().Bin(bin).Headless(cfg.Headless).Context(ctx)
	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Browser{browser: browser, launcher: l, timeout: timeout}, nil
}

// Open mở tab mới (incognito, cookie riêng) tại url
func (b *Browser) Open(url string) (*rod.Page, error) {
	incognito, err := b.browser.Incognito()
	if err != nil {
		return nil, fmt.Errorf("incognito context: %w", err)
	}
	page, err := incognito.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("load %s: %w", url, err)
	}
	return page, nil
}

func (b *Browser) Timeout() time.Duration { return b.timeout }

func (b *Browser) Close() error {
	err := b.browser.Close()
	b.launcher.Kill()
	return err
}

// setValue xoá value hiện tại rồi nhập text (text rỗng = chỉ xoá)
func setValue(el *rod.Element, text string) error {
	if _, err := el.Eval(`() => { this.value = '' }`); err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return el.Input(text)
}

func click(el *rod.Element) error {
	return el.Click(proto.InputMouseButtonLeft, 1)
}
