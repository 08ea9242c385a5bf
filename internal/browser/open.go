package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything but an absolute http(s) URL.
var ErrUnsupportedURL = errors.New("browser: only http and https links can be opened")

// Check parses raw and accepts only absolute http and https links.
func Check(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("browser: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, ErrUnsupportedURL
	}
	return u, nil
}

// Open opens raw in the user's default browser.
func Open(raw string) error {
	u, err := Check(raw)
	if err != nil {
		return err
	}
	return command(runtime.GOOS, u.String())
}

func command(goos, link string) error {
	switch goos {
	case "darwin":
		return exec.Command("open", link).Start()
	case "linux":
		return exec.Command("xdg-open", link).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", link).Start()
	default:
		return fmt.Errorf("unsupported OS: %s", goos)
	}
}
