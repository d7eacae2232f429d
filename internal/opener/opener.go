package opener

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutputMissing is returned by Reveal when the output directory is not on disk.
var ErrOutputMissing = errors.New("output folder does not exist")

// FolderOpener defines the interface for showing a directory in the platform file browser.
type FolderOpener interface {
	OpenFolder(dir string) error
}

// URLOpener is the part of fyne.App used to hand a URL to the desktop.
type URLOpener interface {
	OpenURL(u *url.URL) error
}

// FyneFolderOpener implements FolderOpener using the Fyne app's URL handler.
type FyneFolderOpener struct {
	app URLOpener
}

// NewFyneFolderOpener creates a new FyneFolderOpener.
func NewFyneFolderOpener(app URLOpener) *FyneFolderOpener {
	return &FyneFolderOpener{app: app}
}

// OpenFolder opens dir as a file:// URL.
func (o *FyneFolderOpener) OpenFolder(dir string) error {
	if o.app == nil {
		return fmt.Errorf("desktop integration is not available")
	}
	return o.app.OpenURL(FileURL(dir))
}

// FileURL returns a file:// URL for dir. The path is kept unescaped so that
// characters such as '#' and '%' stay part of the path.
func FileURL(dir string) *url.URL {
	path := filepath.ToSlash(dir)
	if filepath.VolumeName(dir) != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return &url.URL{Scheme: "file", Path: path}
}

// Reveal opens dir if it exists on disk and reports ErrOutputMissing otherwise.
func Reveal(o FolderOpener, dir string) error {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ErrOutputMissing
	}
	return o.OpenFolder(dir)
}
