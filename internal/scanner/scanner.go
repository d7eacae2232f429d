package scanner

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrArtifactNotFound is returned when no executable for the app name is in the output directory.
var ErrArtifactNotFound = errors.New("artifact not found")

// Artifact describes an executable found in the output directory.
type Artifact struct {
	Path string
	Name string
	Size int64
}

// ArtifactScanner defines the interface for locating build outputs.
type ArtifactScanner interface {
	FindArtifact(dir, appName string) (*Artifact, error)
}

// OutputScanner implements ArtifactScanner over a flat output directory.
type OutputScanner struct{}

// FindArtifact looks for appName in dir, with or without an .exe or .app suffix.
func (s OutputScanner) FindArtifact(dir, appName string) (*Artifact, error) {
	if appName == "" {
		return nil, fmt.Errorf("app name cannot be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read output directory %q: %w", dir, err)
	}

	for _, entry := range entries {
		if !matches(entry.Name(), appName) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", entry.Name(), err)
		}
		return &Artifact{
			Path: filepath.Join(dir, entry.Name()),
			Name: entry.Name(),
			Size: info.Size(),
		}, nil
	}

	return nil, fmt.Errorf("%w: %s in %s", ErrArtifactNotFound, appName, dir)
}

func matches(entryName, appName string) bool {
	if entryName == appName {
		return true
	}
	ext := filepath.Ext(entryName)
	switch strings.ToLower(ext) {
	case ".exe", ".app":
		return strings.TrimSuffix(entryName, ext) == appName
	}
	return false
}
