package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Config holds the values computed once at startup and handed to every component that needs them.
type Config struct {
	// OutputDir is where PyInstaller writes executables and what the reveal action opens.
	OutputDir string

	Python string
	Module string

	DefaultAppName string
	OptimizeLevel  int
	LogLevel       string

	ScriptExtensions []string
	IconExtensions   []string

	WindowTitle  string
	WindowWidth  float32
	WindowHeight float32
}

// New returns a configuration whose output directory lives under home.
func New(home string) *Config {
	return &Config{
		OutputDir:        filepath.Join(home, "output"),
		Python:           lookupPython(),
		Module:           "PyInstaller",
		DefaultAppName:   "App",
		OptimizeLevel:    1,
		LogLevel:         "DEBUG",
		ScriptExtensions: []string{".py", ".pyw"},
		IconExtensions:   []string{".ico"},
		WindowTitle:      "CounTrol - Python to EXE Converter",
		WindowWidth:      500,
		WindowHeight:     400,
	}
}

// DefaultConfig derives the configuration from the current user's home directory.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return New(home), nil
}

// lookupPython prefers python3 on PATH and falls back to the bare name so the launch error names it.
func lookupPython() string {
	for _, name := range []string{"python3", "python"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return "python"
}
