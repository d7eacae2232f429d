package packager

import (
	"os"
	"strings"
)

// BuildRequest is gathered from the form at the moment a build is requested.
// Empty IconPath and AppName mean absent.
type BuildRequest struct {
	ScriptPath string
	IconPath   string
	AppName    string
}

// NewBuildRequest trims every field so whitespace-only input counts as absent.
func NewBuildRequest(script, icon, name string) BuildRequest {
	return BuildRequest{
		ScriptPath: strings.TrimSpace(script),
		IconPath:   strings.TrimSpace(icon),
		AppName:    strings.TrimSpace(name),
	}
}

// BuildResult is produced once per invocation and handed straight to the UI.
type BuildResult struct {
	Succeeded  bool
	OutputText string
	ErrorText  string
	Command    []string
}

// RevealEnabled decides the reveal control state after a build: success enables it,
// anything else leaves it as it was.
func RevealEnabled(prev bool, result *BuildResult) bool {
	if result != nil && result.Succeeded {
		return true
	}
	return prev
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
