package packager

import (
	"fmt"

	"github.com/Akaiko1/script-packager/internal/config"
)

// Args returns the PyInstaller arguments for req. The icon flag is present only when
// the icon path names something on disk; the script is always last.
func Args(cfg *config.Config, req BuildRequest) []string {
	name := req.AppName
	if name == "" {
		name = cfg.DefaultAppName
	}

	args := []string{
		"--onefile",
		"--windowed",
		fmt.Sprintf("--optimize=%d", cfg.OptimizeLevel),
		"--strip",
	}
	if req.IconPath != "" && exists(req.IconPath) {
		args = append(args, "--icon="+req.IconPath)
	}
	args = append(args,
		"--name="+name,
		"--distpath="+cfg.OutputDir,
		"--log-level="+cfg.LogLevel,
		req.ScriptPath,
	)
	return args
}

// Command returns the full invocation: the interpreter running the packager module with Args.
func Command(cfg *config.Config, req BuildRequest) []string {
	return append([]string{cfg.Python, "-m", cfg.Module}, Args(cfg, req)...)
}
