package packager

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Akaiko1/script-packager/internal/config"
	"github.com/Akaiko1/script-packager/internal/renderer"
	"github.com/Akaiko1/script-packager/internal/runner"
)

var (
	// ErrScriptNotFound is returned by Convert when the script path is not an existing file.
	ErrScriptNotFound = errors.New("script file does not exist")
	// ErrNotInstalled is returned by CheckInstalled when the interpreter cannot run the packager module.
	ErrNotInstalled = errors.New("PyInstaller is not installed")
)

// Builder defines the interface for turning a script into an executable.
type Builder interface {
	Convert(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// Invoker implements Builder by running PyInstaller as a child process.
type Invoker struct {
	config   *config.Config
	runner   runner.CommandRunner
	renderer renderer.CommandRenderer
	log      zerolog.Logger
}

// NewInvoker creates an Invoker. A nil runner falls back to os/exec.
func NewInvoker(cfg *config.Config, r runner.CommandRunner, log zerolog.Logger) *Invoker {
	if r == nil {
		r = runner.ExecRunner{}
	}
	return &Invoker{
		config:   cfg,
		runner:   r,
		renderer: renderer.ShellRenderer{},
		log:      log,
	}
}

// Convert runs PyInstaller for req and waits for it to finish.
//
// A missing script yields ErrScriptNotFound before anything is spawned. A non-zero exit
// is not an error: it comes back as a failed BuildResult carrying stderr. Errors are
// reserved for output directory creation and launch failures.
func (i *Invoker) Convert(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	if !isFile(req.ScriptPath) {
		return nil, fmt.Errorf("%w: %q", ErrScriptNotFound, req.ScriptPath)
	}

	if err := os.MkdirAll(i.config.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %q: %w", i.config.OutputDir, err)
	}

	command := Command(i.config, req)
	i.log.Info().Str("command", i.renderer.Render(command)).Msg("Running PyInstaller...")

	out, err := i.runner.Run(ctx, command[0], command[1:]...)
	if err != nil {
		return nil, fmt.Errorf("failed to launch packager: %w", err)
	}

	result := &BuildResult{
		Succeeded:  out.Success(),
		OutputText: string(out.Stdout),
		Command:    command,
	}
	if result.Succeeded {
		i.log.Debug().Msgf("PyInstaller output:\n%s", result.OutputText)
		return result, nil
	}

	result.ErrorText = "Error occurred during PyInstaller execution: " + string(out.Stderr)
	i.log.Error().Int("exit_code", out.ExitCode).Msg(result.ErrorText)
	return result, nil
}

// CheckInstalled verifies that the interpreter can import the packager module.
func (i *Invoker) CheckInstalled(ctx context.Context) error {
	out, err := i.runner.Run(ctx, i.config.Python, "-m", i.config.Module, "--version")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if !out.Success() {
		return fmt.Errorf("%w: %s", ErrNotInstalled, strings.TrimSpace(string(out.Stderr)))
	}
	i.log.Debug().Str("version", strings.TrimSpace(string(out.Stdout))).Msg("PyInstaller found")
	return nil
}
