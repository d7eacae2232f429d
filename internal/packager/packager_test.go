package packager

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akaiko1/script-packager/internal/config"
	"github.com/Akaiko1/script-packager/internal/runner"
)

type call struct {
	name string
	args []string
}

type fakeRunner struct {
	out   *runner.Output
	err   error
	calls []call
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (*runner.Output, error) {
	f.calls = append(f.calls, call{name: name, args: args})
	if f.err != nil {
		return nil, f.err
	}
	return f.out, nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.New(t.TempDir())
	cfg.Python = "python3"
	return cfg
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("print('hi')\n"), 0o644))
	return path
}

func newInvoker(cfg *config.Config, r runner.CommandRunner) *Invoker {
	return NewInvoker(cfg, r, zerolog.New(io.Discard))
}

func TestNewBuildRequestTrims(t *testing.T) {
	req := NewBuildRequest("  /tmp/app.py\n", "   ", "\tMyTool ")
	assert.Equal(t, BuildRequest{ScriptPath: "/tmp/app.py", AppName: "MyTool"}, req)
}

func TestArgsDefaults(t *testing.T) {
	cfg := testConfig(t)
	args := Args(cfg, BuildRequest{ScriptPath: "/tmp/app.py"})

	assert.Equal(t, []string{
		"--onefile",
		"--windowed",
		"--optimize=1",
		"--strip",
		"--name=App",
		"--distpath=" + cfg.OutputDir,
		"--log-level=DEBUG",
		"/tmp/app.py",
	}, args)
}

func TestArgsMissingIconDropped(t *testing.T) {
	cfg := testConfig(t)
	missing := filepath.Join(t.TempDir(), "missing.ico")
	args := Args(cfg, BuildRequest{ScriptPath: "/tmp/app.py", IconPath: missing, AppName: "MyTool"})

	assert.Contains(t, args, "--name=MyTool")
	for _, arg := range args {
		assert.NotContains(t, arg, "--icon")
	}
	assert.Equal(t, "/tmp/app.py", args[len(args)-1])
}

func TestArgsValidIcon(t *testing.T) {
	cfg := testConfig(t)
	icon := touch(t, t.TempDir(), "app.ico")
	args := Args(cfg, BuildRequest{ScriptPath: "/tmp/app.py", IconPath: icon})

	assert.Contains(t, args, "--icon="+icon)
	assert.Contains(t, args, "--name=App")
	assert.Equal(t, "/tmp/app.py", args[len(args)-1])
}

func TestCommandPrefix(t *testing.T) {
	cfg := testConfig(t)
	cmd := Command(cfg, BuildRequest{ScriptPath: "/tmp/app.py"})
	assert.Equal(t, []string{"python3", "-m", "PyInstaller", "--onefile"}, cmd[:4])
}

func TestConvertMissingScriptSpawnsNothing(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeRunner{out: &runner.Output{}}

	result, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: "/does/not/exist.py"})
	require.ErrorIs(t, err, ErrScriptNotFound)
	assert.Nil(t, result)
	assert.Empty(t, fake.calls)

	_, statErr := os.Stat(cfg.OutputDir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvertDirectoryAsScript(t *testing.T) {
	cfg := testConfig(t)
	fake := &fakeRunner{out: &runner.Output{}}

	_, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: t.TempDir()})
	assert.ErrorIs(t, err, ErrScriptNotFound)
	assert.Empty(t, fake.calls)
}

func TestConvertSuccess(t *testing.T) {
	cfg := testConfig(t)
	script := touch(t, t.TempDir(), "app.py")
	fake := &fakeRunner{out: &runner.Output{Stdout: []byte("Building EXE... done")}}

	result, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: script})
	require.NoError(t, err)
	assert.True(t, result.Succeeded)
	assert.Equal(t, "Building EXE... done", result.OutputText)
	assert.Empty(t, result.ErrorText)

	require.Len(t, fake.calls, 1)
	assert.Equal(t, "python3", fake.calls[0].name)
	assert.Equal(t, script, fake.calls[0].args[len(fake.calls[0].args)-1])
	assert.Equal(t, result.Command[1:], fake.calls[0].args)
	assert.DirExists(t, cfg.OutputDir)
}

func TestConvertFailure(t *testing.T) {
	cfg := testConfig(t)
	script := touch(t, t.TempDir(), "app.py")
	fake := &fakeRunner{out: &runner.Output{Stderr: []byte("SyntaxError"), ExitCode: 1}}

	result, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: script})
	require.NoError(t, err)
	assert.False(t, result.Succeeded)
	assert.Equal(t, "Error occurred during PyInstaller execution: SyntaxError", result.ErrorText)
}

func TestConvertLaunchFailure(t *testing.T) {
	cfg := testConfig(t)
	script := touch(t, t.TempDir(), "app.py")
	fake := &fakeRunner{err: errors.New("exec: not found")}

	_, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: script})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch packager")
}

func TestConvertOutputDirBlocked(t *testing.T) {
	cfg := testConfig(t)
	dir := t.TempDir()
	script := touch(t, dir, "app.py")
	cfg.OutputDir = filepath.Join(script, "output")
	fake := &fakeRunner{out: &runner.Output{}}

	_, err := newInvoker(cfg, fake).Convert(context.Background(), BuildRequest{ScriptPath: script})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output directory")
	assert.Empty(t, fake.calls)
}

func TestRevealEnabled(t *testing.T) {
	ok := &BuildResult{Succeeded: true}
	failed := &BuildResult{Succeeded: false}

	assert.True(t, RevealEnabled(false, ok))
	assert.True(t, RevealEnabled(true, ok))
	assert.False(t, RevealEnabled(false, failed))
	assert.True(t, RevealEnabled(true, failed))
	assert.False(t, RevealEnabled(false, nil))
}

func TestCheckInstalled(t *testing.T) {
	cfg := testConfig(t)

	fake := &fakeRunner{out: &runner.Output{Stdout: []byte("6.10.0\n")}}
	require.NoError(t, newInvoker(cfg, fake).CheckInstalled(context.Background()))
	require.Len(t, fake.calls, 1)
	assert.Equal(t, []string{"-m", "PyInstaller", "--version"}, fake.calls[0].args)

	fake = &fakeRunner{out: &runner.Output{Stderr: []byte("No module named PyInstaller"), ExitCode: 1}}
	err := newInvoker(cfg, fake).CheckInstalled(context.Background())
	assert.ErrorIs(t, err, ErrNotInstalled)

	fake = &fakeRunner{err: errors.New("not found")}
	err = newInvoker(cfg, fake).CheckInstalled(context.Background())
	assert.ErrorIs(t, err, ErrNotInstalled)
}
