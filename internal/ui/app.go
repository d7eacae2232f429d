package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"github.com/Akaiko1/script-packager/internal/config"
	"github.com/Akaiko1/script-packager/internal/opener"
	"github.com/Akaiko1/script-packager/internal/packager"
	"github.com/Akaiko1/script-packager/internal/scanner"
)

const (
	// Messages
	msgReady         = "Ready. Select a Python script to convert."
	msgBuilding      = "Running PyInstaller..."
	msgBuildSuccess  = "Executable created successfully!"
	msgBuildFailed   = "Build failed"
	msgOutputMissing = "Output folder does not exist."
	msgNotInstalled  = "PyInstaller is not installed. Please install it manually: pip install pyinstaller."
)

// BuilderApp is the single-window form that collects a build request and runs it.
type BuilderApp struct {
	// Core components
	app    fyne.App
	window fyne.Window
	config *config.Config
	log    zerolog.Logger

	// Services
	builder packager.Builder
	opener  opener.FolderOpener
	scanner scanner.ArtifactScanner

	// UI components
	scriptEntry *widget.Entry
	iconEntry   *widget.Entry
	nameEntry   *widget.Entry
	convertBtn  *widget.Button
	revealBtn   *widget.Button
	statusLabel *widget.Label

	// Tracks the build goroutine; at most one is running since convertBtn is disabled meanwhile.
	// Nothing waits on it while the app runs; tests use it to join a finished build.
	inflight sync.WaitGroup
}

// NewBuilderApp wires the form to its services. The window is created on fyneApp.
func NewBuilderApp(fyneApp fyne.App, cfg *config.Config, builder packager.Builder, log zerolog.Logger) *BuilderApp {
	window := fyneApp.NewWindow(cfg.WindowTitle)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))

	a := &BuilderApp{
		app:         fyneApp,
		window:      window,
		config:      cfg,
		log:         log,
		builder:     builder,
		opener:      opener.NewFyneFolderOpener(fyneApp),
		scanner:     scanner.OutputScanner{},
		scriptEntry: widget.NewEntry(),
		iconEntry:   widget.NewEntry(),
		nameEntry:   widget.NewEntry(),
		statusLabel: widget.NewLabel(msgReady),
	}
	a.scriptEntry.SetPlaceHolder("path/to/script.py")
	a.iconEntry.SetPlaceHolder("optional .ico file")
	a.nameEntry.SetPlaceHolder(cfg.DefaultAppName)

	a.convertBtn = widget.NewButton("Convert to EXE", a.onConvert)
	a.convertBtn.Importance = widget.HighImportance
	a.revealBtn = widget.NewButton("Open File Location", a.openFileLocation)
	a.revealBtn.Disable()

	a.window.SetContent(a.createMainContent())
	a.enableDragDrop()
	return a
}

// Run shows the window and blocks until it is closed.
func (a *BuilderApp) Run() {
	a.window.ShowAndRun()
}

// RunFatal shows only an error for err and quits when it is dismissed.
func (a *BuilderApp) RunFatal(err error) {
	a.window.SetContent(widget.NewLabel(msgNotInstalled))
	d := dialog.NewError(fmt.Errorf("%s\n\n%w", msgNotInstalled, err), a.window)
	d.SetOnClosed(a.app.Quit)
	a.window.Show()
	d.Show()
	a.app.Run()
}

// createMainContent creates the main UI content.
func (a *BuilderApp) createMainContent() fyne.CanvasObject {
	scriptRow := container.NewBorder(nil, nil, nil,
		widget.NewButton("Browse", a.selectScript), a.scriptEntry)
	iconRow := container.NewBorder(nil, nil, nil,
		widget.NewButton("Browse", a.selectIcon), a.iconEntry)

	form := container.NewVBox(
		widget.NewLabel("Select Python Script:"),
		scriptRow,
		widget.NewLabel("Select Icon (.ico) File (Optional):"),
		iconRow,
		widget.NewLabel("Enter App Name (Optional):"),
		a.nameEntry,
	)
	actions := container.NewVBox(a.convertBtn, a.revealBtn, a.statusLabel)

	return container.NewPadded(container.NewVBox(form, actions))
}

// selectScript opens a file dialog filtered to Python scripts.
func (a *BuilderApp) selectScript() {
	a.showOpenDialog(a.config.ScriptExtensions, a.setScriptPath)
}

// selectIcon opens a file dialog filtered to icon files.
func (a *BuilderApp) selectIcon() {
	a.showOpenDialog(a.config.IconExtensions, a.setIconPath)
}

func (a *BuilderApp) showOpenDialog(extensions []string, onSelected func(string)) {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			a.showError("File Selection Error", err)
			return
		}
		if reader == nil {
			return // User cancelled
		}
		defer reader.Close()
		onSelected(reader.URI().Path())
	}, a.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(extensions))
	fileDialog.Show()
}

// setScriptPath replaces the script field on a non-empty selection.
func (a *BuilderApp) setScriptPath(path string) {
	if path != "" {
		a.scriptEntry.SetText(path)
	}
}

// setIconPath replaces the icon field on a non-empty selection.
func (a *BuilderApp) setIconPath(path string) {
	if path != "" {
		a.iconEntry.SetText(path)
	}
}

// onConvert reads the form and starts a build off the UI thread.
func (a *BuilderApp) onConvert() {
	req := packager.NewBuildRequest(a.scriptEntry.Text, a.iconEntry.Text, a.nameEntry.Text)

	a.convertBtn.Disable()
	a.statusLabel.SetText(msgBuilding)

	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()

		result, err := a.builder.Convert(context.Background(), req)
		fyne.Do(func() {
			a.applyResult(req, result, err)
		})
	}()
}

// applyResult surfaces a finished build. It must run on the UI thread.
func (a *BuilderApp) applyResult(req packager.BuildRequest, result *packager.BuildResult, err error) {
	defer a.convertBtn.Enable()

	if err != nil {
		a.log.Error().Err(err).Msg("build not started")
		a.statusLabel.SetText(msgBuildFailed)
		if errors.Is(err, packager.ErrScriptNotFound) {
			dialog.ShowError(errors.New(scriptMissingMessage(req.ScriptPath)), a.window)
			return
		}
		dialog.ShowError(err, a.window)
		return
	}

	if packager.RevealEnabled(!a.revealBtn.Disabled(), result) {
		a.revealBtn.Enable()
	}

	if !result.Succeeded {
		a.statusLabel.SetText(msgBuildFailed)
		dialog.ShowError(errors.New(result.ErrorText), a.window)
		return
	}

	a.statusLabel.SetText(a.successStatus(req))
	dialog.ShowInformation("Success", msgBuildSuccess, a.window)
}

func scriptMissingMessage(path string) string {
	return fmt.Sprintf("The script file '%s' does not exist.", path)
}

func (a *BuilderApp) successStatus(req packager.BuildRequest) string {
	name := req.AppName
	if name == "" {
		name = a.config.DefaultAppName
	}
	artifact, err := a.scanner.FindArtifact(a.config.OutputDir, name)
	if err != nil {
		a.log.Warn().Err(err).Msg("built executable not found")
		return fmt.Sprintf("%s Output: %s", msgBuildSuccess, a.config.OutputDir)
	}
	return fmt.Sprintf("%s %s (%d bytes)", msgBuildSuccess, artifact.Path, artifact.Size)
}

// openFileLocation reveals the output directory in the platform file browser.
func (a *BuilderApp) openFileLocation() {
	err := opener.Reveal(a.opener, a.config.OutputDir)
	if errors.Is(err, opener.ErrOutputMissing) {
		a.statusLabel.SetText(msgOutputMissing)
		dialog.ShowError(errors.New(msgOutputMissing), a.window)
		return
	}
	if err != nil {
		a.showError("Open Folder Error", err)
	}
}

// showError shows an error dialog.
func (a *BuilderApp) showError(title string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", title, err), a.window)
}

// enableDragDrop routes files dropped on the window into the form.
func (a *BuilderApp) enableDragDrop() {
	a.window.SetOnDropped(func(_ fyne.Position, uris []fyne.URI) {
		a.handleDropped(uris)
	})
}

// handleDropped fills the script or icon field from local files with a matching extension.
func (a *BuilderApp) handleDropped(uris []fyne.URI) {
	for _, uri := range uris {
		if uri.Scheme() != "file" {
			continue
		}
		path := uri.Path()
		ext := strings.ToLower(filepath.Ext(path))
		switch {
		case hasExtension(a.config.ScriptExtensions, ext):
			a.setScriptPath(path)
		case hasExtension(a.config.IconExtensions, ext):
			a.setIconPath(path)
		}
	}
}

func hasExtension(extensions []string, ext string) bool {
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
