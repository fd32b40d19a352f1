// Package app wires the anatomy viewer UI: window, panels, 3D view and the
// optional remote control bridge.
package app

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
	"github.com/Sanskruti-Shete/anatomy-model/internal/assets"
	"github.com/Sanskruti-Shete/anatomy-model/internal/config"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/camera"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/debug"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/model"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/render"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/scene"
	"github.com/Sanskruti-Shete/anatomy-model/internal/logger"
	"github.com/Sanskruti-Shete/anatomy-model/internal/remote"
)

// App holds all viewer state.
type App struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]

	cfg      *config.Config
	library  *anatomy.Library
	assets   *assets.Manager
	scene    *scene.Scene
	renderer *render.Renderer
	remote   *remote.Server

	lastFrame time.Time

	// modelDirty requests a GPU re-upload of the scene meshes next frame.
	modelDirty bool
	// stateDirty requests a remote state broadcast next frame.
	stateDirty bool

	// UI state
	searchText string
	painLevel  float32

	// File dialog result, handed off from the dialog goroutine.
	pendingModel pendingPath

	// Screenshot state (captured next frame to get rendered content)
	capture             *debug.ScreenshotCapture
	screenshotRequested bool

	// Notification overlay state
	statusMsg  string
	statusTime time.Time
}

// New creates the application: reference data, scene, window and backend.
func New(cfg *config.Config) (*App, error) {
	library, err := anatomy.LoadLibrary()
	if err != nil {
		return nil, fmt.Errorf("load anatomy library: %w", err)
	}

	cam := camera.NewOrbitCamera()
	cam.AutoRotate = cfg.Viewer.AutoRotate
	cam.AutoRotateSpeed = cfg.Viewer.AutoRotateSpeed

	mgr := assets.NewManager(cfg.Assets.ModelsDir)

	sceneCfg := scene.DefaultConfig()
	sceneCfg.PainGlowCap = cfg.Viewer.PainGlowCap

	app := &App{
		cfg:       cfg,
		library:   library,
		assets:    mgr,
		scene:     scene.New(sceneCfg, mgr, library, cam),
		painLevel: 5,
		capture:   debug.NewScreenshotCapture(filepath.Join(os.TempDir(), "anatomy-explorer"), "view"),
	}

	app.scene.OnModelReady = func(system anatomy.System, m *model.Model) {
		app.modelDirty = true
		app.stateDirty = true
		app.showNotification(fmt.Sprintf("%s loaded (%d meshes)",
			system.Label(), len(m.MeshNodes())))
	}
	app.scene.OnSelect = func(sel scene.Selection, ok bool) {
		app.stateDirty = true
		if ok {
			app.showNotification("Selected: " + sel.Label)
		}
	}

	if cfg.Remote.Enabled {
		app.remote = remote.NewServer(cfg.Remote.Listen)
	}

	app.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	app.backend.SetBgColor(imgui.NewVec4(0.08, 0.09, 0.11, 1.0))
	app.backend.CreateWindow("Anatomy Explorer", cfg.Graphics.Width, cfg.Graphics.Height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("opengl init: %w", err)
	}

	return app, nil
}

// Run starts the remote bridge and the main UI loop. Blocks until exit.
func (app *App) Run() {
	if app.remote != nil {
		app.remote.Start()
	}

	// Kick off the initial system load before the first frame.
	start, err := anatomy.ParseSystem(app.cfg.Viewer.DefaultSystem)
	if err != nil {
		logger.Warn("bad default system, using full body",
			zap.String("system", app.cfg.Viewer.DefaultSystem))
		start = anatomy.SystemAll
	}
	app.scene.LoadSystem(start)

	app.lastFrame = time.Now()
	app.backend.Run(app.render)
}

// Close tears down the scene, renderer and remote bridge in order.
func (app *App) Close() {
	app.scene.Destroy()
	if app.renderer != nil {
		app.renderer.Destroy()
		app.renderer = nil
	}
	if app.remote != nil {
		app.remote.Close()
		app.remote = nil
	}
}

// render is called each frame to draw the UI.
func (app *App) render() {
	now := time.Now()
	dt := float32(now.Sub(app.lastFrame).Seconds())
	app.lastFrame = now
	if dt > 0.25 {
		dt = 0.25 // Clamp after stalls so camera flights do not jump
	}

	// The GL context exists only after window creation, so the offscreen
	// renderer is created lazily on the first frame.
	if app.renderer == nil {
		r, err := render.New(1024, 768)
		if err != nil {
			logger.Error("renderer init failed", zap.Error(err))
			os.Exit(1)
		}
		app.renderer = r
	}

	// Deferred capture so the framebuffer holds the previous frame's content.
	if app.screenshotRequested {
		app.screenshotRequested = false
		app.captureScreenshot()
	}

	app.drainRemoteCommands()

	// Process pending file dialog result (must be on main thread for SDL/Cocoa)
	if path, ok := app.pendingModel.take(); ok {
		app.assets.SetOverride(app.scene.System(), path)
		app.scene.LoadSystem(app.scene.System())
		app.showNotification("Loading model: " + path)
	}

	app.handleShortcuts()

	app.scene.Update(dt)

	if app.modelDirty {
		app.modelDirty = false
		app.renderer.UploadModel(app.scene.Entries())
	}

	app.renderMenuBar()

	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()

	// Keep the config current so a clean exit persists the last session.
	winSize := viewport.Size()
	app.cfg.Graphics.Width = int(winSize.X)
	app.cfg.Graphics.Height = int(winSize.Y)
	app.cfg.Viewer.DefaultSystem = string(app.scene.System())

	leftPanelWidth := float32(260)
	rightPanelWidth := float32(320)
	statusBarHeight := float32(28)
	contentHeight := workSize.Y - statusBarHeight
	viewWidth := workSize.X - leftPanelWidth - rightPanelWidth

	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(workPos)
	imgui.SetNextWindowSize(imgui.NewVec2(leftPanelWidth, contentHeight))
	if imgui.BeginV("Systems", nil, flags) {
		app.renderSystemsPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(viewWidth, contentHeight))
	if imgui.BeginV("Model", nil, flags) {
		app.renderModelView()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+leftPanelWidth+viewWidth, workPos.Y))
	imgui.SetNextWindowSize(imgui.NewVec2(rightPanelWidth, contentHeight))
	if imgui.BeginV("Details", nil, flags) {
		app.renderDetailsPanel()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X, workPos.Y+contentHeight))
	imgui.SetNextWindowSize(imgui.NewVec2(workSize.X, statusBarHeight))
	statusFlags := flags | imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoScrollbar
	if imgui.BeginV("##StatusBar", nil, statusFlags) {
		app.renderStatusBar()
	}
	imgui.End()

	app.renderNotification(workPos)

	if app.stateDirty {
		app.stateDirty = false
		app.publishState()
	}
}

// captureScreenshot saves the offscreen view to the capture directory.
func (app *App) captureScreenshot() {
	w, h := app.renderer.Size()
	path, err := app.capture.CaptureFromPixels(app.renderer.ReadPixels(), int(w), int(h))
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	app.showNotification("Saved " + path)
}

// handleShortcuts processes global keyboard shortcuts.
func (app *App) handleShortcuts() {
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF12)) {
		app.screenshotRequested = true
	}
	if imgui.IsAnyItemActive() {
		return
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyR)) {
		app.scene.ResetView()
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyF)) {
		app.scene.FocusSelected()
	}
	if imgui.IsKeyChordPressed(imgui.KeyChord(imgui.KeyEscape)) {
		app.scene.ClearSelection()
		app.stateDirty = true
	}
}

// openModelDialog shows a native file dialog to pick a glTF model.
func (app *App) openModelDialog() {
	// Run in goroutine to not block the UI. SDL/Cocoa window operations must
	// happen on the main thread, so only the pending path is set here and
	// processed in render().
	go func() {
		filename, err := dialog.File().
			Filter("glTF Models", "glb", "gltf").
			Filter("All Files", "*").
			Title("Open Model").
			Load()

		if err != nil {
			if err != dialog.ErrCancelled {
				logger.Warn("file dialog failed", zap.Error(err))
			}
			return
		}

		app.pendingModel.set(filename)
	}()
}

func (app *App) renderMenuBar() {
	if !imgui.BeginMainMenuBar() {
		return
	}
	if imgui.BeginMenu("File") {
		if imgui.MenuItemBool("Open Model...") {
			app.openModelDialog()
		}
		imgui.Separator()
		if imgui.MenuItemBool("Exit") {
			app.Close()
			os.Exit(0)
		}
		imgui.EndMenu()
	}
	if imgui.BeginMenu("View") {
		if imgui.MenuItemBool("Reset View") {
			app.scene.ResetView()
		}
		if imgui.MenuItemBool("Focus Selected") {
			app.scene.FocusSelected()
		}
		imgui.Separator()
		for _, preset := range [][2]string{
			{"Front", "front"}, {"Back", "back"}, {"Left", "left"},
			{"Right", "right"}, {"Top", "top"},
		} {
			if imgui.MenuItemBool(preset[0]) {
				app.scene.Camera.FlyPreset(preset[1], 0.6)
			}
		}
		imgui.Separator()
		autoRotate := app.scene.Camera.AutoRotate
		if imgui.Checkbox("Auto-Rotate", &autoRotate) {
			app.scene.Camera.AutoRotate = autoRotate
			app.cfg.Viewer.AutoRotate = autoRotate
		}
		imgui.EndMenu()
	}
	imgui.EndMainMenuBar()
}

func (app *App) renderStatusBar() {
	sys := app.scene.System()
	status := fmt.Sprintf("System: %s", sys.Label())
	if app.scene.Loading() {
		status += " | loading..."
	}
	if sel := app.scene.Selected(); sel != nil {
		status += " | Selected: " + sel.Label
	}
	if n := app.scene.AffectedCount(); n > 0 {
		status += fmt.Sprintf(" | %d organs affected", n)
	}
	if app.remote != nil {
		status += " | remote: " + app.cfg.Remote.Listen
	}
	imgui.Text(status)
}

// renderNotification shows a transient message overlay for 2 seconds.
func (app *App) renderNotification(workPos imgui.Vec2) {
	if app.statusMsg == "" {
		return
	}
	if time.Since(app.statusTime) > 2*time.Second {
		app.statusMsg = ""
		return
	}
	notifyFlags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(workPos.X+10, workPos.Y+10))
	imgui.SetNextWindowBgAlpha(0.85)
	if imgui.BeginV("##Notify", nil, notifyFlags) {
		imgui.Text(app.statusMsg)
	}
	imgui.End()
}

func (app *App) showNotification(msg string) {
	app.statusMsg = msg
	app.statusTime = time.Now()
}
