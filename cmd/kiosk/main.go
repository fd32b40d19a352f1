// Package main is a fullscreen, keyboard-driven anatomy viewer for exhibit
// kiosks. No panels: number keys switch systems, the mouse picks organs.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
	"github.com/Sanskruti-Shete/anatomy-model/internal/assets"
	"github.com/Sanskruti-Shete/anatomy-model/internal/config"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/camera"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/debug"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/input"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/model"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/render"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/scene"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/window"
	"github.com/Sanskruti-Shete/anatomy-model/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Anatomy Kiosk ===")

	if err := run(cfg); err != nil {
		logger.Error("kiosk error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("kiosk closed normally")
}

func run(cfg *config.Config) error {
	win, err := window.New(window.Config{
		Title:      "Anatomy Kiosk",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer win.Close()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("opengl init: %w", err)
	}

	library, err := anatomy.LoadLibrary()
	if err != nil {
		return fmt.Errorf("load anatomy library: %w", err)
	}

	cam := camera.NewOrbitCamera()
	cam.AutoRotate = cfg.Viewer.AutoRotate
	cam.AutoRotateSpeed = cfg.Viewer.AutoRotateSpeed

	sceneCfg := scene.DefaultConfig()
	sceneCfg.PainGlowCap = cfg.Viewer.PainGlowCap

	mgr := assets.NewManager(cfg.Assets.ModelsDir)
	sc := scene.New(sceneCfg, mgr, library, cam)
	defer sc.Destroy()

	winW, winH := win.GetSize()
	renderer, err := render.New(int32(winW), int32(winH))
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	k := &kiosk{
		cfg:      cfg,
		win:      win,
		in:       input.New(),
		scene:    sc,
		renderer: renderer,
		winW:     winW,
		winH:     winH,
		capture:  debug.NewScreenshotCapture(filepath.Join(os.TempDir(), "anatomy-kiosk"), "kiosk"),
	}
	sc.OnModelReady = func(system anatomy.System, _ *model.Model) {
		k.modelDirty = true
		win.SetTitle(fmt.Sprintf("Anatomy Kiosk - %s", system.Label()))
	}

	start, err := anatomy.ParseSystem(cfg.Viewer.DefaultSystem)
	if err != nil {
		start = anatomy.SystemAll
	}
	sc.LoadSystem(start)

	return k.loop()
}

// kiosk owns the main loop state.
type kiosk struct {
	cfg      *config.Config
	win      *window.Window
	in       *input.Input
	scene    *scene.Scene
	renderer *render.Renderer

	winW, winH int
	modelDirty bool
	capture    *debug.ScreenshotCapture

	// mouse drag state
	leftDown     bool
	dragged      bool
	lastX, lastY int
	downX, downY int
}

func (k *kiosk) loop() error {
	last := time.Now()
	for {
		if k.in.Update() {
			return nil
		}
		if k.handleEvents() {
			return nil
		}

		now := time.Now()
		dt := float32(now.Sub(last).Seconds())
		last = now
		if dt > 0.25 {
			dt = 0.25
		}

		k.scene.Update(dt)

		if k.modelDirty {
			k.modelDirty = false
			k.renderer.UploadModel(k.scene.Entries())
		}

		k.renderer.Render(k.scene.Camera)
		k.renderer.Blit(int32(k.winW), int32(k.winH))
		k.win.SwapBuffers()

		if !k.cfg.Graphics.VSync {
			sdl.Delay(15)
		}
	}
}

// handleEvents processes input. Returns true on quit.
func (k *kiosk) handleEvents() bool {
	cam := k.scene.Camera

	for _, e := range k.in.Events() {
		switch e.Type {
		case input.EventQuit:
			return true

		case input.EventWindowResize:
			k.winW, k.winH = e.Width, e.Height
			k.renderer.Resize(int32(e.Width), int32(e.Height))

		case input.EventKeyDown:
			if k.handleKey(e.Key) {
				return true
			}

		case input.EventMouseWheel:
			cam.HandleZoom(e.WheelY)

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				k.leftDown = true
				k.dragged = false
				k.downX, k.downY = e.MouseX, e.MouseY
				k.lastX, k.lastY = e.MouseX, e.MouseY
			}

		case input.EventMouseMove:
			if k.leftDown {
				dx := e.MouseX - k.lastX
				dy := e.MouseY - k.lastY
				k.lastX, k.lastY = e.MouseX, e.MouseY
				if abs(e.MouseX-k.downX) > 3 || abs(e.MouseY-k.downY) > 3 {
					k.dragged = true
				}
				if k.dragged {
					cam.Dragging = true
					cam.HandleDrag(float32(dx), float32(dy))
				}
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				if k.leftDown && !k.dragged {
					k.pick(e.MouseX, e.MouseY)
				}
				k.leftDown = false
				cam.Dragging = false
			}
		}
	}
	return false
}

// handleKey maps kiosk keys. Returns true on quit.
func (k *kiosk) handleKey(key sdl.Scancode) bool {
	systems := anatomy.Systems()

	switch key {
	case sdl.SCANCODE_ESCAPE:
		return true
	case sdl.SCANCODE_R:
		k.scene.ResetView()
	case sdl.SCANCODE_F:
		k.scene.FocusSelected()
	case sdl.SCANCODE_C:
		k.scene.ClearSelection()
	case sdl.SCANCODE_S:
		w, h := k.renderer.Size()
		path, err := k.capture.CaptureFromPixels(k.renderer.ReadPixels(), int(w), int(h))
		if err != nil {
			logger.Warn("screenshot failed", zap.Error(err))
		} else {
			logger.Info("screenshot saved", zap.String("path", path))
		}
	case sdl.SCANCODE_UP:
		k.scene.SetPainLevel(k.scene.PainLevel() + 1)
	case sdl.SCANCODE_DOWN:
		k.scene.SetPainLevel(k.scene.PainLevel() - 1)
	default:
		// 1..8 select a body system in display order
		if key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_8 {
			idx := int(key - sdl.SCANCODE_1)
			if idx < len(systems) {
				k.scene.LoadSystem(systems[idx])
			}
		}
	}
	return false
}

func (k *kiosk) pick(x, y int) {
	fbW, fbH := k.renderer.Size()
	px := float32(x) * float32(fbW) / float32(k.winW)
	py := float32(y) * float32(fbH) / float32(k.winH)
	if sel, ok := k.scene.ResolveClick(px, py, float32(fbW), float32(fbH),
		k.renderer.ViewProj(k.scene.Camera)); ok {
		logger.Info("picked organ", zap.String("label", sel.Label))
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
