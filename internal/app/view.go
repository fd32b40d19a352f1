// 3D model view panel: offscreen render embedding and mouse interaction.
package app

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
)

// lastMousePos tracks previous mouse position for drag delta calculation.
var lastMousePos imgui.Vec2

// clickStart remembers where the left button went down over the view, so a
// release nearby can be treated as a pick instead of the end of a drag.
var (
	clickStart   imgui.Vec2
	clickPending bool
)

const clickSlopPx = 4

func (app *App) renderModelView() {
	avail := imgui.ContentRegionAvail()
	if avail.X < 64 || avail.Y < 64 {
		return
	}

	// Keep the offscreen target matched to the panel so picks map 1:1.
	fbW, fbH := app.renderer.Size()
	if fbW != int32(avail.X) || fbH != int32(avail.Y) {
		app.renderer.Resize(int32(avail.X), int32(avail.Y))
		fbW, fbH = app.renderer.Size()
	}

	textureID := app.renderer.Render(app.scene.Camera)

	origin := imgui.CursorScreenPos()

	// Display rendered texture (flip V for OpenGL)
	texRef := imgui.NewTextureRefTextureID(imgui.TextureID(textureID))
	imgui.ImageWithBgV(
		*texRef,
		imgui.NewVec2(avail.X, avail.Y),
		imgui.NewVec2(0, 1), // UV flipped
		imgui.NewVec2(1, 0),
		imgui.NewVec4(0.10, 0.11, 0.14, 1.0),
		imgui.NewVec4(1, 1, 1, 1),
	)

	app.handleViewInput(origin, avail.X, avail.Y, float32(fbW), float32(fbH))

	if app.scene.Loading() {
		app.renderLoadingOverlay(origin, avail)
	}
}

func (app *App) handleViewInput(origin imgui.Vec2, displayW, displayH, fbW, fbH float32) {
	hovered := imgui.IsItemHovered()
	cam := app.scene.Camera

	if hovered {
		mousePos := imgui.MousePos()

		if imgui.IsMouseClickedBool(imgui.MouseButtonLeft) {
			clickStart = mousePos
			clickPending = true
		}

		if imgui.IsMouseDragging(imgui.MouseButtonLeft) {
			cam.Dragging = true
			cam.HandleDrag(mousePos.X-lastMousePos.X, mousePos.Y-lastMousePos.Y)
		}
		lastMousePos = mousePos

		if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
			cam.HandleZoom(wheel)
		}

		if clickPending && !imgui.IsMouseDown(imgui.MouseButtonLeft) {
			clickPending = false
			dx := mousePos.X - clickStart.X
			dy := mousePos.Y - clickStart.Y
			if dx*dx+dy*dy <= clickSlopPx*clickSlopPx {
				// Image pixels may be scaled; map back to framebuffer space.
				px := (mousePos.X - origin.X) * fbW / displayW
				py := (mousePos.Y - origin.Y) * fbH / displayH
				app.scene.ResolveClick(px, py, fbW, fbH, app.renderer.ViewProj(cam))
			}
		}
	}

	if !imgui.IsMouseDown(imgui.MouseButtonLeft) {
		cam.Dragging = false
		if !hovered {
			clickPending = false
		}
	}
}

// renderLoadingOverlay draws a small animated badge while a model streams in.
func (app *App) renderLoadingOverlay(origin imgui.Vec2, avail imgui.Vec2) {
	dots := int(time.Now().UnixMilli()/300) % 4
	label := "Loading model" + "...."[:dots+1]

	flags := imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsNoResize |
		imgui.WindowFlagsNoMove | imgui.WindowFlagsNoScrollbar |
		imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	imgui.SetNextWindowPos(imgui.NewVec2(origin.X+avail.X/2-60, origin.Y+avail.Y/2-12))
	imgui.SetNextWindowBgAlpha(0.7)
	if imgui.BeginV("##LoadingOverlay", nil, flags) {
		imgui.Text(label)
		imgui.TextDisabled(fmt.Sprintf("%s system", app.scene.System().Label()))
	}
	imgui.End()
}
