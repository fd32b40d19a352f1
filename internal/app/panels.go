// Side panels: system selection, organ search, organ details, symptoms, pain.
package app

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
)

func (app *App) renderSystemsPanel() {
	imgui.Text("Body Systems")
	imgui.Separator()

	current := app.scene.System()
	for _, sys := range anatomy.Systems() {
		if imgui.SelectableBoolV(sys.Label(), sys == current, 0, imgui.NewVec2(0, 0)) && sys != current {
			app.scene.LoadSystem(sys)
			app.stateDirty = true
		}
	}

	imgui.Spacing()
	imgui.Separator()
	imgui.Text("Search Organs")

	imgui.SetNextItemWidth(-1)
	imgui.InputTextWithHint("##organsearch", "e.g. liver", &app.searchText, 0, nil)

	if app.searchText != "" {
		results := app.library.SearchOrgans(app.searchText)
		if len(results) == 0 {
			imgui.TextDisabled("No matches")
		}
		for _, organ := range results {
			label := fmt.Sprintf("%s (%s)", organ.Name, organ.System.Label())
			if imgui.SelectableBoolV(label, false, 0, imgui.NewVec2(0, 0)) {
				if organ.System != current {
					app.scene.LoadSystem(organ.System)
				}
				if _, ok := app.scene.SelectOrgan(organ.ID); ok {
					app.scene.FocusSelected()
				}
				app.stateDirty = true
			}
		}
	}
}

func (app *App) renderDetailsPanel() {
	app.renderOrganInfo()
	imgui.Spacing()
	imgui.Separator()
	app.renderSymptoms()
	imgui.Spacing()
	imgui.Separator()
	app.renderPainSlider()
}

func (app *App) renderOrganInfo() {
	sel := app.scene.Selected()
	if sel == nil {
		imgui.TextDisabled("Click an organ to inspect it")
		return
	}

	imgui.Text(sel.Label)
	if imgui.Button("Focus") {
		app.scene.FocusSelected()
	}
	imgui.SameLine()
	if imgui.Button("Deselect") {
		app.scene.ClearSelection()
		app.stateDirty = true
		return
	}
	imgui.Separator()

	organ := sel.Organ
	if organ == nil {
		imgui.TextDisabled("No reference data for this structure")
		return
	}

	imgui.Text("Location:")
	imgui.TextWrapped(organ.Location)
	imgui.Spacing()
	imgui.Text("Description:")
	imgui.TextWrapped(organ.Description)
	imgui.Spacing()
	imgui.Text("Function:")
	imgui.TextWrapped(organ.Function)

	if len(organ.Symptoms) > 0 {
		imgui.Spacing()
		imgui.Text("Related symptoms:")
		for _, id := range organ.Symptoms {
			if sym := app.library.SymptomByID(id); sym != nil {
				imgui.BulletText(sym.Name)
			}
		}
	}
}

func (app *App) renderSymptoms() {
	imgui.Text("Symptoms")
	imgui.SameLine()
	if n := app.scene.AffectedCount(); n > 0 {
		imgui.TextDisabled(fmt.Sprintf("(%d organs affected)", n))
	} else {
		imgui.TextDisabled("(none active)")
	}

	active := make(map[string]bool)
	for _, id := range app.scene.ActiveSymptoms() {
		active[id] = true
	}

	for _, category := range app.library.SymptomCategories() {
		if !imgui.TreeNodeExStrV(category, imgui.TreeNodeFlagsDefaultOpen) {
			continue
		}
		for _, sym := range app.library.SymptomsForCategory(category) {
			on := active[sym.ID]
			if imgui.Checkbox(sym.Name, &on) {
				app.scene.ToggleSymptom(sym.ID)
				app.stateDirty = true
			}
			imgui.SameLine()
			imgui.TextColored(severityColor(sym.Severity), sym.Severity)
			if imgui.IsItemHovered() {
				imgui.SetTooltip(sym.Description)
			}
		}
		imgui.TreePop()
	}
}

func (app *App) renderPainSlider() {
	imgui.Text("Pain Level")
	imgui.SetNextItemWidth(-1)
	if imgui.SliderFloatV("##pain", &app.painLevel, 0, 10, "%.0f", imgui.SliderFlagsNone) {
		app.scene.SetPainLevel(app.painLevel)
		app.stateDirty = true
	}
	imgui.TextDisabled("Scales the highlight glow on affected organs")
}

func severityColor(severity string) imgui.Vec4 {
	switch severity {
	case "severe":
		return imgui.NewVec4(0.95, 0.3, 0.25, 1)
	case "moderate":
		return imgui.NewVec4(0.95, 0.75, 0.2, 1)
	default:
		return imgui.NewVec4(0.5, 0.8, 0.5, 1)
	}
}
