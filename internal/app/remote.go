// Remote bridge glue: applies incoming commands and publishes state snapshots.
package app

import (
	"go.uber.org/zap"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
	"github.com/Sanskruti-Shete/anatomy-model/internal/logger"
	"github.com/Sanskruti-Shete/anatomy-model/internal/remote"
)

// drainRemoteCommands applies all queued remote commands on the main thread.
func (app *App) drainRemoteCommands() {
	if app.remote == nil {
		return
	}
	for {
		select {
		case cmd := <-app.remote.Commands():
			app.applyCommand(cmd)
		default:
			return
		}
	}
}

func (app *App) applyCommand(cmd remote.Command) {
	logger.Debug("remote command", zap.String("action", cmd.Action))

	switch cmd.Action {
	case "load_system":
		sys, err := anatomy.ParseSystem(cmd.System)
		if err != nil {
			logger.Warn("remote: unknown system", zap.String("system", cmd.System))
			return
		}
		app.scene.LoadSystem(sys)
	case "select_organ":
		if _, ok := app.scene.SelectOrgan(cmd.Organ); !ok {
			logger.Warn("remote: organ not in scene", zap.String("organ", cmd.Organ))
			return
		}
	case "clear_selection":
		app.scene.ClearSelection()
	case "toggle_symptom":
		app.scene.ToggleSymptom(cmd.Symptom)
	case "set_pain":
		app.scene.SetPainLevel(cmd.Pain)
		app.painLevel = app.scene.PainLevel()
	case "focus":
		app.scene.FocusSelected()
	case "reset_view":
		app.scene.ResetView()
	default:
		logger.Warn("remote: unknown action", zap.String("action", cmd.Action))
		return
	}
	app.stateDirty = true
}

// publishState broadcasts the current viewer snapshot to remote clients.
func (app *App) publishState() {
	if app.remote == nil {
		return
	}

	state := remote.State{
		System:         string(app.scene.System()),
		Loading:        app.scene.Loading(),
		ActiveSymptoms: app.scene.ActiveSymptoms(),
		PainLevel:      app.scene.PainLevel(),
	}
	if sel := app.scene.Selected(); sel != nil {
		state.SelectedLabel = sel.Label
		if sel.Organ != nil {
			state.SelectedOrgan = sel.Organ.ID
		}
	}
	app.remote.Publish(state)
}
