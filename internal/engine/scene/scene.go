// Package scene keeps the on-screen 3D model, the organ catalog, and the
// user's selection and symptom state in sync. It owns no GPU resources;
// renderers read its entries each frame.
package scene

import (
	"fmt"
	gomath "math"

	"go.uber.org/zap"

	"github.com/Sanskruti-Shete/anatomy-model/internal/anatomy"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/camera"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/model"
	"github.com/Sanskruti-Shete/anatomy-model/internal/engine/picking"
	"github.com/Sanskruti-Shete/anatomy-model/internal/logger"
	"github.com/Sanskruti-Shete/anatomy-model/pkg/math"
)

// Loader resolves a body system to its model document. Implementations may
// block; the scene always calls Load off the render goroutine.
type Loader interface {
	Load(system anatomy.System) (*model.Model, error)
}

// Highlight identifies why a mesh is glowing.
type Highlight int

const (
	HighlightNone Highlight = iota
	HighlightAffected
	HighlightSelected
)

// Highlight colors. Selection is a fixed blue; symptom glow is red scaled
// by pain level.
var (
	selectColor = [3]float32{0.2, 0.45, 1.0}
	painColor   = [3]float32{1.0, 0.15, 0.1}
)

// MeshEntry is the scene's record of one drawable node: its authored name,
// the organ it maps to (if any), world bounds for picking, and the current
// highlight color the renderer should apply.
type MeshEntry struct {
	Node  *model.Node
	Name  string
	Label string         // display label, resolved at registration
	Organ *anatomy.Organ // nil when the node matches no catalog organ

	Bounds picking.AABB

	Highlight Highlight
	Emissive  [3]float32
}

// Selection describes what a click resolved to.
type Selection struct {
	Entry *MeshEntry
	Label string
	Organ *anatomy.Organ
}

type loadResult struct {
	seq    uint64
	system anatomy.System
	model  *model.Model
	err    error
}

// Config tunes scene behavior.
type Config struct {
	PainGlowCap   float32 // upper bound on symptom glow intensity
	FlightSec     float32 // duration of a focus flight
	PlaceholderOK bool    // substitute placeholder geometry when a load fails
}

// DefaultConfig returns the viewer defaults.
func DefaultConfig() Config {
	return Config{
		PainGlowCap:   0.5,
		FlightSec:     0.8,
		PlaceholderOK: true,
	}
}

// Scene is the viewer's synchronization hub. All methods must be called
// from the render goroutine; background loads hand their results over a
// channel that Update drains.
type Scene struct {
	cfg     Config
	loader  Loader
	library *anatomy.Library
	Camera  *camera.OrbitCamera

	system  anatomy.System
	model   *model.Model
	entries []*MeshEntry

	selected       *MeshEntry
	activeSymptoms []string
	painLevel      float32

	loading   bool
	loadSeq   uint64
	results   chan loadResult
	destroyed bool

	// OnModelReady fires on the render tick after a model is installed,
	// including placeholder fallbacks.
	OnModelReady func(system anatomy.System, m *model.Model)
	// OnSelect fires when a click resolves, with ok=false on deselection.
	OnSelect func(sel Selection, ok bool)
}

// New creates a scene. The loader and library must be non-nil.
func New(cfg Config, loader Loader, library *anatomy.Library, cam *camera.OrbitCamera) *Scene {
	return &Scene{
		cfg:       cfg,
		loader:    loader,
		library:   library,
		Camera:    cam,
		painLevel: 5,
		results:   make(chan loadResult, 8),
	}
}

// System returns the currently displayed (or loading) body system.
func (s *Scene) System() anatomy.System { return s.system }

// Model returns the installed model document, nil before the first load.
func (s *Scene) Model() *model.Model { return s.model }

// Entries returns the drawable records for the current model.
func (s *Scene) Entries() []*MeshEntry { return s.entries }

// Loading reports whether a system load is in flight.
func (s *Scene) Loading() bool { return s.loading }

// Selected returns the selected entry, nil when nothing is selected.
func (s *Scene) Selected() *MeshEntry { return s.selected }

// PainLevel returns the current pain slider value (0-10).
func (s *Scene) PainLevel() float32 { return s.painLevel }

// ActiveSymptoms returns the toggled symptom IDs.
func (s *Scene) ActiveSymptoms() []string { return s.activeSymptoms }

// LoadSystem kicks off an asynchronous load of a body system's model.
// Starting a new load supersedes any in-flight one: whichever request is
// newest wins, regardless of completion order.
func (s *Scene) LoadSystem(system anatomy.System) {
	if s.destroyed {
		return
	}
	s.loadSeq++
	seq := s.loadSeq
	s.loading = true
	s.system = system
	// The previous model and its registry stay installed until the
	// replacement arrives, so the old scene keeps rendering during the
	// load. Clicks are gated on the loading flag meanwhile.
	logger.Info("loading system model",
		zap.String("system", string(system)),
		zap.Uint64("seq", seq))

	go func() {
		m, err := s.loader.Load(system)
		s.results <- loadResult{seq: seq, system: system, model: m, err: err}
	}()
}

// Update advances the scene by dt seconds: it installs finished loads,
// steps the camera, and recomputes highlight colors. Call once per frame.
func (s *Scene) Update(dt float32) {
	s.drainLoads()
	s.Camera.Update(dt)
	s.ApplyHighlights()
}

func (s *Scene) drainLoads() {
	for {
		select {
		case res := <-s.results:
			if res.seq != s.loadSeq {
				// A newer request superseded this one.
				logger.Debug("discarding stale model load",
					zap.String("system", string(res.system)),
					zap.Uint64("seq", res.seq))
				continue
			}
			s.loading = false
			if res.err != nil {
				logger.Error("system model load failed",
					zap.String("system", string(res.system)),
					zap.Error(res.err))
				if !s.cfg.PlaceholderOK {
					continue
				}
				res.model = s.placeholderFor(res.system)
			}
			s.install(res.system, res.model)
		default:
			return
		}
	}
}

// placeholderFor builds stand-in geometry named after the system's organs,
// so selection and symptom glow keep working without the real asset.
func (s *Scene) placeholderFor(system anatomy.System) *model.Model {
	var names []string
	for _, o := range s.library.OrgansForSystem(system) {
		names = append(names, o.Name)
	}
	return model.Placeholder(system.Label(), names)
}

// install replaces the displayed model and rebuilds the mesh registry.
// Selection does not survive a system switch; symptom state does.
func (s *Scene) install(system anatomy.System, m *model.Model) {
	s.system = system
	s.model = m
	s.selected = nil
	s.entries = s.entries[:0]

	for _, node := range m.MeshNodes() {
		entry := &MeshEntry{
			Node: node,
			Name: node.Name,
		}
		wb := node.WorldBounds()
		entry.Bounds = picking.AABB{Min: wb.Min, Max: wb.Max}

		if organ := s.library.OrganByName(node.Name); organ != nil {
			entry.Organ = organ
			entry.Label = organ.Name
		} else {
			entry.Label = node.DisplayLabel()
		}
		s.entries = append(s.entries, entry)
	}

	home := s.Camera.PoseForBounds(m.Bounds.Center(), m.Bounds.MaxExtent())
	s.Camera.SetHome(home)

	logger.Info("system model ready",
		zap.String("system", string(system)),
		zap.String("model", m.Name),
		zap.Int("meshes", len(s.entries)))

	if s.OnModelReady != nil {
		s.OnModelReady(system, m)
	}
}

// ResolveClick casts a ray through a viewport pixel and selects the nearest
// mesh it hits. A miss clears the selection. Clicks are ignored while a
// load is in flight, since the registry would not match what is on screen.
func (s *Scene) ResolveClick(screenX, screenY, viewportW, viewportH float32, viewProj math.Mat4) (Selection, bool) {
	if s.loading || len(s.entries) == 0 {
		return Selection{}, false
	}

	ray := picking.ScreenToRay(screenX, screenY, viewportW, viewportH, viewProj.Inverse())

	var best *MeshEntry
	bestT := float32(gomath.MaxFloat32)
	for _, e := range s.entries {
		if t, hit := ray.IntersectAABB(e.Bounds); hit && t < bestT {
			bestT = t
			best = e
		}
	}

	if best == nil {
		s.selected = nil
		if s.OnSelect != nil {
			s.OnSelect(Selection{}, false)
		}
		return Selection{}, false
	}

	s.selected = best
	sel := Selection{Entry: best, Label: best.Label, Organ: best.Organ}
	logger.Debug("click resolved", zap.String("label", sel.Label))
	if s.OnSelect != nil {
		s.OnSelect(sel, true)
	}
	return sel, true
}

// SelectOrgan selects the first entry mapped to the given organ ID.
// Used by search and the remote bridge, where there is no click.
func (s *Scene) SelectOrgan(organID string) (Selection, bool) {
	for _, e := range s.entries {
		if e.Organ != nil && e.Organ.ID == organID {
			s.selected = e
			sel := Selection{Entry: e, Label: e.Label, Organ: e.Organ}
			if s.OnSelect != nil {
				s.OnSelect(sel, true)
			}
			return sel, true
		}
	}
	return Selection{}, false
}

// ClearSelection deselects without touching symptom state.
func (s *Scene) ClearSelection() {
	s.selected = nil
}

// FocusSelected flies the camera to frame the selected mesh. No-op when
// nothing is selected.
func (s *Scene) FocusSelected() {
	if s.selected == nil {
		return
	}
	b := s.selected.Node.WorldBounds()
	pose := s.Camera.PoseForBounds(b.Center(), b.MaxExtent())
	s.Camera.FlyTo(pose, s.cfg.FlightSec)
}

// ResetView clears the selection and flies the camera home.
func (s *Scene) ResetView() {
	s.selected = nil
	s.Camera.Reset()
}

// SetSymptoms replaces the active symptom set.
func (s *Scene) SetSymptoms(ids []string) {
	s.activeSymptoms = append(s.activeSymptoms[:0], ids...)
}

// ToggleSymptom flips one symptom and reports its new state.
func (s *Scene) ToggleSymptom(id string) bool {
	for i, existing := range s.activeSymptoms {
		if existing == id {
			s.activeSymptoms = append(s.activeSymptoms[:i], s.activeSymptoms[i+1:]...)
			return false
		}
	}
	s.activeSymptoms = append(s.activeSymptoms, id)
	return true
}

// SetPainLevel sets the pain slider value, clamped to 0-10.
func (s *Scene) SetPainLevel(level float32) {
	if level < 0 {
		level = 0
	}
	if level > 10 {
		level = 10
	}
	s.painLevel = level
}

// ApplyHighlights recomputes every entry's highlight from current state:
// meshes of symptom-affected organs glow red, scaled by pain level and
// capped so the glow never outshines the selection tint; every mesh of the
// selected organ gets a fixed blue that wins over the symptom glow. The
// computation is a pure function of scene state, so calling it repeatedly
// with nothing changed leaves the entries untouched.
func (s *Scene) ApplyHighlights() {
	affected := map[string]bool{}
	if len(s.activeSymptoms) > 0 {
		for _, name := range s.library.AffectedOrgans(s.activeSymptoms) {
			affected[name] = true
		}
	}

	glow := s.painLevel / 10 * s.cfg.PainGlowCap

	for _, e := range s.entries {
		e.Highlight = HighlightNone
		e.Emissive = [3]float32{}

		if e.Organ != nil && affected[e.Organ.Name] {
			e.Highlight = HighlightAffected
			e.Emissive = [3]float32{painColor[0] * glow, painColor[1] * glow, painColor[2] * glow}
		}
		if s.isSelected(e) {
			e.Highlight = HighlightSelected
			e.Emissive = selectColor
		}
	}
}

// isSelected reports whether an entry carries the selection tint: the
// clicked entry itself, plus every other mesh of the same organ (a lung
// selected by clicking one lobe highlights both).
func (s *Scene) isSelected(e *MeshEntry) bool {
	if s.selected == nil {
		return false
	}
	if e == s.selected {
		return true
	}
	return e.Organ != nil && s.selected.Organ != nil && e.Organ.ID == s.selected.Organ.ID
}

// AffectedCount returns how many entries currently carry the symptom glow.
// The selected mesh counts if its organ is affected, even though the
// selection color wins on screen.
func (s *Scene) AffectedCount() int {
	affected := map[string]bool{}
	for _, name := range s.library.AffectedOrgans(s.activeSymptoms) {
		affected[name] = true
	}
	n := 0
	for _, e := range s.entries {
		if e.Organ != nil && affected[e.Organ.Name] {
			n++
		}
	}
	return n
}

// Destroy tears the scene down in order: no new loads are accepted, any
// in-flight result is discarded, then the registry and model are released.
// Safe to call more than once.
func (s *Scene) Destroy() {
	if s.destroyed {
		return
	}
	s.destroyed = true
	s.loadSeq++ // in-flight results no longer match and will be dropped

	for {
		select {
		case <-s.results:
		default:
			s.entries = nil
			s.selected = nil
			s.model = nil
			s.loading = false
			return
		}
	}
}

// String describes the scene state for debug overlays.
func (s *Scene) String() string {
	sel := "none"
	if s.selected != nil {
		sel = s.selected.Label
	}
	return fmt.Sprintf("system=%s meshes=%d selected=%s symptoms=%d pain=%.0f",
		s.system, len(s.entries), sel, len(s.activeSymptoms), s.painLevel)
}
