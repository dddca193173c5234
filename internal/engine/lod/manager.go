package lod

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/lodview/internal/engine/scene"
	"github.com/Faultbox/lodview/internal/logger"
	"github.com/Faultbox/lodview/pkg/math"
)

// ReleaseFunc frees renderer-owned buffers for a mesh node. The Manager
// calls it on unregistration and disposal so GPU buffers are released
// deterministically; a nil func means there is nothing beyond CPU memory
// to free. It must be callable for nodes that were never uploaded.
type ReleaseFunc func(*scene.Node) error

// managedModel is one registered model: its per-model group node placed in
// the scene, the full-detail source (kept detached for rebuilds), and the
// built detail levels in spec order.
type managedModel struct {
	id       int
	group    *scene.Node
	original *scene.Node
	levels   []*levelInstance
}

// Manager owns the detail levels of every registered model and selects the
// active one by viewer distance. All methods must be called from the render
// thread; the Manager does no locking of its own.
type Manager struct {
	cfg     Config
	root    *scene.Node
	models  map[int]*managedModel
	release ReleaseFunc
}

// New creates a Manager with the given level configuration. Models whose
// node has no scene parent at registration are placed under root, which may
// be nil if every registered node is already attached.
func New(cfg Config, root *scene.Node) *Manager {
	return &Manager{
		cfg:    cfg.Clone(),
		root:   root,
		models: make(map[int]*managedModel),
	}
}

// SetReleaseFunc installs the renderer's buffer release hook.
func (mgr *Manager) SetReleaseFunc(f ReleaseFunc) {
	mgr.release = f
}

// GetConfig returns a copy of the current level configuration.
func (mgr *Manager) GetConfig() Config {
	return mgr.cfg.Clone()
}

// SetAutoSwitch enables or disables distance-based selection. Re-enabling
// hands control back to UpdateSelection, which clears any manual pin on its
// next call.
func (mgr *Manager) SetAutoSwitch(on bool) {
	mgr.cfg.AutoSwitch = on
}

// AutoSwitch reports whether distance-based selection is active.
func (mgr *Manager) AutoSwitch() bool {
	return mgr.cfg.AutoSwitch
}

// Register takes ownership of the model's scene placement and builds its
// detail levels. An already registered id is fully unregistered first, so
// re-registration replaces rather than duplicates. Registration never fails:
// levels that cannot be built are skipped, and in the worst case the model
// keeps rendering at full detail as its only level.
func (mgr *Manager) Register(id int, node *scene.Node) {
	if node == nil {
		return
	}
	if _, exists := mgr.models[id]; exists {
		mgr.Unregister(id)
	}

	// The group node takes over the original's place and position in the
	// scene; level nodes hang off it at local origin.
	parent := node.Parent()
	if parent == nil {
		parent = mgr.root
	}
	group := scene.NewNode(fmt.Sprintf("model-%d-lod", id))
	group.Pos = node.Pos
	node.Detach()
	node.Pos = math.Vec3{}

	m := &managedModel{id: id, group: group, original: node}

	for i, spec := range mgr.cfg.Levels {
		inst, err := synthesizeLevel(node, spec, i)
		if err != nil {
			if i == 0 {
				// Full detail must always be available: reuse the
				// original mesh unmodified.
				logger.Warn("level 0 synthesis failed, reusing original mesh",
					zap.Int("model", id), zap.Error(err))
				inst = &levelInstance{specIndex: 0, threshold: spec.Distance, node: node}
			} else {
				logger.Warn("level synthesis failed, skipping level",
					zap.Int("model", id), zap.Int("level", i), zap.Error(err))
				continue
			}
		}
		if inst == nil {
			continue // disabled level
		}
		inst.node.Visible = false
		group.AddChild(inst.node)
		m.levels = append(m.levels, inst)
	}

	// All levels disabled or failed: the original is the single level.
	if len(m.levels) == 0 {
		node.Visible = false
		group.AddChild(node)
		m.levels = append(m.levels, &levelInstance{node: node})
	}

	m.levels[0].node.Visible = true

	if parent != nil {
		parent.AddChild(group)
	}
	mgr.models[id] = m

	verts := 0
	if node.Mesh != nil {
		verts = node.Mesh.VertexCount()
	}
	logger.Debug("model registered",
		zap.Int("model", id),
		zap.Int("levels", len(m.levels)),
		zap.Int("vertices", verts))
}

// Unregister detaches the model's LOD group from the scene, releases the
// buffers of every built level, and removes the registry entry. Unmanaged
// ids are a no-op. Release failures are logged, never raised; the entry is
// removed regardless.
func (mgr *Manager) Unregister(id int) {
	m, ok := mgr.models[id]
	if !ok {
		return
	}
	mgr.releaseModel(m)
	delete(mgr.models, id)
	logger.Debug("model unregistered", zap.Int("model", id))
}

// Dispose releases every buffer of every managed model, detaches all LOD
// groups, and empties the registry. Safe to call repeatedly; registration
// works again afterwards.
func (mgr *Manager) Dispose() {
	for id, m := range mgr.models {
		mgr.releaseModel(m)
		delete(mgr.models, id)
	}
}

func (mgr *Manager) releaseModel(m *managedModel) {
	var errs error
	for _, inst := range m.levels {
		if mgr.release != nil {
			errs = multierr.Append(errs, mgr.release(inst.node))
		}
		inst.node.Detach()
	}
	// The original may carry buffers from before registration, unless it
	// doubles as a level node and was just released above.
	if mgr.release != nil && !m.isLevelNode(m.original) {
		errs = multierr.Append(errs, mgr.release(m.original))
	}
	m.group.Detach()
	if errs != nil {
		logger.Warn("buffer release failed",
			zap.Int("model", m.id), zap.Error(errs))
	}
}

func (m *managedModel) isLevelNode(n *scene.Node) bool {
	for _, inst := range m.levels {
		if inst.node == n {
			return true
		}
	}
	return false
}

// UpdateSelection picks the active level of every managed model for the
// given viewpoint. Called once per frame from the render loop; it allocates
// nothing and only toggles visibility flags. No-op when auto switching is
// off.
func (mgr *Manager) UpdateSelection(viewpoint math.Vec3) {
	if !mgr.cfg.AutoSwitch {
		return
	}
	for _, m := range mgr.models {
		mgr.applySelection(m, viewpoint)
	}
}

// UpdateSelectionFor updates a single model's active level. No-op when auto
// switching is off or the id is unmanaged.
func (mgr *Manager) UpdateSelectionFor(id int, viewpoint math.Vec3) {
	if !mgr.cfg.AutoSwitch {
		return
	}
	if m, ok := mgr.models[id]; ok {
		mgr.applySelection(m, viewpoint)
	}
}

func (mgr *Manager) applySelection(m *managedModel, viewpoint math.Vec3) {
	dist := viewpoint.Distance(m.group.WorldPos())
	m.showOnly(selectIndex(m.levels, dist))
}

// selectIndex returns the highest-indexed level whose threshold is at or
// below the distance; ties go to the coarser level. Below every threshold,
// full detail wins.
func selectIndex(levels []*levelInstance, dist float32) int {
	sel := 0
	for i, l := range levels {
		if l.threshold <= dist {
			sel = i
		}
	}
	return sel
}

func (m *managedModel) showOnly(idx int) {
	for i, inst := range m.levels {
		inst.node.Visible = i == idx
	}
}

// SetLevel forces the given level visible and all siblings hidden,
// regardless of auto switching. Out-of-range indices and unmanaged ids are
// a no-op. With auto switching on the pin lasts only until the next
// UpdateSelection (last call wins); with it off the pin persists.
func (mgr *Manager) SetLevel(id, level int) {
	m, ok := mgr.models[id]
	if !ok || level < 0 || level >= len(m.levels) {
		return
	}
	m.showOnly(level)
}

// CurrentLevel returns the level the selection rule picks for the viewpoint
// without changing any visibility. Unmanaged ids report 0.
func (mgr *Manager) CurrentLevel(id int, viewpoint math.Vec3) int {
	m, ok := mgr.models[id]
	if !ok {
		return 0
	}
	return selectIndex(m.levels, viewpoint.Distance(m.group.WorldPos()))
}

// LevelCount returns the number of built levels for a model, 0 if unmanaged.
func (mgr *Manager) LevelCount(id int) int {
	if m, ok := mgr.models[id]; ok {
		return len(m.levels)
	}
	return 0
}

// ModelCount returns the number of managed models.
func (mgr *Manager) ModelCount() int {
	return len(mgr.models)
}

// SetConfig replaces the level configuration and rebuilds the levels of
// every managed model against it. Previously built levels are released.
func (mgr *Manager) SetConfig(cfg Config) {
	mgr.cfg = cfg.Clone()

	type entry struct {
		id       int
		original *scene.Node
		parent   *scene.Node
		pos      math.Vec3
	}
	var entries []entry
	for id, m := range mgr.models {
		entries = append(entries, entry{id, m.original, m.group.Parent(), m.group.Pos})
	}
	for _, e := range entries {
		mgr.Unregister(e.id)
		e.original.Pos = e.pos
		if e.parent != nil {
			e.parent.AddChild(e.original)
		}
		mgr.Register(e.id, e.original)
	}
}
