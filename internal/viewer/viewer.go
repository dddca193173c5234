// Package viewer wires the window, renderer, camera, and LOD manager into
// the interactive model viewer application.
package viewer

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/lodview/internal/config"
	"github.com/Faultbox/lodview/internal/engine/camera"
	"github.com/Faultbox/lodview/internal/engine/geometry"
	"github.com/Faultbox/lodview/internal/engine/input"
	"github.com/Faultbox/lodview/internal/engine/lod"
	"github.com/Faultbox/lodview/internal/engine/renderer"
	"github.com/Faultbox/lodview/internal/engine/scene"
	"github.com/Faultbox/lodview/internal/engine/window"
	"github.com/Faultbox/lodview/internal/logger"
	"github.com/Faultbox/lodview/pkg/formats"
	"github.com/Faultbox/lodview/pkg/math"
)

// Viewer is the running application.
type Viewer struct {
	cfg  *config.Config
	win  *window.Window
	rend *renderer.Renderer
	cam  *camera.OrbitCamera
	in   *input.Input

	root *scene.Node
	lods *lod.Manager

	modelIDs []int
	nextID   int

	width, height int
	running       bool
}

// New creates the viewer: window, GL, renderer, LOD manager, and the models
// named in the configuration.
func New(cfg *config.Config) (*Viewer, error) {
	win, err := window.New(window.Config{
		Title:      "lodview",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}

	rend, err := renderer.New()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}

	v := &Viewer{
		cfg:    cfg,
		win:    win,
		rend:   rend,
		cam:    camera.NewOrbitCamera(),
		in:     input.New(),
		root:   scene.NewNode("root"),
		width:  cfg.Graphics.Width,
		height: cfg.Graphics.Height,
	}

	v.lods = lod.New(cfg.LOD, v.root)
	v.lods.SetReleaseFunc(rend.Release)

	for _, path := range cfg.Viewer.Models {
		if err := v.LoadModel(path); err != nil {
			logger.Warn("skipping model", zap.String("path", path), zap.Error(err))
		}
	}

	return v, nil
}

// LoadModel parses an OBJ file, registers it with the LOD manager, and
// frames the camera on the first loaded model.
func (v *Viewer) LoadModel(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	obj, err := formats.ParseOBJ(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	mesh := geometry.BuildMesh(obj)
	if mesh == nil {
		return fmt.Errorf("%s: no renderable geometry", path)
	}

	node := scene.NewMeshNode(filepath.Base(path), mesh, scene.DefaultMaterial())
	// Place models side by side along X.
	node.Pos = math.Vec3{X: float32(len(v.modelIDs)) * (mesh.Bounds.Max[0] - mesh.Bounds.Min[0]) * 1.5}
	v.root.AddChild(node)

	id := v.nextID
	v.nextID++
	v.lods.Register(id, node)
	v.modelIDs = append(v.modelIDs, id)

	logger.Info("model loaded",
		zap.String("path", path),
		zap.Int("id", id),
		zap.Int("vertices", mesh.VertexCount()),
		zap.Int("levels", v.lods.LevelCount(id)))

	if len(v.modelIDs) == 1 {
		v.cam.FitToBounds(mesh.Bounds.Min, mesh.Bounds.Max)
	}
	return nil
}

// Run drives the render loop until quit.
func (v *Viewer) Run() error {
	v.running = true

	logger.Info("starting render loop")
	statsTimer := time.Now()

	for v.running {
		if v.in.Update() {
			break
		}
		for _, ev := range v.in.Events() {
			v.handleEvent(ev)
		}

		// Distance-based level selection, once per frame.
		v.lods.UpdateSelection(v.cam.Position())

		v.render()
		v.win.SwapBuffers()

		if v.cfg.Viewer.ShowStats && time.Since(statsTimer) >= 5*time.Second {
			v.logFootprint()
			statsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvent(ev input.Event) {
	switch ev.Type {
	case input.EventQuit:
		v.running = false
	case input.EventWindowResize:
		v.width, v.height = ev.Width, ev.Height
	case input.EventMouseDrag:
		v.cam.HandleDrag(float32(ev.DeltaX), float32(ev.DeltaY))
	case input.EventMouseWheel:
		v.cam.HandleZoom(float32(ev.Wheel))
	case input.EventKeyDown:
		v.handleKey(ev.Key)
	}
}

func (v *Viewer) handleKey(key sdl.Scancode) {
	switch {
	case key == sdl.SCANCODE_ESCAPE || key == sdl.SCANCODE_Q:
		v.running = false
	case key == sdl.SCANCODE_A:
		on := !v.lods.AutoSwitch()
		v.lods.SetAutoSwitch(on)
		logger.Info("auto level switching", zap.Bool("enabled", on))
	case key == sdl.SCANCODE_M:
		v.logFootprint()
	case key >= sdl.SCANCODE_1 && key <= sdl.SCANCODE_9:
		// Pin all models to the chosen level.
		level := int(key - sdl.SCANCODE_1)
		for _, id := range v.modelIDs {
			v.lods.SetLevel(id, level)
		}
		logger.Info("level pinned", zap.Int("level", level))
	}
}

func (v *Viewer) render() {
	gl.Viewport(0, 0, int32(v.width), int32(v.height))

	bg := v.cfg.Viewer.Background
	v.rend.Clear(bg[0], bg[1], bg[2])

	aspect := float32(v.width) / float32(v.height)
	proj := math.Perspective(0.785398, aspect, 0.1, 10000.0) // 45 degrees FOV
	viewProj := proj.Mul(v.cam.ViewMatrix())

	v.rend.Render(v.root, viewProj)
}

func (v *Viewer) logFootprint() {
	total, perLevel := v.lods.MemoryFootprint()
	logger.Info("geometry memory",
		zap.Int64("total_bytes", total),
		zap.Int64s("per_level", perLevel),
		zap.Int("models", v.lods.ModelCount()))
}

// Close disposes LOD resources, the renderer, and the window.
func (v *Viewer) Close() {
	if v.lods != nil {
		v.lods.Dispose()
	}
	if v.rend != nil {
		v.rend.Destroy()
	}
	if v.win != nil {
		v.win.Close()
	}
}
