package camera

import (
	"testing"

	"github.com/Faultbox/lodview/pkg/math"
)

func TestPositionAtDefaultRotation(t *testing.T) {
	c := NewOrbitCamera()
	c.RotationX = 0
	c.RotationY = 0
	c.Distance = 10

	got := c.Position()
	want := math.Vec3{X: 0, Y: 0, Z: 10}
	const eps = 1e-4
	if got.Distance(want) > eps {
		t.Errorf("Position() = %v, want %v", got, want)
	}
}

func TestZoomClampsToLimits(t *testing.T) {
	c := NewOrbitCamera()

	for i := 0; i < 100; i++ {
		c.HandleZoom(10)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("zoom in: distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}

	for i := 0; i < 200; i++ {
		c.HandleZoom(-10)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("zoom out: distance = %v, want clamped to %v", c.Distance, c.MaxDistance)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 1e6)
	if c.RotationX != c.MaxPitch {
		t.Errorf("pitch = %v, want clamped to %v", c.RotationX, c.MaxPitch)
	}
}

func TestFitToBounds(t *testing.T) {
	c := NewOrbitCamera()
	c.FitToBounds([3]float32{-10, 0, -10}, [3]float32{10, 20, 10})

	want := math.Vec3{X: 0, Y: 10, Z: 0}
	if c.Center != want {
		t.Errorf("Center = %v, want %v", c.Center, want)
	}
	if c.Distance <= 0 {
		t.Errorf("Distance = %v, want positive", c.Distance)
	}
}
