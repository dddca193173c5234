// Package lod maintains reduced-detail representations of registered models
// and switches between them by viewer distance. Level meshes are built once
// at registration; the per-frame selection path only compares distances and
// flips visibility flags.
package lod

// LevelSpec describes one detail level: the minimum viewer distance at which
// it becomes eligible and the fraction of original vertices it retains.
// Disabled levels are never built.
type LevelSpec struct {
	Distance float32 `yaml:"distance"`
	Ratio    float32 `yaml:"ratio"`
	Enabled  bool    `yaml:"enabled"`
}

// Config is the author-supplied level configuration. Levels are ordered by
// ascending Distance; level 0 is expected to be the full-detail identity
// level (Distance 0, Ratio 1). The Manager consumes a snapshot of it at
// build time, so replacing the config rebuilds previously built levels.
type Config struct {
	Levels      []LevelSpec `yaml:"levels"`
	AutoSwitch  bool        `yaml:"auto_switch"`
	MaxDistance float32     `yaml:"max_distance"`
}

// DefaultConfig returns three levels: full detail up close, half detail past
// 50 units, one tenth past 200.
func DefaultConfig() Config {
	return Config{
		Levels: []LevelSpec{
			{Distance: 0, Ratio: 1.0, Enabled: true},
			{Distance: 50, Ratio: 0.5, Enabled: true},
			{Distance: 200, Ratio: 0.1, Enabled: true},
		},
		AutoSwitch:  true,
		MaxDistance: 1000,
	}
}

// Clone returns a deep copy so callers cannot mutate a Manager's snapshot.
func (c Config) Clone() Config {
	out := c
	out.Levels = make([]LevelSpec, len(c.Levels))
	copy(out.Levels, c.Levels)
	return out
}
