package lod

// MemoryFootprint sums the byte size of every built level's position buffer
// across all managed models: a grand total plus per-level buckets, so level
// 0 of every model sums into bucket 0 and so on. Pure read, no mutation.
func (mgr *Manager) MemoryFootprint() (total int64, perLevel []int64) {
	for _, m := range mgr.models {
		if len(m.levels) > len(perLevel) {
			grown := make([]int64, len(m.levels))
			copy(grown, perLevel)
			perLevel = grown
		}
		for i, inst := range m.levels {
			if inst.node.Mesh == nil {
				continue
			}
			b := inst.node.Mesh.PositionBytes()
			total += b
			perLevel[i] += b
		}
	}
	return total, perLevel
}
