package game

// levelSeed derives a per-depth seed from the run seed so every level is
// reproducible independently. splitmix64 finalizer; the golden-ratio
// increment keeps adjacent depths uncorrelated.
func levelSeed(base int64, depth int) int64 {
	z := uint64(base) + uint64(depth)*0x9E3779B97F4A7C15
	z ^= z >> 30
	z *= 0xBF58476D1CE4E5B9
	z ^= z >> 27
	z *= 0x94D049BB133111EB
	z ^= z >> 31
	return int64(z)
}
