package sigclu

import "math/rand"

// deriveSeed mixes a parent seed and a stream id with the SplitMix64
// finalizer so that neighbouring streams are uncorrelated.
func deriveSeed(parent int64, stream uint64) int64 {
	var x uint64
	x = uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31
	return int64(x)
}

// ModuleSeed returns the seed of the random stream used for module index
func ModuleSeed(seed int64, module int) int64 {
	return deriveSeed(seed, uint64(module))
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
