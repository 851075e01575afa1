package partition

import (
	"encoding/hex"
	"hash"

	"golang.org/x/crypto/blake2b"

	"github.com/dd0wney/cluso-netclop/pkg/sigclu"
)

const (
	nodeSep      = 0x1f
	moduleSep    = 0x1e
	partitionSep = 0x1d
)

// Digest returns the hex BLAKE2b-256 fingerprint of a reference partition
// and its ensemble. Node order inside modules does not affect the digest;
// module and replicate order do. A nil reference hashes as an empty
// partition.
func Digest(reference sigclu.Partition, ensemble sigclu.Ensemble) string {
	h, _ := blake2b.New256(nil)
	writePartition(h, reference)
	for _, p := range ensemble {
		writePartition(h, p)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func writePartition(h hash.Hash, p sigclu.Partition) {
	for _, module := range p {
		for _, n := range module.Sorted() {
			h.Write([]byte(n))
			h.Write([]byte{nodeSep})
		}
		h.Write([]byte{moduleSep})
	}
	h.Write([]byte{partitionSep})
}
