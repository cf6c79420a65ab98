package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// BlockHash returns the SHA-256 digest of the block's canonical JSON
// encoding, rendered as lowercase hex. Equal blocks always produce equal
// digests: struct fields are declared in lexicographic tag order, which is
// exactly the order encoding/json emits them in.
func BlockHash(b Block) string {
	blockBytes, _ := json.Marshal(b)
	sum := sha256.Sum256(blockBytes)
	return hex.EncodeToString(sum[:])
}
