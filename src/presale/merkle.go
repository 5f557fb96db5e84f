package presale

import (
	"bytes"
	"crypto/sha256"
)

// MerkleVerifier checks membership proofs against the whitelist root.
// Leaves are sha256 of the contributor address, inner nodes hash the
// sorted pair so proofs carry no position bits.
type MerkleVerifier struct{}

func NewMerkleVerifier() *MerkleVerifier {
	return new(MerkleVerifier)
}

func (self *MerkleVerifier) Verify(root []byte, contributor string, proof [][]byte) bool {
	if len(root) == 0 {
		return false
	}

	node := sha256.Sum256([]byte(contributor))
	for _, sibling := range proof {
		if bytes.Compare(node[:], sibling) <= 0 {
			node = sha256.Sum256(append(node[:], sibling...))
		} else {
			node = sha256.Sum256(append(append([]byte{}, sibling...), node[:]...))
		}
	}

	return bytes.Equal(node[:], root)
}
