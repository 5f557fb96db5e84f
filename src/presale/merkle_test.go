package presale

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

func TestMerkleTestSuite(t *testing.T) {
	suite.Run(t, new(MerkleTestSuite))
}

type MerkleTestSuite struct {
	suite.Suite
	verifier *MerkleVerifier
}

func (s *MerkleTestSuite) SetupSuite() {
	s.verifier = NewMerkleVerifier()
}

func hashPair(a, b []byte) []byte {
	if bytes.Compare(a, b) > 0 {
		a, b = b, a
	}
	sum := sha256.Sum256(append(append([]byte{}, a...), b...))
	return sum[:]
}

func (s *MerkleTestSuite) TestTwoLeafTree() {
	alice := sha256.Sum256([]byte("alice"))
	bob := sha256.Sum256([]byte("bob"))
	root := hashPair(alice[:], bob[:])

	assert.True(s.T(), s.verifier.Verify(root, "alice", [][]byte{bob[:]}))
	assert.True(s.T(), s.verifier.Verify(root, "bob", [][]byte{alice[:]}))
	assert.False(s.T(), s.verifier.Verify(root, "mallory", [][]byte{bob[:]}))
}

func (s *MerkleTestSuite) TestFourLeafTree() {
	leaves := make([][]byte, 4)
	for i, address := range []string{"alice", "bob", "carol", "dave"} {
		sum := sha256.Sum256([]byte(address))
		leaves[i] = sum[:]
	}
	left := hashPair(leaves[0], leaves[1])
	right := hashPair(leaves[2], leaves[3])
	root := hashPair(left, right)

	assert.True(s.T(), s.verifier.Verify(root, "carol", [][]byte{leaves[3], left}))
	assert.False(s.T(), s.verifier.Verify(root, "carol", [][]byte{leaves[1], left}))
}

func (s *MerkleTestSuite) TestEmptyRoot() {
	assert.False(s.T(), s.verifier.Verify(nil, "alice", nil))
}

func (s *MerkleTestSuite) TestSingleLeafTree() {
	alice := sha256.Sum256([]byte("alice"))
	assert.True(s.T(), s.verifier.Verify(alice[:], "alice", nil))
}
