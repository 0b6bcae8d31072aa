// Package oracle is the built-in equality oracle used in development and in
// tests. Tokens are deterministic HMAC commitments, so two tokens commit to
// the same value exactly when their handles match; the proof gates whether
// the oracle answers at all, not what the answer is.
package oracle

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/quanvenc/BlindChess-Z/internal/model"
)

const (
	sealDomain  = "blindchess/v1/seal"
	proofDomain = "blindchess/v1/equals"

	// ProofSize is the length of one pair authorization. A proof blob is one
	// or more authorizations concatenated; a query is answered if any of them
	// covers the asked pair.
	ProofSize = sha256.Size

	minKeyLen = 16
)

var (
	ErrShortKey = errors.New("oracle key too short")
	ErrBadProof = errors.New("equality proof rejected")
)

// Service answers equality queries for tokens sealed with the same key.
type Service struct {
	key []byte
}

func NewService(key []byte) (*Service, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrShortKey, minKeyLen)
	}
	return &Service{key: append([]byte(nil), key...)}, nil
}

// Equals implements model.EqualityOracle. The proof must contain an
// authorization for the exact (a, b) pair being asked; without one the
// oracle refuses to answer.
func (s *Service) Equals(a, b model.OpaqueToken, proof model.Proof) (bool, error) {
	if len(proof) == 0 || len(proof)%ProofSize != 0 {
		return false, ErrBadProof
	}
	want := pairMAC(s.key, a, b)
	authorized := false
	for off := 0; off < len(proof); off += ProofSize {
		if hmac.Equal(proof[off:off+ProofSize], want) {
			authorized = true
			break
		}
	}
	if !authorized {
		return false, ErrBadProof
	}
	return bytes.Equal(a.Bytes(), b.Bytes()), nil
}

// Sealer is the client-side half: it turns square values into tokens and
// produces the proofs that authorize comparing them.
type Sealer struct {
	key []byte
}

func NewSealer(key []byte) (*Sealer, error) {
	if len(key) < minKeyLen {
		return nil, fmt.Errorf("%w: need at least %d bytes", ErrShortKey, minKeyLen)
	}
	return &Sealer{key: append([]byte(nil), key...)}, nil
}

// Seal commits to a value. Sealing is deterministic: the same value under
// the same key always yields the same token.
func (s *Sealer) Seal(value []byte) model.OpaqueToken {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(sealDomain))
	h.Write(value)
	return model.TokenFromBytes(h.Sum(nil))
}

// ProveEqual authorizes one equality query on the ordered pair (a, b).
func (s *Sealer) ProveEqual(a, b model.OpaqueToken) model.Proof {
	return model.Proof(pairMAC(s.key, a, b))
}

// Combine concatenates authorizations into one proof blob, the shape a move
// claim carries so both of its queries can be answered.
func Combine(proofs ...model.Proof) model.Proof {
	var out model.Proof
	for _, p := range proofs {
		out = append(out, p...)
	}
	return out
}

// pairMAC binds the ordered pair under the proof domain. Tokens are length
// prefixed so adjacent handles cannot be resliced into a different pair.
func pairMAC(key []byte, a, b model.OpaqueToken) []byte {
	h := hmac.New(sha256.New, key)
	h.Write([]byte(proofDomain))
	var n [4]byte
	ab := a.Bytes()
	binary.BigEndian.PutUint32(n[:], uint32(len(ab)))
	h.Write(n[:])
	h.Write(ab)
	bb := b.Bytes()
	binary.BigEndian.PutUint32(n[:], uint32(len(bb)))
	h.Write(n[:])
	h.Write(bb)
	return h.Sum(nil)
}
