package model

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// OpaqueToken wraps the encrypted identity committed to a square. The engine
// stores tokens and hands them to the oracle; it has no way to read, order,
// or compare them itself. The wrapped handle is never mutated after
// construction, so copies of a token may share the backing bytes.
type OpaqueToken struct {
	handle []byte
}

// TokenFromBytes builds a token from raw handle bytes. The input is copied.
func TokenFromBytes(b []byte) OpaqueToken {
	if len(b) == 0 {
		return OpaqueToken{}
	}
	return OpaqueToken{handle: append([]byte(nil), b...)}
}

// Bytes returns a copy of the handle for transport or oracle calls.
func (t OpaqueToken) Bytes() []byte {
	if len(t.handle) == 0 {
		return nil
	}
	return append([]byte(nil), t.handle...)
}

// IsZero reports whether the token carries no handle at all.
func (t OpaqueToken) IsZero() bool { return len(t.handle) == 0 }

// String renders a short prefix of the handle for logs. The handle is
// ciphertext, but full handles in logs make noise, not insight.
func (t OpaqueToken) String() string {
	if t.IsZero() {
		return "opaque(empty)"
	}
	enc := base64.StdEncoding.EncodeToString(t.handle)
	if len(enc) > 12 {
		enc = enc[:12] + "..."
	}
	return fmt.Sprintf("opaque(%s)", enc)
}

func (t OpaqueToken) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(t.handle))
}

func (t *OpaqueToken) UnmarshalJSON(data []byte) error {
	var enc string
	if err := json.Unmarshal(data, &enc); err != nil {
		return err
	}
	raw, err := base64.StdEncoding.DecodeString(enc)
	if err != nil {
		return fmt.Errorf("invalid token encoding: %w", err)
	}
	if len(raw) == 0 {
		t.handle = nil
		return nil
	}
	t.handle = raw
	return nil
}

// Proof authorizes an equality query. It is produced by the submitting
// client alongside its claim and checked by the oracle; the engine treats it
// as opaque bytes.
type Proof []byte

// EqualityOracle answers whether two opaque tokens commit to the same
// underlying value. Implementations verify the caller-supplied proof
// deterministically before answering and reveal nothing beyond the boolean.
type EqualityOracle interface {
	Equals(a, b OpaqueToken, proof Proof) (bool, error)
}
