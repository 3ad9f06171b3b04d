package gateway

import (
	"bytes"
	"fmt"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

var ErrContentMismatch = fmt.Errorf("fetched content does not hash to the requested cid")

// Verify checks that data actually hashes to cidStr. Only CIDv1 identifiers
// with a raw codec and a sha2-256 multihash are checkable from the plain
// body; CIDv0 and dag-wrapped content hash an encoded node rather than the
// bytes a gateway serves, so those pass through unverified. So do strings
// that don't decode as cids at all, since the identifier is otherwise
// treated as opaque.
func Verify(cidStr string, data []byte) error {
	c, err := cid.Decode(cidStr)
	if err != nil {
		return nil
	}
	if c.Version() != 1 || c.Type() != cid.Raw {
		return nil
	}

	decoded, err := multihash.Decode(c.Hash())
	if err != nil || decoded.Code != multihash.SHA2_256 {
		return nil
	}

	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return nil
	}
	if !bytes.Equal(sum, c.Hash()) {
		return ErrContentMismatch
	}
	return nil
}
