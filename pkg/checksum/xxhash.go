package checksum

import (
	"encoding/hex"

	"github.com/cespare/xxhash/v2"
)

// Sum returns the xxhash digest of a byte slice as a hex string. Used to
// fingerprint uploaded workbooks so repeat uploads are visible in logs.
func Sum(data []byte) string {
	digest := xxhash.New()
	digest.Write(data)
	return hex.EncodeToString(digest.Sum(nil))
}
