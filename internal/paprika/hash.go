package paprika

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// ContentHash computes the SHA-256 digest Paprika expects in the `hash`
// field of an exported recipe. The projection is serialized with
// lexicographically sorted keys (Go sorts map keys when marshaling), so
// the digest is independent of field insertion order. The `photo_data`
// payload is excluded: attaching or re-attaching an image never changes
// a recipe's content hash. The digest is advisory; nothing verifies it
// on import.
func ContentHash(projection map[string]any) (string, error) {
	hashed := make(map[string]any, len(projection))
	for k, v := range projection {
		if k == "photo_data" {
			continue
		}
		hashed[k] = v
	}

	data, err := json.Marshal(hashed)
	if err != nil {
		return "", fmt.Errorf("serialize recipe for hashing: %w", err)
	}

	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
