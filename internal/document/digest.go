package document

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainDocument prefixes document digests. The version suffix allows the
// digest algorithm to change without colliding with old values.
const DomainDocument = "vbc/document/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest returns a content hash of the document. Two documents that encode
// to the same canonical JSON have the same digest regardless of key order
// or formatting in their source files.
func Digest(c *Competition) (string, error) {
	canonical, err := CanonicalJSON(c)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	return hashWithDomain(DomainDocument, canonical), nil
}
