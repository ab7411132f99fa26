// Package mock fabricates client-registration responses shaped like the real
// provider's success payload, so the rest of the application can run without
// live write access to the external service.
package mock

import (
	"encoding/base64"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// DefaultKYCBaseURL is where generated verification links point unless the
// deployment overrides it.
const DefaultKYCBaseURL = "https://kyc.clearstone.io/verify"

const (
	clientIDPrefix = "mock-"
	idSuffixLen    = 6
)

const base36Chars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// GenerateClientID produces an identifier of the form
// mock-<epoch-millis>-<6 uppercase base36 chars>. Uniqueness is best-effort:
// the timestamp plus randomness make collisions vanishingly unlikely, which
// is all a simulated registration needs.
func GenerateClientID() string {
	suffix := make([]byte, idSuffixLen)
	for i := range suffix {
		suffix[i] = base36Chars[rand.Intn(len(base36Chars))]
	}
	return fmt.Sprintf("%s%d-%s", clientIDPrefix, time.Now().UnixMilli(), suffix)
}

// GenerateKYCLink embeds the base64-encoded client ID as a path segment under
// the verification base URL. Trailing padding is stripped to keep the link
// clean; decoders must use raw (unpadded) base64.
func GenerateKYCLink(baseURL, clientID string) string {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = DefaultKYCBaseURL
	}
	encoded := base64.RawStdEncoding.EncodeToString([]byte(clientID))
	return base + "/" + encoded
}
