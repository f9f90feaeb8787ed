package cart

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// SnapshotKey is the cookie name the cart snapshot lives under.
const SnapshotKey = "cart"

// EncodeSnapshot serialises c into a cookie-safe value: JSON, then percent-encoded.
func EncodeSnapshot(c Cart) (string, error) {
	if c.Items == nil {
		c.Items = []Item{}
	}
	raw, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to encode cart snapshot: %w", err)
	}
	return url.QueryEscape(string(raw)), nil
}

// DecodeSnapshot parses a value produced by EncodeSnapshot. Unescaped JSON is accepted
// too: an encoded value never starts with '{', so such a value is decoded verbatim.
func DecodeSnapshot(value string) (Cart, error) {
	raw := value
	if !strings.HasPrefix(value, "{") {
		var err error
		if raw, err = url.QueryUnescape(value); err != nil {
			return Empty(), fmt.Errorf("failed to unescape cart snapshot: %w", err)
		}
	}

	var c Cart
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return Empty(), fmt.Errorf("failed to decode cart snapshot: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}
	return c, nil
}
