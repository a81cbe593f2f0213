package cart

import (
	"errors"
	"testing"
)

func TestLineKeyEncodeRoundTrip(t *testing.T) {
	keys := []LineKey{
		NewLineKey("prod-1", "Deep Scarlet", "M"),
		NewLineKey("prod-2", "", ""),
		NewLineKey("42", "red/blue", "P|M"),
	}
	for _, key := range keys {
		got, err := ParseLineKey(key.Encode())
		if err != nil {
			t.Fatalf("parse %+v failed: %v", key, err)
		}
		if got != key {
			t.Fatalf("round trip mismatch: got %+v want %+v", got, key)
		}
	}
}

func TestParseLineKeyInvalid(t *testing.T) {
	cases := []string{"", "   ", "%%%", "bm90LWpzb24", NewLineKey("", "red", "M").Encode()}
	for _, token := range cases {
		if _, err := ParseLineKey(token); !errors.Is(err, ErrKeyInvalid) {
			t.Fatalf("token %q: expected ErrKeyInvalid, got %v", token, err)
		}
	}
}
