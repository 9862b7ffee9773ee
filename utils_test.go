package frostr

import (
	"testing"
)

func TestZeroizeBytes(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	ZeroizeBytes(data)
	for i, b := range data {
		if b != 0 {
			t.Fatalf("byte %d not cleared: %d", i, b)
		}
	}
}

func TestSecureCompare(t *testing.T) {
	if !SecureCompare([]byte{1, 2, 3}, []byte{1, 2, 3}) {
		t.Fatal("equal slices compared unequal")
	}
	if SecureCompare([]byte{1, 2, 3}, []byte{1, 2, 4}) {
		t.Fatal("unequal slices compared equal")
	}
	if SecureCompare([]byte{1, 2}, []byte{1, 2, 3}) {
		t.Fatal("different lengths compared equal")
	}
	if !SecureCompare(nil, nil) {
		t.Fatal("nil slices compared unequal")
	}
}
