package frostr

import (
	"errors"
	"strings"
	"testing"

	"github.com/bytemare/frost"
	"github.com/bytemare/frost/debug"
)

func TestReshareKeyShares(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}
	originalKey, err := original[0].VerifyingKey()
	if err != nil {
		t.Fatalf("VerifyingKey failed: %v", err)
	}

	rotated, err := ReshareKeyShares(original[:2], 2, 4)
	if err != nil {
		t.Fatalf("ReshareKeyShares failed: %v", err)
	}
	if len(rotated) != 4 {
		t.Fatalf("expected 4 shares after rotation, got %d", len(rotated))
	}

	for i, share := range rotated {
		if share.ParticipantID != uint16(i+1) {
			t.Fatalf("rotated share %d has participant id %d", i, share.ParticipantID)
		}
		if share.Threshold != 2 || share.Total != 4 {
			t.Fatalf("rotated share %d carries %d-of-%d, want 2-of-4", i, share.Threshold, share.Total)
		}

		key, err := share.VerifyingKey()
		if err != nil {
			t.Fatalf("rotated share %d VerifyingKey failed: %v", i, err)
		}
		if key != originalKey {
			t.Fatalf("rotated share %d verifies against a different group key", i)
		}
	}
}

func TestReshareRecoversSameGroupSecret(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}
	rotated, err := ReshareKeyShares(original, 3, 5)
	if err != nil {
		t.Fatalf("ReshareKeyShares failed: %v", err)
	}

	g := ciphersuiteGroup()
	oldSecret, err := debug.RecoverGroupSecret(g, []*frost.KeyShare{
		original[0].KeyPackage, original[1].KeyPackage,
	})
	if err != nil {
		t.Fatalf("recovering old group secret failed: %v", err)
	}
	newSecret, err := debug.RecoverGroupSecret(g, []*frost.KeyShare{
		rotated[0].KeyPackage, rotated[2].KeyPackage, rotated[4].KeyPackage,
	})
	if err != nil {
		t.Fatalf("recovering new group secret failed: %v", err)
	}

	if oldSecret.Equal(newSecret) != 1 {
		t.Fatal("rotation changed the underlying group signing key")
	}
}

func TestReshareProducesFreshSigningShares(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}
	rotated, err := ReshareKeyShares(original[:2], 2, 3)
	if err != nil {
		t.Fatalf("ReshareKeyShares failed: %v", err)
	}

	// Same participant count and threshold, but a fresh sharing polynomial:
	// participant 1's signing share must change.
	if original[0].KeyPackage.SecretKey().Equal(rotated[0].KeyPackage.SecretKey()) == 1 {
		t.Fatal("rotation reissued an identical signing share for participant 1")
	}
}

func TestReshareInsufficientShares(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}

	t.Run("BelowOldThreshold", func(t *testing.T) {
		_, err := ReshareKeyShares(original[:1], 2, 4)
		var countErr *InvalidShareCountError
		if !errors.As(err, &countErr) {
			t.Fatalf("expected InvalidShareCountError, got %v", err)
		}
		if countErr.Need != 2 || countErr.Got != 1 {
			t.Fatalf("error carries need=%d got=%d, want need=2 got=1", countErr.Need, countErr.Got)
		}
	})

	t.Run("Empty", func(t *testing.T) {
		_, err := ReshareKeyShares(nil, 2, 4)
		var countErr *InvalidShareCountError
		if !errors.As(err, &countErr) {
			t.Fatalf("expected InvalidShareCountError, got %v", err)
		}
		if countErr.Need != 1 || countErr.Got != 0 {
			t.Fatalf("error carries need=%d got=%d, want need=1 got=0", countErr.Need, countErr.Got)
		}
	})
}

func TestReshareInvalidNewParameters(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}

	for _, params := range [][2]uint16{{0, 4}, {5, 4}, {2, 0}} {
		_, err := ReshareKeyShares(original, params[0], params[1])
		var thresholdErr *InvalidThresholdError
		if !errors.As(err, &thresholdErr) {
			t.Fatalf("params %d-of-%d: expected InvalidThresholdError, got %v", params[0], params[1], err)
		}
	}
}

func TestReshareDuplicateShare(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}

	_, err = ReshareKeyShares([]FrostShare{original[0], original[0]}, 2, 3)
	if err == nil || !strings.Contains(err.Error(), "Duplicate share index") {
		t.Fatalf("expected duplicate share rejection, got %v", err)
	}
}

func TestReshareMixedBatches(t *testing.T) {
	first, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("first keygen failed: %v", err)
	}
	second, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("second keygen failed: %v", err)
	}

	_, err = ReshareKeyShares([]FrostShare{first[0], second[1]}, 2, 3)
	var frostErr *FrostError
	if !errors.As(err, &frostErr) {
		t.Fatalf("expected FrostError for mixed batches, got %v", err)
	}
}

func TestReshareThenReshareAgain(t *testing.T) {
	original, err := GenerateKeyShares(2, 3)
	if err != nil {
		t.Fatalf("GenerateKeyShares failed: %v", err)
	}
	originalKey, err := original[0].VerifyingKey()
	if err != nil {
		t.Fatalf("VerifyingKey failed: %v", err)
	}

	// Two consecutive rotations: 2-of-3 -> 3-of-5 -> 2-of-2. The verifying
	// key survives both.
	five, err := ReshareKeyShares(original[1:], 3, 5)
	if err != nil {
		t.Fatalf("first rotation failed: %v", err)
	}
	two, err := ReshareKeyShares(five[:3], 2, 2)
	if err != nil {
		t.Fatalf("second rotation failed: %v", err)
	}

	key, err := two[1].VerifyingKey()
	if err != nil {
		t.Fatalf("VerifyingKey failed: %v", err)
	}
	if key != originalKey {
		t.Fatal("verifying key changed across consecutive rotations")
	}
}
