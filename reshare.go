package frostr

import (
	"github.com/bytemare/frost"
	"github.com/bytemare/frost/debug"
)

// ReshareKeyShares rotates the participant set of an existing threshold key:
// the group signing key is reconstructed from a quorum of existing shares
// and re-split into a fresh newThreshold-of-newTotal batch. The group
// verifying key is preserved across the rotation; old shares are not revoked
// here — retiring them once the new batch is distributed is the caller's
// policy (see Rotation).
//
// At least the old batch's threshold of distinct shares must be supplied,
// since rotation requires reconstructing the underlying signing key.
func ReshareKeyShares(shares []FrostShare, newThreshold, newTotal uint16) ([]FrostShare, error) {
	if len(shares) == 0 {
		return nil, &InvalidShareCountError{Need: 1, Got: 0}
	}
	if err := validateThreshold(newThreshold, newTotal); err != nil {
		return nil, err
	}

	oldThreshold := shares[0].Threshold
	if len(shares) < int(oldThreshold) {
		return nil, &InvalidShareCountError{Need: int(oldThreshold), Got: len(shares)}
	}

	seen := make(map[uint16]struct{}, len(shares))
	keyPackages := make([]*frost.KeyShare, len(shares))
	for i, s := range shares {
		if s.KeyPackage == nil || s.PublicKeyPackage == nil {
			return nil, &FrostError{Op: "reshare", Message: "share is missing its key material"}
		}
		if !s.PublicKeyPackage.Equal(shares[0].PublicKeyPackage) {
			return nil, &FrostError{Op: "reshare", Message: "shares belong to different key batches"}
		}
		if _, dup := seen[s.ParticipantID]; dup {
			return nil, newDuplicateShareError("reshare", s.ParticipantID)
		}
		seen[s.ParticipantID] = struct{}{}
		keyPackages[i] = s.KeyPackage
	}

	groupSecret, err := debug.RecoverGroupSecret(ciphersuiteGroup(), keyPackages)
	if err != nil {
		return nil, &FrostError{Op: "reshare", Message: "failed to reconstruct group signing key", Cause: err}
	}
	defer groupSecret.Zero()

	keyShares, pkg, err := dealerKeygen(groupSecret, newThreshold, newTotal)
	if err != nil {
		return nil, err
	}

	// The rotation must not move the group key. The new commitment's constant
	// term is the public key of the reconstructed scalar, so inequality here
	// means the reconstruction or the re-split is corrupted.
	if pkg.GroupPublicKey.Equal(shares[0].PublicKeyPackage.GroupPublicKey) != 1 {
		return nil, &FrostError{Op: "reshare", Message: "group public key changed across reshare"}
	}

	return packageShares("reshare", keyShares, pkg, newThreshold, newTotal)
}
