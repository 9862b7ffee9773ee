package frostr

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
	group "github.com/bytemare/crypto"
	"github.com/bytemare/frost"
	"github.com/bytemare/frost/debug"
)

// Ciphersuite fixes the FROST instantiation: secp256k1 with SHA-256. The
// wallet layer above publishes BIP-340 x-only public keys, so verifying keys
// surface as 32-byte x-only encodings.
const Ciphersuite = frost.Secp256k1

// ciphersuiteGroup returns the prime-order group backing Ciphersuite.
func ciphersuiteGroup() group.Group {
	return group.Group(Ciphersuite)
}

// PublicKeyPackage carries the group's verification data: the group public
// key and the dealer's VSS commitment to the sharing polynomial. It is
// identical by value across every share of one batch and safe to publish.
type PublicKeyPackage struct {
	GroupPublicKey *group.Element
	VSSCommitment  []*group.Element
}

// VerifyingKey returns the 32-byte BIP-340 x-only encoding of the group
// public key.
func (p *PublicKeyPackage) VerifyingKey() ([32]byte, error) {
	var key [32]byte
	pk, err := btcec.ParsePubKey(p.GroupPublicKey.Encode())
	if err != nil {
		return key, &FrostError{Op: "keygen", Message: "group public key is not a valid secp256k1 point", Cause: err}
	}
	copy(key[:], schnorr.SerializePubKey(pk))
	return key, nil
}

// Clone returns a deep copy, so each share in a batch owns its package.
func (p *PublicKeyPackage) Clone() *PublicKeyPackage {
	commitment := make([]*group.Element, len(p.VSSCommitment))
	for i, c := range p.VSSCommitment {
		commitment[i] = c.Copy()
	}
	return &PublicKeyPackage{
		GroupPublicKey: p.GroupPublicKey.Copy(),
		VSSCommitment:  commitment,
	}
}

// Equal reports whether both packages verify against the same group key.
func (p *PublicKeyPackage) Equal(other *PublicKeyPackage) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.GroupPublicKey.Equal(other.GroupPublicKey) == 1
}

// FrostShare is one participant's portion of a threshold signing key.
//
// KeyPackage is that participant's secret signing material and must never be
// transmitted to or combined by another party outside the signing protocol.
// PublicKeyPackage, Threshold and Total are identical across a batch;
// ParticipantID is the 1-based FROST identifier, unique within the batch.
type FrostShare struct {
	KeyPackage       *frost.KeyShare
	PublicKeyPackage *PublicKeyPackage
	Threshold        uint16
	Total            uint16
	ParticipantID    uint16
}

// VerifyingKey returns the batch's 32-byte x-only group verifying key.
func (s *FrostShare) VerifyingKey() ([32]byte, error) {
	if s.PublicKeyPackage == nil {
		return [32]byte{}, &FrostError{Op: "keygen", Message: "share carries no public key package"}
	}
	return s.PublicKeyPackage.VerifyingKey()
}

// GenerateKeyShares runs trusted-dealer FROST key generation: a fresh group
// signing key is sampled, sharded over participants 1..total, and returned
// as one FrostShare per participant.
//
// The batch is atomic: either all total shares are returned or none are. The
// dealer briefly holds the full group secret in this process; that scalar is
// zeroized before returning.
func GenerateKeyShares(threshold, total uint16) ([]FrostShare, error) {
	if err := validateThreshold(threshold, total); err != nil {
		return nil, err
	}

	groupSecret := ciphersuiteGroup().NewScalar().Random()
	defer groupSecret.Zero()

	keyShares, pkg, err := dealerKeygen(groupSecret, threshold, total)
	if err != nil {
		return nil, err
	}

	return packageShares("keygen", keyShares, pkg, threshold, total)
}

// dealerKeygen invokes the external trusted dealer on the given group secret
// with dense identifiers 1..total (identifier 0 is reserved in FROST). The
// dealer reports internal failures by panicking; those surface here as a
// *FrostError so a corrupted dealer computation fails the whole batch.
func dealerKeygen(groupSecret *group.Scalar, threshold, total uint16) (keyShares []*frost.KeyShare, pkg *PublicKeyPackage, err error) {
	defer func() {
		if r := recover(); r != nil {
			keyShares, pkg = nil, nil
			err = &FrostError{Op: "keygen", Message: fmt.Sprintf("trusted dealer generation failed: %v", r)}
		}
	}()

	shares, groupPublicKey, commitment := debug.TrustedDealerKeygen(
		Ciphersuite, groupSecret, int(total), int(threshold))

	return shares, &PublicKeyPackage{GroupPublicKey: groupPublicKey, VSSCommitment: commitment}, nil
}

// packageShares converts raw dealer output into FrostShare values. Every raw
// share is checked against the dealer's public commitments; a mismatch means
// the dealer computation is corrupted and aborts the batch rather than
// dropping one share.
func packageShares(op string, keyShares []*frost.KeyShare, pkg *PublicKeyPackage, threshold, total uint16) ([]FrostShare, error) {
	g := ciphersuiteGroup()

	batch := make([]FrostShare, len(keyShares))
	for i, ks := range keyShares {
		id := uint16(i + 1)
		if ks.Identifier() != uint64(id) {
			return nil, &FrostError{Op: op,
				Message: fmt.Sprintf("dealer returned identifier %d at position %d", ks.Identifier(), id)}
		}
		if !debug.VerifyVSS(g, ks, pkg.VSSCommitment) {
			return nil, &FrostError{Op: op,
				Message: fmt.Sprintf("key share %d failed verification against the dealer commitments", id)}
		}

		batch[i] = FrostShare{
			KeyPackage:       ks,
			PublicKeyPackage: pkg.Clone(),
			Threshold:        threshold,
			Total:            total,
			ParticipantID:    id,
		}
	}

	return batch, nil
}
