package frostr

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	group "github.com/bytemare/crypto"
	"github.com/bytemare/frost"
	secretsharing "github.com/bytemare/secret-sharing"
)

// Binary framing for FrostShare, consumed by the storage/distribution layer:
//
//	uint16 participantID | uint16 threshold | uint16 total |
//	uint16 commitmentCount | uint32 keyPackageLen | keyPackage |
//	commitments (commitmentCount fixed-size group elements)
//
// The group public key is not framed separately: it is the constant term of
// the VSS commitment.

const encodingHeaderLen = 2 + 2 + 2 + 2 + 4

// Encode serializes the share into a compact byte string. The output
// contains the participant's secret signing material and must be protected
// like the share itself.
func (s *FrostShare) Encode() ([]byte, error) {
	if s.KeyPackage == nil || s.PublicKeyPackage == nil {
		return nil, &FrostError{Op: "encode", Message: "share is missing its key material"}
	}
	if len(s.PublicKeyPackage.VSSCommitment) == 0 {
		return nil, &FrostError{Op: "encode", Message: "share carries no dealer commitment"}
	}

	keyPackage := s.KeyPackage.Encode()

	out := make([]byte, encodingHeaderLen, encodingHeaderLen+len(keyPackage))
	binary.BigEndian.PutUint16(out[0:2], s.ParticipantID)
	binary.BigEndian.PutUint16(out[2:4], s.Threshold)
	binary.BigEndian.PutUint16(out[4:6], s.Total)
	binary.BigEndian.PutUint16(out[6:8], uint16(len(s.PublicKeyPackage.VSSCommitment)))
	binary.BigEndian.PutUint32(out[8:12], uint32(len(keyPackage)))

	out = append(out, keyPackage...)
	for _, c := range s.PublicKeyPackage.VSSCommitment {
		out = append(out, c.Encode()...)
	}

	return out, nil
}

// Decode deserializes the compact encoding produced by Encode, validating
// that the embedded group public key is a proper secp256k1 point.
func (s *FrostShare) Decode(data []byte) error {
	if len(data) < encodingHeaderLen {
		return &FrostError{Op: "decode", Message: "encoding too short"}
	}

	participantID := binary.BigEndian.Uint16(data[0:2])
	threshold := binary.BigEndian.Uint16(data[2:4])
	total := binary.BigEndian.Uint16(data[4:6])
	commitmentCount := int(binary.BigEndian.Uint16(data[6:8]))
	keyPackageLen := int(binary.BigEndian.Uint32(data[8:12]))

	if commitmentCount == 0 {
		return &FrostError{Op: "decode", Message: "encoding carries no dealer commitment"}
	}

	g := ciphersuiteGroup()
	elementLen := int(g.ElementLength())
	want := encodingHeaderLen + keyPackageLen + commitmentCount*elementLen
	if len(data) != want {
		return &FrostError{Op: "decode",
			Message: fmt.Sprintf("malformed encoding: have %d bytes, want %d", len(data), want)}
	}

	offset := encodingHeaderLen
	keyPackage := new(frost.KeyShare)
	if err := keyPackage.Decode(data[offset : offset+keyPackageLen]); err != nil {
		return &FrostError{Op: "decode", Message: "invalid key package", Cause: err}
	}
	offset += keyPackageLen

	commitment := make([]*group.Element, commitmentCount)
	for i := range commitment {
		commitment[i] = g.NewElement()
		if err := commitment[i].Decode(data[offset : offset+elementLen]); err != nil {
			return &FrostError{Op: "decode",
				Message: fmt.Sprintf("invalid commitment element %d", i), Cause: err}
		}
		offset += elementLen
	}

	if _, err := btcec.ParsePubKey(commitment[0].Encode()); err != nil {
		return &FrostError{Op: "decode", Message: "group public key is not a valid secp256k1 point", Cause: err}
	}
	if keyPackage.Identifier() != uint64(participantID) {
		return &FrostError{Op: "decode",
			Message: fmt.Sprintf("key package identifier %d does not match participant %d",
				keyPackage.Identifier(), participantID)}
	}
	publicShare := g.Base().Multiply(keyPackage.SecretKey())
	if !secretsharing.Verify(g, keyPackage.Identifier(), publicShare, commitment) {
		return &FrostError{Op: "decode", Message: "key package does not match the dealer commitment"}
	}

	s.KeyPackage = keyPackage
	s.PublicKeyPackage = &PublicKeyPackage{
		GroupPublicKey: commitment[0].Copy(),
		VSSCommitment:  commitment,
	}
	s.Threshold = threshold
	s.Total = total
	s.ParticipantID = participantID

	return nil
}
