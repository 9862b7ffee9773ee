package frostr

import (
	"fmt"
	"time"
)

// BatchState tags the lifecycle state of a FrostShare batch.
type BatchState string

const (
	// BatchActive means the batch's shares are the ones signing for the key.
	BatchActive BatchState = "active"

	// BatchRetired means a replacement batch has reached quorum and these
	// shares must no longer be used.
	BatchRetired BatchState = "retired"
)

// Rotation tracks the handoff from an old share batch to its replacement.
//
// Resharing does not revoke old shares; revocation is an explicit policy
// transition. The old batch stays Active until a quorum (the new batch's
// threshold) of new-batch participants has acknowledged receipt of their
// shares, at which point it transitions to Retired exactly once.
//
// Rotation is not safe for concurrent use without external locking.
type Rotation struct {
	oldState     BatchState
	newThreshold uint16
	newTotal     uint16
	fingerprint  []byte
	acks         map[uint16]struct{}
	handler      AuditEventHandler
}

// NewRotation starts tracking a rotation from oldBatch to newBatch. Both
// batches must be non-empty and must verify against the same group key —
// that is what ReshareKeyShares guarantees, and a mismatch here means the
// caller is pairing unrelated batches.
func NewRotation(oldBatch, newBatch []FrostShare, handler AuditEventHandler) (*Rotation, error) {
	if len(oldBatch) == 0 {
		return nil, &InvalidShareCountError{Need: 1, Got: 0}
	}
	if len(newBatch) == 0 {
		return nil, &InvalidShareCountError{Need: 1, Got: 0}
	}

	oldKey, err := oldBatch[0].VerifyingKey()
	if err != nil {
		return nil, err
	}
	newKey, err := newBatch[0].VerifyingKey()
	if err != nil {
		return nil, err
	}
	if !SecureCompare(oldKey[:], newKey[:]) {
		return nil, &FrostError{Op: "rotation", Message: "old and new batches verify against different group keys"}
	}

	if handler == nil {
		handler = NopAuditHandler{}
	}

	return &Rotation{
		oldState:     BatchActive,
		newThreshold: newBatch[0].Threshold,
		newTotal:     newBatch[0].Total,
		fingerprint:  FingerprintVerifyingKey(newKey),
		acks:         make(map[uint16]struct{}, newBatch[0].Total),
		handler:      handler,
	}, nil
}

// Acknowledge records that the given new-batch participant holds its share.
// When acknowledgments reach the new batch's threshold, the old batch is
// retired and the retirement is reported to the audit handler. The returned
// bool is true exactly when this call performed the retirement.
func (r *Rotation) Acknowledge(participantID uint16) (bool, error) {
	if r.oldState == BatchRetired {
		return false, &FrostError{Op: "rotation", Message: "old batch is already retired"}
	}
	if participantID < 1 || participantID > r.newTotal {
		return false, &FrostError{Op: "rotation",
			Message: fmt.Sprintf("participant %d is not in the new batch", participantID)}
	}
	if _, dup := r.acks[participantID]; dup {
		return false, newDuplicateShareError("rotation", participantID)
	}

	r.acks[participantID] = struct{}{}
	if len(r.acks) < int(r.newThreshold) {
		return false, nil
	}

	r.oldState = BatchRetired
	r.handler.OnBatchRetired(&AuditEvent{
		Timestamp:               time.Now().UTC(),
		EventType:               AuditEventBatchRetired,
		Threshold:               r.newThreshold,
		Total:                   r.newTotal,
		VerifyingKeyFingerprint: r.fingerprint,
		SecurityLevel:           AssessSecurity(r.newThreshold, r.newTotal).OverallRating,
		Success:                 true,
	})
	return true, nil
}

// OldBatchState returns the lifecycle state of the batch being replaced.
func (r *Rotation) OldBatchState() BatchState { return r.oldState }

// Acknowledged returns how many distinct new-batch participants have
// confirmed receipt of their shares.
func (r *Rotation) Acknowledged() int { return len(r.acks) }
