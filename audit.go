package frostr

import (
	"time"

	"golang.org/x/crypto/blake2b"
)

// AuditEventType represents the type of audit event.
type AuditEventType string

const (
	AuditEventKeyGeneration     AuditEventType = "key_generation"
	AuditEventReshare           AuditEventType = "reshare"
	AuditEventSecretSplit       AuditEventType = "secret_split"
	AuditEventBatchRetired      AuditEventType = "batch_retired"
	AuditEventValidationFailure AuditEventType = "validation_failure"
)

// AuditEvent describes a single key-material operation. Events carry
// parameters and a fingerprint of public material only, never shares or
// secrets.
type AuditEvent struct {
	Timestamp time.Time      `json:"timestamp"`
	EventType AuditEventType `json:"event_type"`

	Threshold uint16 `json:"threshold,omitempty"`
	Total     uint16 `json:"total,omitempty"`

	// VerifyingKeyFingerprint is the BLAKE2b-256 digest of the batch's x-only
	// group verifying key, where one exists (FROST operations only).
	VerifyingKeyFingerprint []byte `json:"verifying_key_fingerprint,omitempty"`

	SecurityLevel SecurityLevel `json:"security_level,omitempty"`
	ErrorCategory ErrorCategory `json:"error_category,omitempty"`

	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// AuditEventHandler records key-material events. Applications implement this
// to feed their own audit trail; the library never logs on its own.
type AuditEventHandler interface {
	// OnKeyGeneration is called after every GenerateKeyShares attempt.
	OnKeyGeneration(event *AuditEvent)

	// OnReshare is called after every ReshareKeyShares attempt.
	OnReshare(event *AuditEvent)

	// OnSecretSplit is called after every SplitSecret attempt.
	OnSecretSplit(event *AuditEvent)

	// OnBatchRetired is called when a rotation retires an old share batch.
	OnBatchRetired(event *AuditEvent)
}

// NopAuditHandler discards all events.
type NopAuditHandler struct{}

func (NopAuditHandler) OnKeyGeneration(*AuditEvent) {}
func (NopAuditHandler) OnReshare(*AuditEvent)       {}
func (NopAuditHandler) OnSecretSplit(*AuditEvent)   {}
func (NopAuditHandler) OnBatchRetired(*AuditEvent)  {}

// FingerprintVerifyingKey returns the BLAKE2b-256 digest of a verifying key,
// the only form in which key identity appears in audit events.
func FingerprintVerifyingKey(verifyingKey [32]byte) []byte {
	sum := blake2b.Sum256(verifyingKey[:])
	return sum[:]
}

// Dealer wraps the package-level key operations with audit event reporting.
// The operations themselves stay pure; Dealer only observes them.
type Dealer struct {
	handler AuditEventHandler
}

// NewDealer returns a Dealer reporting to handler. A nil handler discards
// events.
func NewDealer(handler AuditEventHandler) *Dealer {
	if handler == nil {
		handler = NopAuditHandler{}
	}
	return &Dealer{handler: handler}
}

// GenerateKeyShares calls the package-level GenerateKeyShares and reports
// the outcome.
func (d *Dealer) GenerateKeyShares(threshold, total uint16) ([]FrostShare, error) {
	shares, err := GenerateKeyShares(threshold, total)
	event := d.newEvent(AuditEventKeyGeneration, threshold, total, err)
	if err == nil {
		event.VerifyingKeyFingerprint = batchFingerprint(shares)
	}
	d.handler.OnKeyGeneration(event)
	return shares, err
}

// ReshareKeyShares calls the package-level ReshareKeyShares and reports the
// outcome.
func (d *Dealer) ReshareKeyShares(shares []FrostShare, newThreshold, newTotal uint16) ([]FrostShare, error) {
	rotated, err := ReshareKeyShares(shares, newThreshold, newTotal)
	event := d.newEvent(AuditEventReshare, newThreshold, newTotal, err)
	if err == nil {
		event.VerifyingKeyFingerprint = batchFingerprint(rotated)
	}
	d.handler.OnReshare(event)
	return rotated, err
}

// SplitSecret calls the package-level SplitSecret and reports the outcome.
// Split events carry no fingerprint: plain shares have no verifying key.
func (d *Dealer) SplitSecret(secret [SecretSize]byte, threshold, total uint16) ([]Share, error) {
	shares, err := SplitSecret(secret, threshold, total)
	d.handler.OnSecretSplit(d.newEvent(AuditEventSecretSplit, threshold, total, err))
	return shares, err
}

func (d *Dealer) newEvent(eventType AuditEventType, threshold, total uint16, err error) *AuditEvent {
	event := &AuditEvent{
		Timestamp:     time.Now().UTC(),
		EventType:     eventType,
		Threshold:     threshold,
		Total:         total,
		SecurityLevel: AssessSecurity(threshold, total).OverallRating,
		Success:       err == nil,
	}
	if err != nil {
		event.EventType = AuditEventValidationFailure
		event.ErrorCategory = errorCategory(err)
		event.Error = err.Error()
	}
	return event
}

// batchFingerprint fingerprints the batch's verifying key; nil when the
// batch is empty or its key material is malformed.
func batchFingerprint(shares []FrostShare) []byte {
	if len(shares) == 0 {
		return nil
	}
	key, err := shares[0].VerifyingKey()
	if err != nil {
		return nil
	}
	return FingerprintVerifyingKey(key)
}
