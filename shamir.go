package frostr

import (
	"crypto/rand"
)

// SecretSize is the fixed size of secrets handled by SplitSecret and
// ReconstructSecret.
const SecretSize = 32

// MaxShares bounds the shareholder count: shares are polynomial evaluations
// at distinct nonzero x-coordinates in GF(256).
const MaxShares = 255

// Share is a single Shamir share of a 32-byte secret.
//
// Index is the x-coordinate the secret polynomials were evaluated at, unique
// within any set used for reconstruction. GroupPK is always zero-filled in
// pure-SSS mode; the field exists for structural symmetry with FrostShare.
// Shares are immutable once created and may be reused across reconstructions.
type Share struct {
	Index   uint16
	Secret  [SecretSize]byte
	GroupPK [32]byte
}

// SplitSecret splits a 32-byte secret into total shares such that any
// threshold of them reconstruct it and threshold-1 learn nothing.
//
// With threshold == 1 every share is a verbatim copy of the secret: a
// degree-0 polynomial is not a real split, and any single share discloses
// the secret. With threshold >= 2, each of the 32 secret bytes becomes the
// constant term of an independent degree-(threshold-1) polynomial with
// uniformly random higher coefficients, evaluated at x = 1..total.
func SplitSecret(secret [SecretSize]byte, threshold, total uint16) ([]Share, error) {
	if err := validateThreshold(threshold, total); err != nil {
		return nil, err
	}
	if total > MaxShares {
		return nil, &InvalidThresholdError{Threshold: threshold, Total: total}
	}

	shares := make([]Share, total)
	for i := range shares {
		shares[i].Index = uint16(i + 1)
	}

	if threshold == 1 {
		for i := range shares {
			shares[i].Secret = secret
		}
		return shares, nil
	}

	// coeffs[0] is the secret byte; coeffs[1:] are drawn fresh from the CSPRNG
	// for every byte position and never reused.
	coeffs := make([]byte, threshold)
	defer ZeroizeBytes(coeffs)

	for pos := 0; pos < SecretSize; pos++ {
		coeffs[0] = secret[pos]
		if _, err := rand.Read(coeffs[1:]); err != nil {
			return nil, &FrostError{Op: "split", Message: "failed to generate polynomial coefficients", Cause: err}
		}
		for i := range shares {
			shares[i].Secret[pos] = evalPolynomial(coeffs, byte(i+1))
		}
	}

	return shares, nil
}

// evalPolynomial evaluates the polynomial with the given coefficients
// (constant term first) at x, using Horner's method in GF(256).
func evalPolynomial(coeffs []byte, x byte) byte {
	acc := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		acc = gf256Mul(acc, x) ^ coeffs[i]
	}
	return acc
}

// ReconstructSecret recovers the secret from the given shares by Lagrange
// interpolation at x = 0.
//
// The result is correct with exactly threshold shares and equally correct
// with more; callers need not know the original threshold. Shares carry no
// threshold metadata, so interpolating from fewer than the true threshold
// silently yields a wrong value rather than an error.
func ReconstructSecret(shares []Share) ([SecretSize]byte, error) {
	var secret [SecretSize]byte

	if len(shares) == 0 {
		return secret, &InvalidShareCountError{Need: 1, Got: 0}
	}

	seen := make(map[uint16]struct{}, len(shares))
	for _, s := range shares {
		if s.Index < 1 || s.Index > MaxShares {
			return secret, &FrostError{Op: "reconstruct", Message: "share index out of range"}
		}
		if _, dup := seen[s.Index]; dup {
			// A repeated x-coordinate makes the interpolation divide by zero;
			// reject it up front rather than trip the GF(256) contract.
			return secret, newDuplicateShareError("reconstruct", s.Index)
		}
		seen[s.Index] = struct{}{}
	}

	for pos := 0; pos < SecretSize; pos++ {
		var acc byte
		for i := range shares {
			xi := byte(shares[i].Index)

			// L_i(0) = prod_{j != i} x_j / (x_i - x_j). Subtraction is XOR in
			// characteristic 2, so 0 - x_j contributes x_j itself.
			basis := byte(1)
			for j := range shares {
				if j == i {
					continue
				}
				xj := byte(shares[j].Index)
				basis = gf256Mul(basis, gf256Div(xj, xi^xj))
			}

			acc ^= gf256Mul(shares[i].Secret[pos], basis)
		}
		secret[pos] = acc
	}

	return secret, nil
}
