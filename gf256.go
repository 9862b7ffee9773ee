package frostr

// GF(256) arithmetic over the AES field, reduction polynomial
// x^8 + x^4 + x^3 + x + 1 (0x11B). No lookup tables; multiplication is the
// carry-less peasant loop and inversion uses Fermat's little theorem.
//
// Division by zero and inversion of zero are programming-contract violations:
// they can only be reached by a validation bug, never by caller input that
// passed the documented preconditions, so they panic instead of returning an
// error.

// gf256Mul multiplies two field elements. Commutative, identity 1,
// annihilator 0.
func gf256Mul(a, b byte) byte {
	var p byte
	for i := 0; i < 8; i++ {
		if b&1 != 0 {
			p ^= a
		}
		carry := a & 0x80
		a <<= 1
		if carry != 0 {
			a ^= 0x1b
		}
		b >>= 1
	}
	return p
}

// gf256Inv returns the multiplicative inverse of a, computed as a^254:
// six square-and-multiply steps bring the exponent to 127, and the final
// squaring doubles it to 254. Panics when a == 0.
func gf256Inv(a byte) byte {
	if a == 0 {
		panic("frostr: multiplicative inverse of zero in GF(256)")
	}
	r := a
	for i := 0; i < 6; i++ {
		r = gf256Mul(gf256Mul(r, r), a)
	}
	return gf256Mul(r, r)
}

// gf256Div returns a / b. Panics when b == 0; returns 0 when a == 0.
func gf256Div(a, b byte) byte {
	if b == 0 {
		panic("frostr: division by zero in GF(256)")
	}
	if a == 0 {
		return 0
	}
	return gf256Mul(a, gf256Inv(b))
}
