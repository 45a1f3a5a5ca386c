package object

import (
	"fmt"
	"math"
	"math/big"

	"github.com/cockroachdb/apd/v3"
)

var bigFive = big.NewInt(5)

// Decimal is an arbitrary precision base 10 number.
//
// The coefficient and exponent are kept exactly as supplied, so "1.50" and
// "1.5" have different text forms while still being numerically equal.
type Decimal struct {
	d *apd.Decimal
}

func (Decimal) Kind() Kind { return KindDecimal }
func (Decimal) isValue()   {}

// NewDecimal returns a Decimal holding a copy of d.
func NewDecimal(d *apd.Decimal) Decimal {
	return Decimal{d: new(apd.Decimal).Set(d)}
}

// ParseDecimal parses the decimal string s keeping every digit.
func ParseDecimal(s string) (Decimal, error) {
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal %q: %w", s, err)
	}
	if d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("invalid decimal %q: not a finite number", s)
	}
	return Decimal{d: d}, nil
}

// DecimalFromFloat returns the exact decimal expansion of the binary value of f.
//
// A float64 is num / 2^k for some k, and num / 2^k = num * 5^k / 10^k, so the
// expansion has exactly k fractional digits.
func DecimalFromFloat(f float64) (Decimal, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Decimal{}, fmt.Errorf("cannot represent %v as a decimal", f)
	}
	r := new(big.Rat).SetFloat64(f)
	k := r.Denom().BitLen() - 1
	coeff := new(big.Int).Exp(bigFive, big.NewInt(int64(k)), nil)
	coeff.Mul(coeff, r.Num())
	d := apd.NewWithBigInt(new(apd.BigInt).SetMathBigInt(coeff), int32(-k))
	// big.Rat has no negative zero
	if coeff.Sign() == 0 && math.Signbit(f) {
		d.Negative = true
	}
	return Decimal{d: d}, nil
}

// Apd returns a copy of the underlying decimal.
func (d Decimal) Apd() *apd.Decimal {
	if d.d == nil {
		return new(apd.Decimal)
	}
	return new(apd.Decimal).Set(d.d)
}

// Equal returns true if both decimals are numerically equal.
func (d Decimal) Equal(other Decimal) bool {
	return d.Apd().Cmp(other.Apd()) == 0
}

func (d Decimal) String() string {
	if d.d == nil {
		return "0"
	}
	return d.d.String()
}

func (d Decimal) clone() Decimal {
	if d.d == nil {
		return d
	}
	return Decimal{d: new(apd.Decimal).Set(d.d)}
}
