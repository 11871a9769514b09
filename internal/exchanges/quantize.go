package exchanges

import "github.com/shopspring/decimal"

// Quantize rounds d down (toward zero) according to p. It is used to bring
// order prices and quantities in line with a market's OrderConstraints
// before they are accepted by a marketplace.
func Quantize(d decimal.Decimal, p Precision) decimal.Decimal {
	switch p.Kind {
	case DigitsAfterSeparator:
		return truncate(d, p.Digits)
	case SignificantDigits:
		return quantizeSignificant(d, p.Digits)
	case MultipleOfStep:
		return quantizeStep(d, p.Step)
	default:
		return d
	}
}

// truncate rounds toward zero to the given number of decimal places,
// unlike decimal.Round which rounds half-away-from-zero.
func truncate(d decimal.Decimal, places int32) decimal.Decimal {
	if d.IsZero() {
		return d
	}
	factor := decimal.New(1, places)
	scaled := d.Mul(factor)
	if scaled.IsNegative() {
		scaled = scaled.Ceil()
	} else {
		scaled = scaled.Floor()
	}
	return scaled.Div(factor)
}

func quantizeSignificant(d decimal.Decimal, digits int32) decimal.Decimal {
	if d.IsZero() || digits <= 0 {
		return d
	}
	abs := d.Abs()
	exp := int32(0)
	// Normalize abs into [10^(digits-1), 10^digits) by shifting the decimal
	// point, tracking the shift as exp.
	ten := decimal.NewFromInt(10)
	upper := decimal.New(1, digits)
	lower := decimal.New(1, digits-1)
	for abs.GreaterThanOrEqual(upper) {
		abs = abs.Div(ten)
		exp++
	}
	for abs.LessThan(lower) && !abs.IsZero() {
		abs = abs.Mul(ten)
		exp--
	}
	truncated := abs.Floor()
	scale := decimal.New(1, exp)
	result := truncated.Mul(scale)
	if d.IsNegative() {
		result = result.Neg()
	}
	return result
}

func quantizeStep(d decimal.Decimal, step decimal.Decimal) decimal.Decimal {
	if step.IsZero() {
		return d
	}
	quotient := d.Div(step)
	if quotient.IsNegative() {
		quotient = quotient.Ceil()
	} else {
		quotient = quotient.Floor()
	}
	return quotient.Mul(step)
}
