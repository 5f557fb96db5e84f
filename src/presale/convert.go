package presale

// TokenScale is the fixed-point precision of token amounts, 9 decimals.
const TokenScale = 1_000_000_000

func checkedAdd(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

func checkedMul(a, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrOverflow
	}
	return product, nil
}

// ConvertTokens computes the token amount owed for a contribution.
// Base tokens are the contribution scaled to the token's fixed-point
// precision and divided by the unit price, bonus tokens are a percentage
// of the base. All arithmetic is checked, any overflow fails the whole
// conversion without a partial result.
func ConvertTokens(amount, price, bonusPercent uint64) (tokens uint64, err error) {
	if price == 0 {
		return 0, ErrInvalidPrice
	}

	scaled, err := checkedMul(amount, TokenScale)
	if err != nil {
		return
	}
	base := scaled / price

	bonus, err := checkedMul(base, bonusPercent)
	if err != nil {
		return
	}
	bonus /= 100

	return checkedAdd(base, bonus)
}
