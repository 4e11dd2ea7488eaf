package domain

import (
	"fmt"
	"math/big"
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

var (
	weiPerEther      = big.NewInt(params.Ether)
	etherAmountRegex = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
	weiAmountRegex   = regexp.MustCompile(`^[0-9]{1,78}$`)
)

// ParseEther converts a decimal ether amount (e.g. "1.5") into wei
func ParseEther(amount string) (*big.Int, error) {
	amount = strings.TrimSpace(amount)
	if !etherAmountRegex.MatchString(amount) {
		return nil, fmt.Errorf("invalid ether amount: %q", amount)
	}

	whole, frac, _ := strings.Cut(amount, ".")
	frac = strings.TrimRight(frac, "0")
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("ether amount has more than %d decimals: %q", etherDecimals, amount)
	}
	frac += strings.Repeat("0", etherDecimals-len(frac))

	wei, ok := new(big.Int).SetString(whole+frac, 10)
	if !ok {
		return nil, fmt.Errorf("invalid ether amount: %q", amount)
	}
	return wei, nil
}

// FormatEther converts a wei amount into a decimal ether string without trailing zeros
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0"
	}

	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}

	whole, rem := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	digits := rem.String()
	frac := strings.TrimRight(strings.Repeat("0", etherDecimals-len(digits))+digits, "0")
	if frac == "" {
		return sign + whole.String()
	}
	return sign + whole.String() + "." + frac
}

// IsValidWei checks if a string is a non-negative base-10 integer of at most 78 digits
func IsValidWei(amount string) bool {
	return weiAmountRegex.MatchString(amount)
}

// WeiString returns the base-10 representation of a wei amount, or nil
func WeiString(wei *big.Int) *string {
	if wei == nil {
		return nil
	}
	s := wei.String()
	return &s
}
