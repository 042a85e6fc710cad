package dataset

import (
	"errors"
	"strconv"
	"strings"
)

// contractSuffix is the unit every contract cell ends in, matched case-insensitively
const contractSuffix = "yr"

var (
	errContractSuffix   = errors.New(`contract does not end in "yr"`)
	errContractTooShort = errors.New("contract has no years before its suffix")
	errContractNotInt   = errors.New("contract years are not an integer")
	errContractBelowOne = errors.New("contract years must be at least 1")
)

// ParseContractYears strips the "yr" suffix from a contract cell and returns
// the leading years. Values above five are kept.
func ParseContractYears(contract string) (int, error) {
	contract = strings.TrimSpace(contract)
	cut := len(contract) - len(contractSuffix)
	if cut < 0 || !strings.EqualFold(contract[cut:], contractSuffix) {
		return 0, errContractSuffix
	}

	years := strings.TrimSpace(contract[:cut])
	if years == "" {
		return 0, errContractTooShort
	}
	n, err := strconv.Atoi(years)
	if err != nil {
		return 0, errContractNotInt
	}
	if n < 1 {
		return 0, errContractBelowOne
	}
	return n, nil
}
