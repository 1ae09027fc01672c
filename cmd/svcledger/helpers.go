// Output and argument-parsing helpers shared by the CLI commands.
package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/opsledger/svcledger/pkg/types"
)

// printJSON writes v as indented JSON to stdout.
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

// parseID parses a positional id argument.
func parseID(arg, what string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer, got %q", types.ErrValidation, what, arg)
	}
	return id, nil
}

// parsePrice parses a positional price argument.
func parsePrice(arg string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(arg)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: price must be a number, got %q", types.ErrValidation, arg)
	}
	return d, nil
}

// parseDate parses a positional YYYY-MM-DD date argument.
func parseDate(arg string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, arg)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", types.ErrValidation, arg)
	}
	return t, nil
}

// parsePaymentType parses a positional monthly|yearly argument.
func parsePaymentType(arg string) (types.PaymentType, error) {
	pt := types.PaymentType(arg)
	if !pt.Valid() {
		return "", fmt.Errorf("%w: payment type must be monthly or yearly, got %q", types.ErrValidation, arg)
	}
	return pt, nil
}
