package contract

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// requireString rejects empty or blank arguments before any ledger read.
func requireString(value, field string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s cannot be empty", ErrInvalidArgument, field)
	}
	return nil
}

// parseQuantity parses a positive integer quantity from its string-typed
// transaction argument.
func parseQuantity(value string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q is not an integer", ErrInvalidArgument, value)
	}
	if qty <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %d", ErrInvalidArgument, qty)
	}
	return qty, nil
}

// parseDate validates a YYYY-MM-DD date argument.
func parseDate(value, field string) error {
	if _, err := time.Parse(dateLayout, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s %q is not a valid %s date", ErrInvalidArgument, field, value, dateLayout)
	}
	return nil
}

// parseAssetList decodes the JSON asset-key list argument of a shipment.
func parseAssetList(value string) ([]string, error) {
	var assets []string
	if err := json.Unmarshal([]byte(value), &assets); err != nil {
		return nil, fmt.Errorf("%w: asset list is not a JSON string array: %v", ErrInvalidArgument, err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: asset list cannot be empty", ErrInvalidArgument)
	}
	for i, asset := range assets {
		if strings.TrimSpace(asset) == "" {
			return nil, fmt.Errorf("%w: asset list entry %d is empty", ErrInvalidArgument, i)
		}
	}
	return assets, nil
}
