package common

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseUserMention extracts a user id from "<@id>" or "<@!id>" markup, or
// accepts a bare id.
func ParseUserMention(arg string) (string, error) {
	id := strings.TrimSpace(arg)
	if strings.HasPrefix(id, "<@") && strings.HasSuffix(id, ">") {
		id = strings.TrimSuffix(strings.TrimPrefix(id, "<@"), ">")
		id = strings.TrimPrefix(id, "!")
	}
	if id == "" {
		return "", fmt.Errorf("empty user reference")
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("not a user mention: %q", arg)
		}
	}
	return id, nil
}

// ParseAmount parses a positive money amount from a command argument.
func ParseAmount(arg string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(arg), 64)
	if err != nil {
		return 0, fmt.Errorf("not an amount: %q", arg)
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount must be positive")
	}
	return v, nil
}
