package service

import (
	"fmt"
	"regexp"
)

var (
	snowflakeRe = regexp.MustCompile(`^\d{17,20}$`)
	objectIDRe  = regexp.MustCompile(`^[0-9a-f]{24}$`)
)

// ValidateID checks the identifier shape used for users and guilds: a
// 17-20 digit platform snowflake or a 24-hex-character store id.
func ValidateID(id string) error {
	if snowflakeRe.MatchString(id) || objectIDRe.MatchString(id) {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidIdentifier, id)
}
