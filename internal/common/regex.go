package common

import (
	"fmt"
	"regexp"
	"strings"
)

// MatchPattern reports whether a suggestion pattern matches a transaction
// description. Descriptions are matched lower-cased, since synthesized
// patterns are always built from lower-cased text. An uncompilable pattern
// yields ErrInvalidPattern.
func MatchPattern(pattern, description string) (bool, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	return re.MatchString(strings.ToLower(description)), nil
}
