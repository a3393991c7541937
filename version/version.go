/*package version controls the version of the fieldmap source and of the
field definition files it reads.*/
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// SourceVersion is the semantic version number of the source code.
const SourceVersion = "0.3.0"

// ErrFormat is returned by Parse for malformed version strings.
var ErrFormat = errors.New("version string does not take the form of " +
	"three period-separated non-negative numbers")

// Parse parses a semantic version number string and returns an error if
// the string is invalid.
func Parse(s string) (major, minor, patch int, err error) {
	toks := strings.Split(strings.TrimSpace(s), ".")
	if len(toks) != 3 {
		return -1, -1, -1, fmt.Errorf("'%s': %w", s, ErrFormat)
	}

	var out [3]int
	for i, tok := range toks {
		out[i], err = strconv.Atoi(tok)
		if err != nil || out[i] < 0 {
			return -1, -1, -1, fmt.Errorf("'%s': %w", s, ErrFormat)
		}
	}

	return out[0], out[1], out[2], nil
}

// Later returns true if s1 represents a later version than s2. An error is
// returned if either is invalid.
func Later(s1, s2 string) (bool, error) {
	major1, minor1, patch1, err := Parse(s1)
	if err != nil {
		return false, err
	}
	major2, minor2, patch2, err := Parse(s2)
	if err != nil {
		return false, err
	}

	if major1 != major2 {
		return major1 > major2, nil
	} else if minor1 != minor2 {
		return minor1 > minor2, nil
	}
	return patch1 > patch2, nil
}

// Compatible returns nil if a file written for version s can be read by
// this source: the major and minor numbers must match and s can't be from a
// later patch.
func Compatible(s string) error {
	major, minor, _, err := Parse(s)
	if err != nil {
		return err
	}
	smajor, sminor, _, _ := Parse(SourceVersion)
	if major != smajor || minor != sminor {
		return fmt.Errorf("The version is set to %s, but the version of "+
			"the source is %s.", s, SourceVersion)
	}
	later, _ := Later(s, SourceVersion)
	if later {
		return fmt.Errorf("The version is set to %s, which is newer than "+
			"the version of the source, %s.", s, SourceVersion)
	}
	return nil
}
