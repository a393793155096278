package vars

import "strings"

// StrToBool reads common spellings of true. Anything unrecognized is false.
func StrToBool(str string) bool {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "true", "t", "yes", "y", "on", "1":
		return true
	}
	return false
}
