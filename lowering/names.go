package lowering

import "strconv"

const DefaultPrefix = "__defer"

// Names are the identifiers introduced into a lowered function.
type Names struct {
	Stack  string
	Failed string
	Error  string
	Caught string
}

// ChooseNames derives names from prefix, adding a numeric suffix until
// none of them appears in taken.
func ChooseNames(prefix string, taken map[string]struct{}) Names {
	for i := 0; ; i++ {
		suffix := ""
		if i > 0 {
			suffix = "_" + strconv.Itoa(i)
		}
		names := Names{
			Stack:  prefix + "s" + suffix,
			Failed: prefix + "Failed" + suffix,
			Error:  prefix + "Error" + suffix,
			Caught: prefix + "Caught" + suffix,
		}
		if !names.collides(taken) {
			return names
		}
	}
}

func (n Names) collides(taken map[string]struct{}) bool {
	for _, name := range []string{n.Stack, n.Failed, n.Error, n.Caught} {
		if _, ok := taken[name]; ok {
			return true
		}
	}
	return false
}

// ValidPrefix reports whether prefix can start a JavaScript identifier
// on its own.
func ValidPrefix(prefix string) bool {
	if prefix == "" {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := prefix[i]
		switch {
		case c == '_' || c == '$':
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
