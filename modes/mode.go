package modes

import "fmt"

type Mode uint8

const (
	ModeProduction Mode = iota + 1
	ModeDevelopment
)

func (m Mode) String() string {
	switch m {
	case ModeProduction:
		return "production"
	case ModeDevelopment:
		return "development"
	}
	return fmt.Sprintf("Mode(%d)", m)
}

// Checked reports whether the mode runs self checks on generated output.
func (m Mode) Checked() bool {
	return m == ModeDevelopment
}
