package modes

import (
	"testing"

	"github.com/reusee/dscope"
)

// ModuleForDevelopment is the production wiring with self checks enabled.
type ModuleForDevelopment struct {
	dscope.Module
}

func ForDevelopment() ModuleForDevelopment {
	return ModuleForDevelopment{}
}

func (ModuleForDevelopment) T() *testing.T {
	return nil
}

func (ModuleForDevelopment) Mode() Mode {
	return ModeDevelopment
}
