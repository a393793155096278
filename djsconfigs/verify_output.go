package djsconfigs

import (
	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/configs"
	"github.com/reusee/djs/modes"
)

// VerifyOutput makes the transpiler parse its own output before returning it.
type VerifyOutput bool

var _ configs.Configurable = VerifyOutput(false)

func (VerifyOutput) ConfigPath() string {
	return "verify_output"
}

var verifyFlag = cmds.Switch("-verify", "parse generated code again before emitting it")

func (Module) VerifyOutput(
	loader configs.Loader,
	mode modes.Mode,
) VerifyOutput {
	return VerifyOutput(*verifyFlag ||
		bool(configs.Get[VerifyOutput](loader)) ||
		mode.Checked())
}
