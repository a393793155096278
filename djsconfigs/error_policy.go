package djsconfigs

import (
	"fmt"

	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/configs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/djs/vars"
)

type ErrorPolicyName string

var _ configs.Configurable = ErrorPolicyName("")

func (ErrorPolicyName) ConfigPath() string {
	return "error_policy"
}

var errorPolicyFlag *lowering.ErrorPolicy

func init() {
	cmds.Define("-error-policy", cmds.Func(func(policy lowering.ErrorPolicy) {
		errorPolicyFlag = &policy
	}).Desc("chain or log: what a throwing deferred action does"))
}

// ErrorPolicy resolves the policy from the flag, then the config files.
// PolicyChain is the default.
func (Module) ErrorPolicy(
	loader configs.Loader,
) lowering.ErrorPolicy {
	var fromConfig *lowering.ErrorPolicy
	if name := configs.Get[ErrorPolicyName](loader); name != "" {
		policy, err := lowering.ParseErrorPolicy(string(name))
		if err != nil {
			// the schema admits only known names
			panic(fmt.Errorf("config error_policy: %w", err))
		}
		fromConfig = &policy
	}
	return vars.DerefOrZero(vars.FirstNonZero(
		errorPolicyFlag,
		fromConfig,
	))
}
