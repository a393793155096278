package djsconfigs

import (
	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/configs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/djs/vars"
)

// Prefix starts the names of variables introduced by lowering.
type Prefix string

var _ configs.Configurable = Prefix("")

func (Prefix) ConfigPath() string {
	return "prefix"
}

var prefixFlag = cmds.Var[string]("-prefix", "identifier prefix of generated variables")

func (Module) Prefix(
	loader configs.Loader,
) Prefix {
	return Prefix(vars.FirstNonZero(
		*prefixFlag,
		string(configs.Get[Prefix](loader)),
		lowering.DefaultPrefix,
	))
}
