package transpile

import (
	"github.com/reusee/djs/djsconfigs"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Configs djsconfigs.Module
	Logs    logs.Module
}

func (Module) Transpiler(
	prefix djsconfigs.Prefix,
	policy lowering.ErrorPolicy,
	verify djsconfigs.VerifyOutput,
	logger logs.Logger,
	newSpan logs.NewSpan,
) *Transpiler {
	return New(Options{
		Prefix:  string(prefix),
		Policy:  policy,
		Verify:  bool(verify),
		Logger:  logger,
		NewSpan: newSpan,
	})
}
