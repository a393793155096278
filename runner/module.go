package runner

import (
	"io"
	"os"

	"github.com/reusee/djs/logs"
	"github.com/reusee/dscope"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

// Stdout receives console.log and console.info.
type Stdout io.Writer

// Stderr receives console.warn and console.error.
type Stderr io.Writer

func (Module) Stdout() Stdout {
	return os.Stdout
}

func (Module) Stderr() Stderr {
	return os.Stderr
}

func (Module) Runner(
	stdout Stdout,
	stderr Stderr,
	logger logs.Logger,
) *Runner {
	return New(stdout, stderr, logger)
}
