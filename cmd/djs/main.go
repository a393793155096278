package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"

	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/configs"
	"github.com/reusee/djs/debugs"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/modes"
	"github.com/reusee/djs/runner"
	"github.com/reusee/djs/transpile"
	"github.com/reusee/djs/vars"
	"github.com/reusee/dscope"
)

var (
	outputFlag = cmds.Var[string]("-o", "write generated code to this path instead of stdout")
	jsonFlag   = cmds.Switch("-json", "print syntax errors as JSON on stdout")
	tapFlag    = cmds.Switch("-tap", "open a starlark session over the analysis")
	devFlag    = cmds.Switch("-dev", "development mode, generated code is verified")
	jobsFlag   = cmds.Var[int]("-jobs", "files transpiled at once by build")
)

var (
	commandName string
	inputPath   string
)

var commandDescs = map[string]string{
	"transpile": "lower defer statements and print the generated code",
	"check":     "report syntax errors only",
	"run":       "transpile and execute the program",
	"scopes":    "print functions and their defer statements as YAML",
	"tokens":    "print the token stream",
	"build":     "transpile every .djs file under a directory into .js files",
}

func init() {
	for name, desc := range commandDescs {
		cmds.Define(name, cmds.Func(func(path string) error {
			if commandName != "" {
				return fmt.Errorf("command %s given after %s", name, commandName)
			}
			commandName = name
			inputPath = path
			return nil
		}).Desc(desc))
	}
}

func main() {
	cmds.Execute(os.Args[1:])

	if commandName == "" {
		fmt.Fprintln(os.Stderr, "error: no command given")
		fmt.Fprintln(os.Stderr)
		cmds.PrintUsage()
		os.Exit(2)
	}

	var mode any = modes.ForProduction()
	if *devFlag {
		mode = modes.ForDevelopment()
	}

	scope := dscope.New(
		new(transpile.Module),
		new(runner.Module),
		new(debugs.Module),
		mode,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// config errors surface before any provider reads the files
	scope.Call(func(
		loader configs.Loader,
	) {
		if err := loader.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(exitFailure)
		}
	})

	var code int
	scope.Call(func(
		tr *transpile.Transpiler,
		r *runner.Runner,
		tap debugs.Tap,
		tapScript debugs.TapScript,
		logger logs.Logger,
	) {
		a := &app{
			transpiler: tr,
			runner:     r,
			stdout:     os.Stdout,
			stderr:     os.Stderr,
			json:       *jsonFlag,
			output:     *outputFlag,
			jobs:       vars.FirstNonZero(*jobsFlag, runtime.NumCPU()),
			logger:     logger,
		}
		if *tapFlag || tapScript != "" {
			a.tap = tap
		}
		code = a.execute(ctx, commandName, inputPath)
	})

	cancel()
	os.Exit(code)
}
