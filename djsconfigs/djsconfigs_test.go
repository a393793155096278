package djsconfigs

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/reusee/djs/cmds"
	"github.com/reusee/djs/configs"
	"github.com/reusee/djs/logs"
	"github.com/reusee/djs/lowering"
	"github.com/reusee/djs/modes"
	"github.com/reusee/dscope"
)

func isolate(t *testing.T, files map[string]string) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
}

func newScope(mode any) dscope.Scope {
	return dscope.New(new(Module), mode).Fork(
		func() logs.Writer {
			return io.Discard
		},
	)
}

func TestDefaults(t *testing.T) {
	isolate(t, nil)
	newScope(modes.ForProduction()).Call(func(
		prefix Prefix,
		policy lowering.ErrorPolicy,
		verify VerifyOutput,
		loader configs.Loader,
	) {
		if prefix != lowering.DefaultPrefix {
			t.Fatalf("got %v", prefix)
		}
		if policy != lowering.PolicyChain {
			t.Fatalf("got %v", policy)
		}
		if verify {
			t.Fatal()
		}
		if len(loader.Paths()) > 0 && loader.Paths()[0] != "/etc/djs.cue" {
			t.Fatalf("got %v", loader.Paths())
		}
	})
}

func TestVerifyInDevelopment(t *testing.T) {
	isolate(t, nil)
	newScope(modes.ForTest(t)).Call(func(
		verify VerifyOutput,
	) {
		if !verify {
			t.Fatal()
		}
	})
}

func TestConfigFile(t *testing.T) {
	isolate(t, map[string]string{
		"djs.cue": `
prefix: "__d"
error_policy: "log"
`,
		".djs.cue": `
prefix: "__hidden"
verify_output: true
`,
	})
	newScope(modes.ForProduction()).Call(func(
		prefix Prefix,
		policy lowering.ErrorPolicy,
		verify VerifyOutput,
		loader configs.Loader,
	) {
		if prefix != "__d" {
			t.Fatalf("got %v", prefix)
		}
		if policy != lowering.PolicyLog {
			t.Fatalf("got %v", policy)
		}
		if !verify {
			t.Fatal()
		}
		if n := len(loader.Paths()); n < 2 {
			t.Fatalf("got %v", loader.Paths())
		}
		if filepath.Base(loader.Paths()[0]) != "djs.cue" {
			t.Fatalf("got %v", loader.Paths())
		}
	})
}

func TestFlagsOverrideConfig(t *testing.T) {
	isolate(t, map[string]string{
		"djs.cue": `
prefix: "__d"
error_policy: "log"
`,
	})
	cmds.GlobalExecutor.MustExecute([]string{
		"-prefix", "$cleanup",
		"-error-policy=chain",
	})
	defer func() {
		cmds.GlobalExecutor.MustExecute([]string{"-prefix."})
		errorPolicyFlag = nil
	}()
	newScope(modes.ForProduction()).Call(func(
		prefix Prefix,
		policy lowering.ErrorPolicy,
	) {
		if prefix != "$cleanup" {
			t.Fatalf("got %v", prefix)
		}
		if policy != lowering.PolicyChain {
			t.Fatalf("got %v", policy)
		}
	})
}

func TestInvalidConfig(t *testing.T) {
	isolate(t, map[string]string{
		"djs.cue": `
error_policy: "panic"
`,
	})
	newScope(modes.ForProduction()).Call(func(
		loader configs.Loader,
	) {
		if err := loader.Err(); err == nil {
			t.Fatal("should error")
		}
	})
}

func TestInvalidFlag(t *testing.T) {
	err := cmds.GlobalExecutor.Execute([]string{"-error-policy", "panic"})
	if err == nil {
		t.Fatal("should error")
	}
	if errorPolicyFlag != nil {
		t.Fatalf("got %v", *errorPolicyFlag)
	}
}
