package runner

import (
	"io"
	"strings"

	"github.com/dop251/goja"
)

func installConsole(vm *goja.Runtime, stdout, stderr io.Writer) error {
	console := vm.NewObject()
	for name, w := range map[string]io.Writer{
		"log":   stdout,
		"info":  stdout,
		"debug": stdout,
		"warn":  stderr,
		"error": stderr,
	} {
		if err := console.Set(name, printer(vm, w)); err != nil {
			return err
		}
	}
	return vm.Set("console", console)
}

func printer(vm *goja.Runtime, w io.Writer) func(goja.FunctionCall) goja.Value {
	return func(call goja.FunctionCall) goja.Value {
		var b strings.Builder
		for i, arg := range call.Arguments {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(format(vm, arg))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			panic(vm.NewGoError(err))
		}
		return goja.Undefined()
	}
}

func format(vm *goja.Runtime, value goja.Value) string {
	switch {
	case value == nil || goja.IsUndefined(value):
		return "undefined"
	case goja.IsNull(value):
		return "null"
	}
	obj, ok := value.(*goja.Object)
	if !ok {
		return value.String()
	}
	switch obj.ClassName() {
	case "Error":
		return value.String()
	case "Function":
		return "[Function]"
	}
	if s, ok := stringify(vm, value); ok {
		return s
	}
	return value.String()
}

func stringify(vm *goja.Runtime, value goja.Value) (string, bool) {
	json := vm.Get("JSON")
	if json == nil {
		return "", false
	}
	fn, ok := goja.AssertFunction(json.ToObject(vm).Get("stringify"))
	if !ok {
		return "", false
	}
	ret, err := fn(json, value)
	if err != nil || goja.IsUndefined(ret) {
		return "", false
	}
	return ret.String(), true
}
