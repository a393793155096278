package cmds

import (
	"encoding"
	"fmt"
	"reflect"
)

// Command is a named action of the command line. Func receives the
// arguments that follow the name, converted to its parameter types.
// Subs become available to the arguments after it.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

var textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)
	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}
	fnType := fnValue.Type()

	switch fnType.NumOut() {
	case 0:
	case 1:
		if fnType.Out(0) != errorType {
			panic(fmt.Errorf("must return error, got %v", fnType.Out(0)))
		}
	default:
		panic(fmt.Errorf("must return 0 or 1 value, got %v", fnType))
	}

	for i := range fnType.NumIn() {
		if !argSupported(fnType.In(i)) {
			panic(fmt.Errorf("unsupported argument type %v in %v", fnType.In(i), fnType))
		}
	}

	return &Command{
		Func: fnValue,
	}
}

func argSupported(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		return argSupported(t.Elem())
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
