package debugs

import (
	"encoding"
	"fmt"
	"reflect"
	"strings"

	"github.com/reusee/starlarkutil"
	"go.starlark.net/starlark"
)

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

// toStarlarkValue converts Go values for tap scripts. Structs become dicts
// keyed like their YAML form, and text marshalers become strings.
func toStarlarkValue(v any) starlark.Value {
	switch v := v.(type) {
	case nil:
		return starlark.None
	case starlark.Value:
		return v
	case []byte:
		return starlark.Bytes(v)
	}

	value := reflect.ValueOf(v)
	if value.Type().Implements(textMarshalerType) && value.Kind() != reflect.Pointer {
		text, err := v.(encoding.TextMarshaler).MarshalText()
		if err != nil {
			panic(err)
		}
		return starlark.String(text)
	}

	switch value.Kind() {

	case reflect.Bool:
		return starlark.Bool(value.Bool())

	case reflect.String:
		return starlark.String(value.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return starlark.MakeInt64(value.Int())

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return starlark.MakeUint64(value.Uint())

	case reflect.Float32, reflect.Float64:
		return starlark.Float(value.Float())

	case reflect.Slice, reflect.Array:
		elems := make([]starlark.Value, value.Len())
		for i := range elems {
			elems[i] = toStarlarkValue(value.Index(i).Interface())
		}
		return starlark.NewList(elems)

	case reflect.Map:
		d := starlark.NewDict(value.Len())
		iter := value.MapRange()
		for iter.Next() {
			if err := d.SetKey(
				toStarlarkValue(iter.Key().Interface()),
				toStarlarkValue(iter.Value().Interface()),
			); err != nil {
				panic(err)
			}
		}
		return d

	case reflect.Struct:
		typ := value.Type()
		d := starlark.NewDict(typ.NumField())
		for i := range typ.NumField() {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name, ok := fieldName(field)
			if !ok {
				continue
			}
			if err := d.SetKey(
				starlark.String(name),
				toStarlarkValue(value.Field(i).Interface()),
			); err != nil {
				panic(err)
			}
		}
		return d

	case reflect.Pointer, reflect.Interface:
		if value.IsNil() {
			return starlark.None
		}
		return toStarlarkValue(value.Elem().Interface())

	case reflect.Func:
		return starlarkutil.MakeFunc("", v)

	}

	panic(fmt.Errorf("unsupported type for starlark: %T", v))
}

// fieldName follows the yaml tag, so scripts see the keys the scopes
// command prints.
func fieldName(field reflect.StructField) (string, bool) {
	tag := field.Tag.Get("yaml")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return field.Name, true
}
