package envelope

import (
	"reflect"
	"strings"
	"unsafe"
)

// payloadFields flattens an object-like payload into a key/value map. The
// second result is false when the payload is not an object (slice, scalar,
// ...) and should be attached as-is.
func payloadFields(payload any) (map[string]any, bool) {
	v := reflect.ValueOf(payload)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return nil, true
		}
		v = v.Elem()
	}

	switch v.Kind() {
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := make(map[string]any, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = iter.Value().Interface()
		}
		return out, true
	case reflect.Struct:
		if !v.CanAddr() {
			cp := reflect.New(v.Type()).Elem()
			cp.Set(v)
			v = cp
		}
		out := make(map[string]any, v.NumField())
		structFields(v, out)
		return out, true
	default:
		return nil, false
	}
}

// structFields copies the top-level fields of v into out, keyed the way
// encoding/json keys them: json tag name or Go name, "-" skipped, omitempty
// honoured, untagged embedded structs promoted. Field values are stored
// unchanged. Fields of the outer struct win over promoted ones.
func structFields(v reflect.Value, out map[string]any) {
	var embedded []reflect.Value

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		tag := f.Tag.Get("json")
		if tag == "-" {
			continue
		}
		name, opts, _ := strings.Cut(tag, ",")

		fv := v.Field(i)
		if f.Anonymous && name == "" {
			ft := f.Type
			if ft.Kind() == reflect.Pointer {
				ft = ft.Elem()
			}
			if ft.Kind() == reflect.Struct {
				if fv.Kind() == reflect.Pointer {
					if fv.IsNil() {
						continue
					}
					fv = fv.Elem()
				}
				embedded = append(embedded, readable(fv))
				continue
			}
		}
		if !f.IsExported() {
			continue
		}
		if name == "" {
			name = f.Name
		}
		if hasOption(opts, "omitempty") && isEmptyValue(fv) {
			continue
		}
		out[name] = fv.Interface()
	}

	for _, ev := range embedded {
		promoted := make(map[string]any, ev.NumField())
		structFields(ev, promoted)
		for k, val := range promoted {
			if _, ok := out[k]; !ok {
				out[k] = val
			}
		}
	}
}

// readable returns v without the read-only flag reflect sets on values
// reached through unexported embedded fields, so their exported fields can be
// read like encoding/json reads them. v must be addressable.
func readable(v reflect.Value) reflect.Value {
	if v.CanInterface() || !v.CanAddr() {
		return v
	}
	return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem()
}

func hasOption(opts, want string) bool {
	for opts != "" {
		var opt string
		opt, opts, _ = strings.Cut(opts, ",")
		if opt == want {
			return true
		}
	}
	return false
}

func isEmptyValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Array, reflect.Map, reflect.Slice, reflect.String:
		return v.Len() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Interface, reflect.Pointer:
		return v.IsNil()
	}
	return false
}
