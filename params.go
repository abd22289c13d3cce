package awg

import (
	"fmt"
	"reflect"

	"github.com/pkg/errors"
)

// Initer is implemented by waveforms whose output depends on the sample rate.
type Initer interface {
	InitWave(Params)
}

type Params struct {
	SampleRate float64
}

func (p *Params) InitWave(q Params) { *p = q }

// Init walks x and calls InitWave on every Initer it can reach through
// pointers, struct fields, slices, arrays and interfaces. An Initer held by
// value cannot be updated and is reported as an error naming its path.
func Init(x interface{}, p Params) error {
	if err := (initWalk{p}).walk(reflect.ValueOf(x), "assignment"); err != nil {
		return &ConfigError{Field: "waveform", Reason: err.Error()}
	}
	return nil
}

var initerType = reflect.TypeOf(new(Initer)).Elem()

type initWalk struct{ p Params }

func (w initWalk) walk(v reflect.Value, path string) error {
	switch v.Kind() {
	case reflect.Invalid:
		return nil
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil
		}
	}
	if !v.CanInterface() {
		return nil
	}
	if in, ok := asIniter(v); ok {
		in.InitWave(w.p)
		return nil
	}
	if k := v.Kind(); k != reflect.Ptr && k != reflect.Interface && reflect.PtrTo(v.Type()).Implements(initerType) {
		return errors.Errorf("%s: %s is held by value, only *%s can be initialized", path, v.Type(), v.Type())
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		return w.walk(v.Elem(), path)
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if err := w.walk(v.Field(i), path+"."+t.Field(i).Name); err != nil {
				return err
			}
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := w.walk(v.Index(i), fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// asIniter takes the address of v when it can, so that pointer-receiver
// Initers stored in fields and slice elements are found.
func asIniter(v reflect.Value) (Initer, bool) {
	if k := v.Kind(); v.CanAddr() && k != reflect.Ptr && k != reflect.Interface {
		v = v.Addr()
	}
	in, ok := v.Interface().(Initer)
	return in, ok
}
