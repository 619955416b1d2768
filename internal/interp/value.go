package interp

import (
	"math"
	"strconv"
	"strings"
)

// ValueTag enumerates the runtime kinds a Value may hold.
type ValueTag int

const (
	VTVoid ValueTag = iota // no payload
	VTInt                  // int64
	VTFloat                // float64
	VTBool                 // bool
	VTStr                  // string
	VTSeq                  // []Value
)

// Value is the runtime carrier. Data holds the Go value for Tag and is nil
// for VTVoid. Sequences are never shared between bindings; see Clone.
type Value struct {
	Tag  ValueTag
	Data any
}

var Void = Value{Tag: VTVoid}

func Int(n int64) Value     { return Value{Tag: VTInt, Data: n} }
func Float(f float64) Value { return Value{Tag: VTFloat, Data: f} }
func Bool(b bool) Value     { return Value{Tag: VTBool, Data: b} }
func Str(s string) Value    { return Value{Tag: VTStr, Data: s} }
func Seq(xs []Value) Value  { return Value{Tag: VTSeq, Data: xs} }

func (v Value) seq() []Value { return v.Data.([]Value) }

func (v Value) IsNumeric() bool { return v.Tag == VTInt || v.Tag == VTFloat }

// Clone returns a copy that shares no sequence storage with v.
func (v Value) Clone() Value {
	if v.Tag != VTSeq {
		return v
	}
	src := v.seq()
	out := make([]Value, len(src))
	for i, x := range src {
		out[i] = x.Clone()
	}
	return Seq(out)
}

// String is the canonical rendering used by print and by == and !=.
func (v Value) String() string {
	switch v.Tag {
	case VTInt:
		return strconv.FormatInt(v.Data.(int64), 10)
	case VTFloat:
		return strconv.FormatFloat(v.Data.(float64), 'g', 6, 64)
	case VTBool:
		return strconv.FormatBool(v.Data.(bool))
	case VTStr:
		return v.Data.(string)
	case VTSeq:
		parts := make([]string, len(v.seq()))
		for i, x := range v.seq() {
			parts[i] = x.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return "void"
}

// Truthy: void is false, numbers are true when nonzero, strings and
// sequences when non-empty.
func (v Value) Truthy() bool {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64) != 0
	case VTFloat:
		return math.Abs(v.Data.(float64)) > 1e-9
	case VTBool:
		return v.Data.(bool)
	case VTStr:
		return v.Data.(string) != ""
	case VTSeq:
		return len(v.seq()) > 0
	}
	return false
}

func (v Value) asFloat() (float64, bool) {
	switch v.Tag {
	case VTInt:
		return float64(v.Data.(int64)), true
	case VTFloat:
		return v.Data.(float64), true
	case VTBool:
		if v.Data.(bool) {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func (v Value) asInt() (int64, bool) {
	switch v.Tag {
	case VTInt:
		return v.Data.(int64), true
	case VTFloat:
		return int64(v.Data.(float64)), true
	case VTBool:
		if v.Data.(bool) {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}
