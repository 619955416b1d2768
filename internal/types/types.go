package types

// DataType is the closed set of static types known to the analyzer.
type DataType int

const (
	Int DataType = iota
	Float
	Bool
	Sequence
	// Pattern is reserved; it has no runtime behavior.
	Pattern
	Void
	Unknown
)

var names = [...]string{
	Int:      "int",
	Float:    "float",
	Bool:     "bool",
	Sequence: "sequence",
	Pattern:  "pattern",
	Void:     "void",
	Unknown:  "unknown",
}

func (t DataType) String() string {
	if t < 0 || int(t) >= len(names) {
		return "unknown"
	}
	return names[t]
}

// FromName maps a type keyword to its DataType.
func FromName(name string) (DataType, bool) {
	for i, n := range names {
		if n == name && DataType(i) != Unknown {
			return DataType(i), true
		}
	}
	return Unknown, false
}

// IsNumeric returns true for Int and Float.
func (t DataType) IsNumeric() bool {
	return t == Int || t == Float
}

// CanCoerce reports whether a value of type from may be stored where to is
// expected. The only implicit conversion is int to float.
func CanCoerce(from, to DataType) bool {
	if from == to {
		return true
	}
	return from == Int && to == Float
}

// Assignable is CanCoerce with Unknown accepted on either side, so one
// defect does not cascade into more errors.
func Assignable(target, value DataType) bool {
	if target == Unknown || value == Unknown {
		return true
	}
	return CanCoerce(value, target)
}

// Arith returns the result type of + - * / over two numeric operands.
func Arith(l, r DataType) DataType {
	if l == Float || r == Float {
		return Float
	}
	return Int
}
