package blend

// ValueKind discriminates the decoded value variants (§3 Value).
type ValueKind int

const (
	ValNull ValueKind = iota
	ValBool
	ValI64
	ValU64
	ValF32
	ValF64
	ValBytes
	ValString
	ValPtr
	ValArray
	ValStruct
)

func (k ValueKind) String() string {
	switch k {
	case ValNull:
		return "null"
	case ValBool:
		return "bool"
	case ValI64:
		return "i64"
	case ValU64:
		return "u64"
	case ValF32:
		return "f32"
	case ValF64:
		return "f64"
	case ValBytes:
		return "bytes"
	case ValString:
		return "string"
	case ValPtr:
		return "ptr"
	case ValArray:
		return "array"
	case ValStruct:
		return "struct"
	default:
		return "unknown"
	}
}

// Value is the decoded-field sum type. Exactly one payload field is
// meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Bool   bool
	I64    int64
	U64    uint64
	F32    float32
	F64    float64
	Bytes  []byte
	Str    string
	PtrVal uint64
	Array  []Value
	Struct StructValue
}

// StructField is one named, decoded field of a StructValue.
type StructField struct {
	Name  string
	Value Value
}

// StructValue is a fully decoded struct instance: its SDNA type name
// and its fields in declaration order.
type StructValue struct {
	TypeName string
	Fields   []StructField
}

func nullValue() Value              { return Value{Kind: ValNull} }
func boolValue(b bool) Value        { return Value{Kind: ValBool, Bool: b} }
func i64Value(v int64) Value        { return Value{Kind: ValI64, I64: v} }
func u64Value(v uint64) Value       { return Value{Kind: ValU64, U64: v} }
func f32Value(v float32) Value      { return Value{Kind: ValF32, F32: v} }
func f64Value(v float64) Value      { return Value{Kind: ValF64, F64: v} }
func bytesValue(b []byte) Value     { return Value{Kind: ValBytes, Bytes: b} }
func stringValue(s string) Value    { return Value{Kind: ValString, Str: s} }
func ptrValue(p uint64) Value       { return Value{Kind: ValPtr, PtrVal: p} }
func arrayValue(vs []Value) Value   { return Value{Kind: ValArray, Array: vs} }
func structValue(s StructValue) Value {
	return Value{Kind: ValStruct, Struct: s}
}

// Field looks up a named field within a StructValue directly, without
// wrapping it in a Value first.
func (s StructValue) Field(name string) (Value, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Field returns the named field of a struct-kind Value.
func (v Value) Field(name string) (Value, bool) {
	if v.Kind != ValStruct {
		return Value{}, false
	}
	for _, f := range v.Struct.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return Value{}, false
}

// Index returns element i of an array-kind Value.
func (v Value) Index(i int) (Value, bool) {
	if v.Kind != ValArray || i < 0 || i >= len(v.Array) {
		return Value{}, false
	}
	return v.Array[i], true
}
