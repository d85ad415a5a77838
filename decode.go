package blend

import (
	"bytes"
	"math"
	"strings"
)

// DecodeOptions bounds and configures struct decoding (§4.7, §5).
type DecodeOptions struct {
	MaxDepth                 int
	MaxArrayElems            int
	IncludePadding           bool
	DecodeCharArraysAsString bool
	StrictLayout             bool
	PointerSize              int
	Endian                   Endianness
}

// DefaultDecodeOptions returns the resource ceilings from §5, sized for
// the pointer width and endianness of an opened file's header.
func DefaultDecodeOptions(hdr Header) DecodeOptions {
	return DecodeOptions{
		MaxDepth:                 16,
		MaxArrayElems:            4096,
		DecodeCharArraysAsString: true,
		PointerSize:              hdr.PointerSize,
		Endian:                   hdr.Endian,
	}
}

// DecodeBlockInstances decodes every struct instance packed into a
// block's payload. A block holding one instance decodes to a Struct
// value; more than one decodes to an Array of Struct values.
func DecodeBlockInstances(dna *Dna, block Block, opts DecodeOptions) (Value, error) {
	sdnaNr := int(block.Head.SDNANr)
	if sdnaNr < 0 || sdnaNr >= len(dna.Structs) {
		return Value{}, errf(KindDecode, "decode.block_instances", block.FileOffset, "missing SDNA entry for sdna_nr %d", sdnaNr)
	}
	s := dna.Structs[sdnaNr]
	elemSize, err := dna.TypeSize(s.TypeIdx)
	if err != nil {
		return Value{}, wrap(KindDecode, "decode.block_instances", err)
	}
	nr := block.Head.Nr
	if nr > int64(opts.MaxArrayElems) {
		return Value{}, errf(KindDecode, "decode.block_instances", block.FileOffset, "instance count %d exceeds max_array_elems %d", nr, opts.MaxArrayElems)
	}
	need := elemSize * int(nr)
	if need > len(block.Payload) {
		return Value{}, errf(KindDecode, "decode.block_instances", block.FileOffset, "payload too small: need %d bytes for %d instances of size %d, have %d", need, nr, elemSize, len(block.Payload))
	}

	elems := make([]Value, 0, nr)
	for i := int64(0); i < nr; i++ {
		raw := block.Payload[int(i)*elemSize : (int(i)+1)*elemSize]
		sv, err := decodeStruct(dna, sdnaNr, raw, opts, 1)
		if err != nil {
			return Value{}, err
		}
		elems = append(elems, structValue(sv))
	}
	if len(elems) == 1 {
		return elems[0], nil
	}
	return arrayValue(elems), nil
}

// DecodeStructInstance decodes a single struct instance from exactly
// tlen[struct.TypeIdx] bytes.
func DecodeStructInstance(dna *Dna, sdnaNr int, raw []byte, opts DecodeOptions) (StructValue, error) {
	return decodeStruct(dna, sdnaNr, raw, opts, 1)
}

func decodeStruct(dna *Dna, sdnaNr int, payload []byte, opts DecodeOptions, depth int) (StructValue, error) {
	if depth > opts.MaxDepth {
		return StructValue{}, errf(KindDecode, "decode.struct", -1, "max_depth %d exceeded", opts.MaxDepth)
	}
	if sdnaNr < 0 || sdnaNr >= len(dna.Structs) {
		return StructValue{}, errf(KindDecode, "decode.struct", -1, "missing SDNA entry for sdna_nr %d", sdnaNr)
	}
	s := dna.Structs[sdnaNr]
	typeName := dna.Types[s.TypeIdx]

	c := NewCursor(payload)
	var fields []StructField
	for _, f := range s.Fields {
		if f.NameIdx < 0 || f.NameIdx >= len(dna.Names) {
			return StructValue{}, errf(KindDecode, "decode.struct", -1, "name index %d out of range in %s", f.NameIdx, typeName)
		}
		rawName := dna.Names[f.NameIdx]
		decl := parseFieldDecl(rawName)
		count := decl.InlineArrayCount
		if count > opts.MaxArrayElems {
			return StructValue{}, errf(KindDecode, "decode.struct", int64(c.Pos()), "field %s.%s array count %d exceeds max_array_elems %d", typeName, decl.Ident, count, opts.MaxArrayElems)
		}

		if count == 0 {
			fields = append(fields, StructField{Name: decl.Ident, Value: arrayValue(nil)})
			continue
		}

		if isPaddingField(decl, dna, f) && !opts.IncludePadding {
			elemSize, err := dna.TypeSize(f.TypeIdx)
			if err != nil {
				return StructValue{}, wrap(KindDecode, "decode.struct", err)
			}
			if _, err := c.ReadExact(elemSize * count); err != nil {
				return StructValue{}, wrap(KindDecode, "decode.struct", err)
			}
			continue
		}

		val, err := decodeField(dna, f, decl, c, opts, depth)
		if err != nil {
			return StructValue{}, err
		}
		fields = append(fields, StructField{Name: decl.Ident, Value: val})
	}

	if c.Remaining() > 0 && opts.StrictLayout {
		return StructValue{}, errf(KindDecode, "decode.struct", int64(c.Pos()), "layout mismatch in %s: %d bytes left over", typeName, c.Remaining())
	}

	return StructValue{TypeName: typeName, Fields: fields}, nil
}

// decodeField decodes the count inline elements of one field,
// dispatching in declaration priority: pointer, nested struct, char
// array (optionally as string), primitive.
func decodeField(dna *Dna, f DnaField, decl FieldDecl, c *Cursor, opts DecodeOptions, depth int) (Value, error) {
	count := decl.InlineArrayCount
	isPtr := decl.PtrDepth > 0 || decl.IsFuncPtr

	if isPtr {
		if count == 1 {
			p, err := c.ReadPtr(opts.PointerSize, opts.Endian)
			if err != nil {
				return Value{}, wrap(KindDecode, "decode.field.ptr", err)
			}
			return ptrValue(p), nil
		}
		elems := make([]Value, count)
		for i := 0; i < count; i++ {
			p, err := c.ReadPtr(opts.PointerSize, opts.Endian)
			if err != nil {
				return Value{}, wrap(KindDecode, "decode.field.ptr", err)
			}
			elems[i] = ptrValue(p)
		}
		return arrayValue(elems), nil
	}

	if nestedIdx, ok := dna.StructIdxForType(f.TypeIdx); ok {
		elemSize, err := dna.TypeSize(f.TypeIdx)
		if err != nil {
			return Value{}, wrap(KindDecode, "decode.field.struct", err)
		}
		if count == 1 {
			raw, err := c.ReadExact(elemSize)
			if err != nil {
				return Value{}, wrap(KindDecode, "decode.field.struct", err)
			}
			sv, err := decodeStruct(dna, nestedIdx, raw, opts, depth+1)
			if err != nil {
				return Value{}, err
			}
			return structValue(sv), nil
		}
		elems := make([]Value, count)
		for i := 0; i < count; i++ {
			raw, err := c.ReadExact(elemSize)
			if err != nil {
				return Value{}, wrap(KindDecode, "decode.field.struct", err)
			}
			sv, err := decodeStruct(dna, nestedIdx, raw, opts, depth+1)
			if err != nil {
				return Value{}, err
			}
			elems[i] = structValue(sv)
		}
		return arrayValue(elems), nil
	}

	typeName := dna.Types[f.TypeIdx]
	if opts.DecodeCharArraysAsString && typeName == "char" && count > 1 {
		raw, err := c.ReadExact(count)
		if err != nil {
			return Value{}, wrap(KindDecode, "decode.field.char_array", err)
		}
		n := bytes.IndexByte(raw, 0)
		if n < 0 {
			return stringValue(string(raw)), nil
		}
		return stringValue(string(raw[:n])), nil
	}

	elemSize, err := dna.TypeSize(f.TypeIdx)
	if err != nil {
		return Value{}, wrap(KindDecode, "decode.field.primitive", err)
	}
	if count == 1 {
		raw, err := c.ReadExact(elemSize)
		if err != nil {
			return Value{}, wrap(KindDecode, "decode.field.primitive", err)
		}
		return decodePrimitive(typeName, elemSize, raw, opts.Endian), nil
	}
	elems := make([]Value, count)
	for i := 0; i < count; i++ {
		raw, err := c.ReadExact(elemSize)
		if err != nil {
			return Value{}, wrap(KindDecode, "decode.field.primitive", err)
		}
		elems[i] = decodePrimitive(typeName, elemSize, raw, opts.Endian)
	}
	return arrayValue(elems), nil
}

func isPaddingField(decl FieldDecl, dna *Dna, f DnaField) bool {
	if decl.InlineArrayCount <= 0 {
		return false
	}
	if !strings.HasPrefix(decl.Ident, "_pad") && !strings.HasPrefix(decl.Ident, "pad") {
		return false
	}
	if f.TypeIdx < 0 || f.TypeIdx >= len(dna.Types) {
		return false
	}
	switch dna.Types[f.TypeIdx] {
	case "char", "uchar", "uint8_t":
		return true
	default:
		return false
	}
}

func decodePrimitive(typeName string, size int, raw []byte, endian Endianness) Value {
	switch {
	case typeName == "float" && size == 4:
		return f32Value(math.Float32frombits(endian.order().Uint32(raw)))
	case typeName == "double" && size == 8:
		return f64Value(math.Float64frombits(endian.order().Uint64(raw)))
	case typeName == "bool" && size == 1:
		return boolValue(raw[0] != 0)
	}
	switch size {
	case 1, 2, 4, 8:
		u := readUintN(raw, size, endian)
		if isUnsignedTypeName(typeName) {
			return u64Value(u)
		}
		return i64Value(signExtend(u, size))
	default:
		return bytesValue(append([]byte(nil), raw...))
	}
}

func readUintN(raw []byte, size int, endian Endianness) uint64 {
	switch size {
	case 1:
		return uint64(raw[0])
	case 2:
		return uint64(endian.order().Uint16(raw))
	case 4:
		return uint64(endian.order().Uint32(raw))
	case 8:
		return endian.order().Uint64(raw)
	default:
		return 0
	}
}

func signExtend(u uint64, size int) int64 {
	switch size {
	case 1:
		return int64(int8(u))
	case 2:
		return int64(int16(u))
	case 4:
		return int64(int32(u))
	default:
		return int64(u)
	}
}

func isUnsignedTypeName(name string) bool {
	return strings.HasPrefix(name, "u") || strings.Contains(name, "uint") || strings.Contains(name, "uchar")
}
