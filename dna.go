package blend

// DnaField is one field of an SDNA struct: an index into Dna.Types and
// an index into Dna.Names (the raw C declarator).
type DnaField struct {
	TypeIdx int
	NameIdx int
}

// DnaStruct is one SDNA struct definition: the type it defines and its
// fields in declaration order.
type DnaStruct struct {
	TypeIdx int
	Fields  []DnaField
}

// Dna holds the four SDNA tables parsed from a DNA1 block (names, types,
// tlen, structs), plus the inverse struct_for_type lookup built from
// them (§3).
type Dna struct {
	Names         []string
	Types         []string
	Tlen          []int
	Structs       []DnaStruct
	StructForType []int // -1 when the type has no struct definition

	endian Endianness
}

// StructIdxForType returns the struct index defining typeIdx, if any.
func (d *Dna) StructIdxForType(typeIdx int) (int, bool) {
	if typeIdx < 0 || typeIdx >= len(d.StructForType) {
		return 0, false
	}
	idx := d.StructForType[typeIdx]
	if idx < 0 {
		return 0, false
	}
	return idx, true
}

// FindTypeIdx returns the index of a type by name, if present.
func (d *Dna) FindTypeIdx(name string) (int, bool) {
	for i, t := range d.Types {
		if t == name {
			return i, true
		}
	}
	return 0, false
}

// FindStructIdxByTypeName resolves a struct definition by its type's
// name.
func (d *Dna) FindStructIdxByTypeName(name string) (int, bool) {
	ti, ok := d.FindTypeIdx(name)
	if !ok {
		return 0, false
	}
	return d.StructIdxForType(ti)
}

// StructByName looks up a struct definition by its type name.
func (d *Dna) StructByName(name string) (*DnaStruct, bool) {
	si, ok := d.FindStructIdxByTypeName(name)
	if !ok {
		return nil, false
	}
	return &d.Structs[si], true
}

// TypeSize returns tlen[typeIdx], the byte size of a type.
func (d *Dna) TypeSize(typeIdx int) (int, error) {
	if typeIdx < 0 || typeIdx >= len(d.Tlen) {
		return 0, errf(KindSDNA, "dna.type_size", -1, "type index %d out of range", typeIdx)
	}
	return d.Tlen[typeIdx], nil
}

// parseDNA decodes the payload of a DNA1 block into a Dna. Section
// order is fixed: SDNA, NAME, TYPE, TLEN, STRC, each 4-byte aligned
// relative to the start of the payload.
func parseDNA(payload []byte, endian Endianness) (*Dna, error) {
	c := NewCursor(payload)

	if err := expectTag(c, "SDNA"); err != nil {
		return nil, err
	}

	if err := expectTag(c, "NAME"); err != nil {
		return nil, err
	}
	nameCount, err := c.ReadU32(endian)
	if err != nil {
		return nil, wrap(KindSDNA, "dna.names.count", err)
	}
	names := make([]string, 0, nameCount)
	for i := uint32(0); i < nameCount; i++ {
		s, err := c.ReadCStringBytes()
		if err != nil {
			return nil, wrap(KindSDNA, "dna.names.entry", err)
		}
		names = append(names, string(s))
	}
	if err := c.Align4(); err != nil {
		return nil, wrap(KindSDNA, "dna.names.align", err)
	}

	if err := expectTag(c, "TYPE"); err != nil {
		return nil, err
	}
	typeCount, err := c.ReadU32(endian)
	if err != nil {
		return nil, wrap(KindSDNA, "dna.types.count", err)
	}
	types := make([]string, 0, typeCount)
	for i := uint32(0); i < typeCount; i++ {
		s, err := c.ReadCStringBytes()
		if err != nil {
			return nil, wrap(KindSDNA, "dna.types.entry", err)
		}
		types = append(types, string(s))
	}
	if err := c.Align4(); err != nil {
		return nil, wrap(KindSDNA, "dna.types.align", err)
	}

	if err := expectTag(c, "TLEN"); err != nil {
		return nil, err
	}
	tlen := make([]int, 0, typeCount)
	for i := uint32(0); i < typeCount; i++ {
		v, err := c.ReadU16(endian)
		if err != nil {
			return nil, wrap(KindSDNA, "dna.tlen.entry", err)
		}
		tlen = append(tlen, int(v))
	}
	if err := c.Align4(); err != nil {
		return nil, wrap(KindSDNA, "dna.tlen.align", err)
	}

	if err := expectTag(c, "STRC"); err != nil {
		return nil, err
	}
	structCount, err := c.ReadU32(endian)
	if err != nil {
		return nil, wrap(KindSDNA, "dna.structs.count", err)
	}
	structs := make([]DnaStruct, 0, structCount)
	for i := uint32(0); i < structCount; i++ {
		typeIdx, err := c.ReadU16(endian)
		if err != nil {
			return nil, wrap(KindSDNA, "dna.structs.type_idx", err)
		}
		fieldCount, err := c.ReadU16(endian)
		if err != nil {
			return nil, wrap(KindSDNA, "dna.structs.field_count", err)
		}
		fields := make([]DnaField, 0, fieldCount)
		for f := uint16(0); f < fieldCount; f++ {
			ft, err := c.ReadU16(endian)
			if err != nil {
				return nil, wrap(KindSDNA, "dna.structs.field.type_idx", err)
			}
			fn, err := c.ReadU16(endian)
			if err != nil {
				return nil, wrap(KindSDNA, "dna.structs.field.name_idx", err)
			}
			fields = append(fields, DnaField{TypeIdx: int(ft), NameIdx: int(fn)})
		}
		structs = append(structs, DnaStruct{TypeIdx: int(typeIdx), Fields: fields})
	}

	d := &Dna{Names: names, Types: types, Tlen: tlen, Structs: structs, endian: endian}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *Dna) validate() error {
	if len(d.Tlen) != len(d.Types) {
		return errf(KindSDNA, "dna.validate", -1, "tlen length %d != types length %d", len(d.Tlen), len(d.Types))
	}
	structForType := make([]int, len(d.Types))
	for i := range structForType {
		structForType[i] = -1
	}
	for si, s := range d.Structs {
		if s.TypeIdx < 0 || s.TypeIdx >= len(d.Types) {
			return errf(KindSDNA, "dna.validate", -1, "struct %d: type index %d out of range", si, s.TypeIdx)
		}
		if structForType[s.TypeIdx] != -1 {
			return errf(KindSDNA, "dna.validate", -1, "duplicate struct definition for type %d (%s)", s.TypeIdx, d.Types[s.TypeIdx])
		}
		structForType[s.TypeIdx] = si
		for fi, f := range s.Fields {
			if f.TypeIdx < 0 || f.TypeIdx >= len(d.Types) {
				return errf(KindSDNA, "dna.validate", -1, "struct %d field %d: type index %d out of range", si, fi, f.TypeIdx)
			}
			if f.NameIdx < 0 || f.NameIdx >= len(d.Names) {
				return errf(KindSDNA, "dna.validate", -1, "struct %d field %d: name index %d out of range", si, fi, f.NameIdx)
			}
		}
	}
	d.StructForType = structForType
	return nil
}

func expectTag(c *Cursor, tag string) error {
	b, err := c.ReadExact(4)
	if err != nil {
		return wrap(KindSDNA, "dna.tag", err)
	}
	if string(b) != tag {
		return errf(KindSDNA, "dna.tag", int64(c.Pos()-4), "expected section tag %q, got %q", tag, b)
	}
	return nil
}
