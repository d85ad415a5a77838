package blend

import (
	"bytes"
	"encoding/binary"
)

// Shared fixtures for package tests: a minimal legacy-format, 8-byte
// pointer, little-endian .blend buffer with a fixed SDNA schema of five
// struct types:
//
//	ID     { char name[66]; ID *next; ID *prev; ID *lib; }   tlen=90
//	World  { ID id; }                                        tlen=90
//	Camera { ID id; }                                        tlen=90
//	Scene  { ID id; World *world; ID *camera; }               tlen=106
//	Node   { Node *next; }                                    tlen=8
//
// Only Scene/World/Camera are ID-rooted (their first field is a plain ID
// named "id"); Node is not.

const (
	fxPtrSize = 8
	fxEndian  = LittleEndian
)

func fxByteOrder() binary.ByteOrder { return binary.LittleEndian }

func legacyHeaderBytes() []byte {
	return []byte("BLENDER-v280")
}

func cstr(b *bytes.Buffer, s string) {
	b.WriteString(s)
	b.WriteByte(0)
}

func align4(b *bytes.Buffer) {
	for b.Len()%4 != 0 {
		b.WriteByte(0)
	}
}

// buildFixtureDNA1Payload returns the payload of a DNA1 block describing
// the schema documented above.
func buildFixtureDNA1Payload() []byte {
	bo := fxByteOrder()
	names := []string{"name[66]", "*next", "*prev", "*lib", "id", "*world", "*camera"}
	types := []string{"char", "ID", "World", "Camera", "Scene", "Node"}
	tlen := map[string]uint16{"char": 1, "ID": 90, "World": 90, "Camera": 90, "Scene": 106, "Node": 8}

	nameIdx := func(n string) uint16 {
		for i, x := range names {
			if x == n {
				return uint16(i)
			}
		}
		panic("missing name " + n)
	}
	typeIdx := func(t string) uint16 {
		for i, x := range types {
			if x == t {
				return uint16(i)
			}
		}
		panic("missing type " + t)
	}

	var b bytes.Buffer
	b.WriteString("SDNA")

	b.WriteString("NAME")
	binary.Write(&b, bo, uint32(len(names)))
	for _, n := range names {
		cstr(&b, n)
	}
	align4(&b)

	b.WriteString("TYPE")
	binary.Write(&b, bo, uint32(len(types)))
	for _, t := range types {
		cstr(&b, t)
	}
	align4(&b)

	b.WriteString("TLEN")
	for _, t := range types {
		binary.Write(&b, bo, tlen[t])
	}
	align4(&b)

	type structDef struct {
		typeName string
		fields   [][2]string // [typeName, declName]
	}
	structs := []structDef{
		{"ID", [][2]string{{"char", "name[66]"}, {"ID", "*next"}, {"ID", "*prev"}, {"ID", "*lib"}}},
		{"World", [][2]string{{"ID", "id"}}},
		{"Camera", [][2]string{{"ID", "id"}}},
		{"Scene", [][2]string{{"ID", "id"}, {"World", "*world"}, {"ID", "*camera"}}},
		{"Node", [][2]string{{"Node", "*next"}}},
	}

	b.WriteString("STRC")
	binary.Write(&b, bo, uint32(len(structs)))
	for _, s := range structs {
		binary.Write(&b, bo, typeIdx(s.typeName))
		binary.Write(&b, bo, uint16(len(s.fields)))
		for _, f := range s.fields {
			binary.Write(&b, bo, typeIdx(f[0]))
			binary.Write(&b, bo, nameIdx(f[1]))
		}
	}

	return b.Bytes()
}

func fixtureSDNANr(typeName string) uint32 {
	switch typeName {
	case "ID":
		return 0
	case "World":
		return 1
	case "Camera":
		return 2
	case "Scene":
		return 3
	case "Node":
		return 4
	default:
		panic("unknown type " + typeName)
	}
}

// buildIDPayload encodes an ID sub-struct: a 66-byte name field
// (NUL-padded) and three pointer fields.
func buildIDPayload(name string, next, prev, lib uint64) []byte {
	bo := fxByteOrder()
	var b bytes.Buffer
	nameBytes := make([]byte, 66)
	copy(nameBytes, name)
	b.Write(nameBytes)
	binary.Write(&b, bo, next)
	binary.Write(&b, bo, prev)
	binary.Write(&b, bo, lib)
	return b.Bytes()
}

// buildWorldPayload / buildCameraPayload both just wrap an ID payload,
// since World and Camera have no fields beyond the embedded id.
func buildWorldPayload(name string) []byte { return buildIDPayload(name, 0, 0, 0) }
func buildCameraPayload(name string) []byte { return buildIDPayload(name, 0, 0, 0) }

func buildScenePayload(name string, world, camera uint64) []byte {
	bo := fxByteOrder()
	var b bytes.Buffer
	b.Write(buildIDPayload(name, 0, 0, 0))
	binary.Write(&b, bo, world)
	binary.Write(&b, bo, camera)
	return b.Bytes()
}

func buildNodePayload(next uint64) []byte {
	bo := fxByteOrder()
	var b bytes.Buffer
	binary.Write(&b, bo, next)
	return b.Bytes()
}

// buildLegacyBlock encodes one legacy-format block header plus payload.
func buildLegacyBlock(code string, sdnaNr uint32, old uint64, nr int32, payload []byte) []byte {
	bo := fxByteOrder()
	var b bytes.Buffer
	codeBytes := make([]byte, 4)
	copy(codeBytes, code)
	b.Write(codeBytes)
	binary.Write(&b, bo, int32(len(payload)))
	binary.Write(&b, bo, old)
	binary.Write(&b, bo, sdnaNr)
	binary.Write(&b, bo, nr)
	b.Write(payload)
	return b.Bytes()
}

func buildEndBlock() []byte {
	return buildLegacyBlock("ENDB", 0, 0, 0, nil)
}

// assembleFixtureFile concatenates the legacy header, every block, a
// DNA1 block, and a terminal ENDB block into one decompressed buffer.
func assembleFixtureFile(blocks ...[]byte) []byte {
	var b bytes.Buffer
	b.Write(legacyHeaderBytes())
	for _, blk := range blocks {
		b.Write(blk)
	}
	b.Write(buildLegacyBlock("DNA1", 0, 0, 1, buildFixtureDNA1Payload()))
	b.Write(buildEndBlock())
	return b.Bytes()
}

func openFixture(t interface{ Fatalf(string, ...any) }, blocks ...[]byte) *BlendFile {
	buf := assembleFixtureFile(blocks...)
	f, err := OpenBytes("fixture.blend", buf)
	if err != nil {
		t.Fatalf("open fixture: %v", err)
	}
	return f
}
