package blend

import "os"

// BlendFile is a fully opened .blend file: its header, every block, the
// parsed SDNA schema, and the pointer/ID indices built over them. Once
// constructed it is read-only — every traversal operation is a pure
// function of its fields and may be called concurrently.
type BlendFile struct {
	Path        string
	Compression Compression
	Header      Header
	Blocks      []Block
	Dna         *Dna
	Pointers    *PointerIndex
	IDs         *IdIndex
}

// Open reads path, decompresses it if necessary, parses its header and
// block stream, locates and parses the DNA1 schema block, and builds the
// pointer and ID indices every higher-level traversal depends on.
func Open(path string) (*BlendFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, wrap(KindIO, "file.open", err)
	}
	return OpenBytes(path, raw)
}

// OpenBytes runs the full open pipeline over an in-memory buffer,
// useful for tests and for callers that already hold the file bytes.
func OpenBytes(path string, raw []byte) (*BlendFile, error) {
	buf, comp, err := decompress(raw)
	if err != nil {
		return nil, err
	}

	hdr, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}

	blocks, err := iterateBlocks(buf, hdr)
	if err != nil {
		return nil, err
	}

	dnaBlock, ok := findDNABlock(blocks)
	if !ok {
		return nil, errf(KindSDNA, "file.open", -1, "no DNA1 block present")
	}
	dna, err := parseDNA(dnaBlock.Payload, hdr.Endian)
	if err != nil {
		return nil, err
	}

	ptrIdx := buildPointerIndex(blocks, hdr)

	records, err := ScanIDBlocks(dna, ptrIdx, blocks)
	if err != nil {
		return nil, err
	}
	idIdx := BuildIDIndex(records)

	return &BlendFile{
		Path:        path,
		Compression: comp,
		Header:      hdr,
		Blocks:      blocks,
		Dna:         dna,
		Pointers:    ptrIdx,
		IDs:         idIdx,
	}, nil
}

func findDNABlock(blocks []Block) (Block, bool) {
	for _, b := range blocks {
		if b.Head.CodeString() == "DNA1" {
			return b, true
		}
	}
	return Block{}, false
}

// DefaultDecodeOptions returns decode options sized for this file's
// header.
func (f *BlendFile) DefaultDecodeOptions() DecodeOptions {
	return DefaultDecodeOptions(f.Header)
}

// DefaultRefScanOptions returns reference-scan options sized for this
// file's header.
func (f *BlendFile) DefaultRefScanOptions() RefScanOptions {
	return DefaultRefScanOptions(f.Header)
}

// BlockByCode returns every block whose code matches, trailing NUL
// bytes ignored.
func (f *BlendFile) BlockByCode(code string) []Block {
	var out []Block
	for _, b := range f.Blocks {
		if b.Head.CodeString() == code {
			out = append(out, b)
		}
	}
	return out
}
