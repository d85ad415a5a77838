package blend

import "strings"

// BlockHead is the per-block header, normalized across the legacy and
// modern on-disk layouts (§4.4).
type BlockHead struct {
	Code   [4]byte
	SDNANr uint32
	Old    uint64
	Len    int64
	Nr     int64
}

// CodeString renders the 4-byte code with trailing NUL bytes trimmed,
// e.g. "SC\x00\x00" -> "SC".
func (h BlockHead) CodeString() string {
	return strings.TrimRight(string(h.Code[:]), "\x00")
}

// Block is one decoded block: its header, its raw payload, and the
// payload's absolute offset within the decompressed file buffer.
type Block struct {
	Head       BlockHead
	Payload    []byte
	FileOffset int64
}

// IsEnd reports whether this is the terminal ENDB block.
func (b Block) IsEnd() bool { return b.Head.CodeString() == "ENDB" }

// BlockIter streams blocks out of a decompressed .blend buffer,
// starting right after the file header.
type BlockIter struct {
	cur  *Cursor
	hdr  Header
	done bool
}

func newBlockIter(buf []byte, hdr Header) *BlockIter {
	c := NewCursor(buf)
	c.Seek(hdr.HeaderSize)
	return &BlockIter{cur: c, hdr: hdr}
}

// Next returns the next block, or ok=false once ENDB has been produced
// or the buffer is exhausted. A truncated stream (header claims more
// payload than remains) is reported as an error and ends iteration.
func (it *BlockIter) Next() (Block, bool, error) {
	if it.done {
		return Block{}, false, nil
	}
	if it.cur.Remaining() == 0 {
		it.done = true
		return Block{}, false, nil
	}

	var head BlockHead
	codeBytes, err := it.cur.ReadExact(4)
	if err != nil {
		it.done = true
		return Block{}, false, err
	}
	copy(head.Code[:], codeBytes)

	if it.hdr.Format == FormatModern {
		sdna, err := it.cur.ReadU32(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		old, err := it.cur.ReadU64(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		lenV, err := it.cur.ReadI64(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		nrV, err := it.cur.ReadI64(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		if lenV < 0 || nrV < 0 {
			it.done = true
			return Block{}, false, errf(KindBlock, "block.next", int64(it.cur.Pos()), "negative length or count (len=%d nr=%d)", lenV, nrV)
		}
		head.SDNANr, head.Old, head.Len, head.Nr = sdna, old, lenV, nrV
	} else {
		lenV, err := it.cur.ReadI32(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		old, err := it.cur.ReadPtr(it.hdr.PointerSize, it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		sdna, err := it.cur.ReadU32(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		nrV, err := it.cur.ReadI32(it.hdr.Endian)
		if err != nil {
			it.done = true
			return Block{}, false, err
		}
		if lenV < 0 || nrV < 0 {
			it.done = true
			return Block{}, false, errf(KindBlock, "block.next", int64(it.cur.Pos()), "negative length or count (len=%d nr=%d)", lenV, nrV)
		}
		head.SDNANr, head.Old, head.Len, head.Nr = sdna, old, int64(lenV), int64(nrV)
	}

	payloadOffset := it.cur.Pos()
	if int64(it.cur.Remaining()) < head.Len {
		it.done = true
		return Block{}, false, eod(KindBlock, "block.next", int64(payloadOffset), int(head.Len), it.cur.Remaining())
	}
	payload, err := it.cur.ReadExact(int(head.Len))
	if err != nil {
		it.done = true
		return Block{}, false, err
	}

	blk := Block{Head: head, Payload: payload, FileOffset: int64(payloadOffset)}
	if blk.IsEnd() {
		it.done = true
	}
	return blk, true, nil
}

// iterateBlocks drains a BlockIter into a slice, stopping after ENDB or
// on the first error.
func iterateBlocks(buf []byte, hdr Header) ([]Block, error) {
	it := newBlockIter(buf, hdr)
	var blocks []Block
	for {
		blk, ok, err := it.Next()
		if err != nil {
			return nil, err
		}
		if !ok {
			return blocks, nil
		}
		blocks = append(blocks, blk)
	}
}
