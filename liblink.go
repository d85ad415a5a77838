package blend

import "strings"

// LinkConfidence ranks the strength of evidence that an ID record
// originates from an external library (§4.16).
type LinkConfidence int

const (
	ConfidenceNone LinkConfidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

func (c LinkConfidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	default:
		return "none"
	}
}

// LinkRecord is the provenance classification of one ID record.
type LinkRecord struct {
	Canonical  uint64
	IDName     string
	TypeName   string
	Linked     bool
	Confidence LinkConfidence
}

// ScanIDLinkProvenance classifies every ID record by its lib /
// override_library / library_weak_reference pointer signals, falling
// back to a passive LibraryIdPresent signal when the record itself is a
// Library declaration.
func ScanIDLinkProvenance(dna *Dna, ids *IdIndex) []LinkRecord {
	out := make([]LinkRecord, 0, len(ids.Records))
	for _, rec := range ids.Records {
		lr := LinkRecord{Canonical: rec.Canonical, IDName: rec.IDName, TypeName: rec.TypeName}

		switch {
		case rec.Lib != 0:
			lr.Linked, lr.Confidence = true, ConfidenceHigh
		case rec.OverrideLibrary != 0 || rec.LibraryWeakReference != 0:
			lr.Linked, lr.Confidence = true, ConfidenceMedium
		case isLibraryDeclaration(rec):
			lr.Linked, lr.Confidence = true, ConfidenceLow
		default:
			lr.Linked, lr.Confidence = false, ConfidenceNone
		}
		out = append(out, lr)
	}
	return out
}

// isLibraryDeclaration reports whether rec is itself a Library
// data-block, identified by block code or SDNA type name.
func isLibraryDeclaration(rec IdRecord) bool {
	return rec.Code == "LI" || rec.TypeName == "Library"
}

// LibraryRecord is a decoded Library data-block: its path and whether
// that path is relative to the current file.
type LibraryRecord struct {
	Canonical   uint64
	LibraryPath string
	IsRelative  bool
}

// ScanLibraryRecords decodes the name field of every Library data-block
// found in the ID index, classifying relative paths by their "//"
// prefix.
func ScanLibraryRecords(dna *Dna, idx *PointerIndex, blocks []Block, ids *IdIndex) ([]LibraryRecord, error) {
	libStructIdx, ok := dna.FindStructIdxByTypeName("Library")
	if !ok {
		return nil, nil
	}
	opts := DecodeOptions{
		IncludePadding:           true,
		DecodeCharArraysAsString: true,
		MaxDepth:                 1,
		MaxArrayElems:            4096,
	}

	var out []LibraryRecord
	for _, rec := range ids.Records {
		if !isLibraryDeclaration(rec) {
			continue
		}
		blk, ok := findBlockByOldPtr(blocks, rec.OldPtr)
		if !ok {
			continue
		}
		sv, err := decodeStruct(dna, libStructIdx, blk.Payload, opts, 1)
		if err != nil {
			return nil, err
		}
		path := ""
		if v, ok := sv.Field("name"); ok && v.Kind == ValString {
			path = v.Str
		} else if v, ok := sv.Field("filepath"); ok && v.Kind == ValString {
			path = v.Str
		}
		out = append(out, LibraryRecord{
			Canonical:   rec.Canonical,
			LibraryPath: path,
			IsRelative:  strings.HasPrefix(path, "//"),
		})
	}
	return out, nil
}

func findBlockByOldPtr(blocks []Block, old uint64) (Block, bool) {
	for _, b := range blocks {
		if b.Head.Old == old {
			return b, true
		}
	}
	return Block{}, false
}
