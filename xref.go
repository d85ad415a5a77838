package blend

import "sort"

// XrefOptions bounds an inbound-reference search (§4.14).
type XrefOptions struct {
	MaxResults        int
	IncludeUnresolved bool
	RefOpts           RefScanOptions
}

// DefaultXrefOptions returns the §5 resource ceilings.
func DefaultXrefOptions(refOpts RefScanOptions) XrefOptions {
	return XrefOptions{MaxResults: 4096, RefOpts: refOpts}
}

// XrefRecord is one inbound edge discovered by scanning an ID record's
// owned fields for a reference to the target.
type XrefRecord struct {
	FromCanonical uint64
	FromCode      string
	FromTypeName  string
	FromIDName    string
	Field         string
	Resolved      bool
}

// FindInboundRefsToPtr canonicalizes target and, treating every ID
// record as a strong owner, scans its fields for edges whose resolved
// target matches. When opts.IncludeUnresolved is set, edges whose raw
// stored pointer equals the raw target (but which did not themselves
// resolve) are also reported. Results are bounded by max_results and
// sorted by (from_canonical, field).
func FindInboundRefsToPtr(dna *Dna, idx *PointerIndex, ids *IdIndex, target uint64, opts XrefOptions) ([]XrefRecord, error) {
	targetCanon, ok := CanonicalPtr(idx, dna, target)
	if !ok {
		return nil, errf(KindPointer, "xref.find_inbound", -1, "target pointer 0x%x is unresolved", target)
	}

	var out []XrefRecord
	for _, owner := range ids.Records {
		refs, err := ScanRefsFromPtr(dna, idx, ids, owner.Canonical, opts.RefOpts)
		if err != nil {
			return nil, err
		}
		for _, r := range refs {
			matched := r.Resolved != nil && r.Resolved.Canonical == targetCanon
			unresolvedMatch := r.Resolved == nil && opts.IncludeUnresolved && r.Ptr == target
			if !matched && !unresolvedMatch {
				continue
			}
			if len(out) >= opts.MaxResults {
				return finalizeXrefs(out), nil
			}
			out = append(out, XrefRecord{
				FromCanonical: owner.Canonical,
				FromCode:      owner.Code,
				FromTypeName:  owner.TypeName,
				FromIDName:    owner.IDName,
				Field:         r.Field,
				Resolved:      matched,
			})
		}
	}
	return finalizeXrefs(out), nil
}

func finalizeXrefs(out []XrefRecord) []XrefRecord {
	sort.Slice(out, func(i, j int) bool {
		if out[i].FromCanonical != out[j].FromCanonical {
			return out[i].FromCanonical < out[j].FromCanonical
		}
		return out[i].Field < out[j].Field
	})
	return out
}
