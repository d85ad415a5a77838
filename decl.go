package blend

import (
	"strconv"
	"strings"
)

// FieldDecl is the normalized shape of a raw SDNA declarator string
// (§4.6), e.g. "*next", "(*func)()", "co[3]", "mat[4][4]", "v[0]".
type FieldDecl struct {
	Ident            string
	PtrDepth         int
	InlineArrayCount int
	IsFuncPtr        bool
	IsParenPtr       bool
}

// parseFieldDecl normalizes a raw declarator into a FieldDecl. It never
// fails: unparseable array dimensions default to 1, per §4.6.
func parseFieldDecl(raw string) FieldDecl {
	isFuncPtr := strings.Contains(raw, ")(")

	if strings.HasPrefix(raw, "(") {
		end := strings.IndexByte(raw, ')')
		inner := raw
		if end >= 0 {
			inner = raw[1:end]
		} else {
			inner = strings.TrimPrefix(raw, "(")
		}
		depth := 0
		i := 0
		for i < len(inner) && inner[i] == '*' {
			depth++
			i++
		}
		ident := extractIdent(inner[i:])
		if isFuncPtr {
			return FieldDecl{Ident: ident, PtrDepth: 1, InlineArrayCount: 1, IsFuncPtr: true, IsParenPtr: true}
		}
		if depth == 0 {
			depth = 1
		}
		return FieldDecl{Ident: ident, PtrDepth: depth, InlineArrayCount: 1, IsParenPtr: true}
	}

	depth := 0
	i := 0
	for i < len(raw) && raw[i] == '*' {
		depth++
		i++
	}
	rest := raw[i:]
	ident := extractIdent(rest)
	count := parseArrayDims(rest[len(ident):])
	return FieldDecl{Ident: ident, PtrDepth: depth, InlineArrayCount: count}
}

func extractIdent(s string) string {
	i := 0
	for i < len(s) && isIdentByte(s[i]) {
		i++
	}
	return s[:i]
}

func isIdentByte(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// parseArrayDims multiplies every "[n]" dimension found in s. A field
// with no bracket suffix has an implicit count of 1.
func parseArrayDims(s string) int {
	count := 1
	found := false
	i := 0
	for i < len(s) {
		if s[i] != '[' {
			i++
			continue
		}
		j := strings.IndexByte(s[i:], ']')
		if j < 0 {
			break
		}
		dim := s[i+1 : i+j]
		i = i + j + 1
		n, err := strconv.Atoi(dim)
		if err != nil {
			n = 1
		}
		found = true
		count *= n
	}
	if !found {
		return 1
	}
	return count
}
