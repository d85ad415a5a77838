package blend

import "strconv"

// PathStepKind discriminates the two kinds of field-path steps (§4.9).
type PathStepKind int

const (
	StepField PathStepKind = iota
	StepIndex
)

// PathStep is one step of a parsed field path: either a named field or
// a bracketed index.
type PathStep struct {
	Kind  PathStepKind
	Name  string
	Index int
}

// parsePath parses the grammar:
//
//	IDENT ( '[' DIGITS ']' )* ( '.' IDENT ( '[' DIGITS ']' )* )*
//
// e.g. "scene.objects[0].data" -> Field(scene), Field(objects),
// Index(0), Field(data).
func parsePath(s string) ([]PathStep, error) {
	if s == "" {
		return nil, errf(KindPath, "path.parse", -1, "empty field path")
	}
	var steps []PathStep
	i, n := 0, len(s)
	for {
		start := i
		for i < n && isIdentByte(s[i]) {
			i++
		}
		if i == start {
			return nil, errf(KindPath, "path.parse", int64(start), "expected identifier")
		}
		steps = append(steps, PathStep{Kind: StepField, Name: s[start:i]})

		for i < n && s[i] == '[' {
			j := i + 1
			for j < n && s[j] != ']' {
				j++
			}
			if j >= n {
				return nil, errf(KindPath, "path.parse", int64(i), "unterminated '['")
			}
			digits := s[i+1 : j]
			idx, err := strconv.Atoi(digits)
			if err != nil {
				return nil, errf(KindPath, "path.parse", int64(i+1), "invalid index %q", digits)
			}
			steps = append(steps, PathStep{Kind: StepIndex, Index: idx})
			i = j + 1
		}

		if i >= n {
			return steps, nil
		}
		if s[i] != '.' {
			return nil, errf(KindPath, "path.parse", int64(i), "expected '.'")
		}
		i++
		if i >= n {
			return nil, errf(KindPath, "path.parse", int64(i), "trailing '.'")
		}
	}
}
