package model

// concatChildren concatenates each child's bytes in declaration order —
// the canonical assembly rule shared by Block, Array, and Optional
// (spec.md §3: "no padding except via explicit Align").
func concatChildren(children []*Datum) ([]byte, error) {
	total := 0
	parts := make([][]byte, len(children))
	for i, c := range children {
		b, err := c.Bytes()
		if err != nil {
			return nil, err
		}
		parts[i] = b
		total += len(b)
	}
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}
