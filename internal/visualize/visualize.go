// Package visualize renders a built datum tree as a human-readable,
// pre-order listing (spec.md §6's `visualize`), in the style of the
// teacher's internal/output/human.go formatter: one line per node, each
// carrying its resolved offset, size and type name.
package visualize

import (
	"fmt"
	"strings"

	"baf/internal/model"
)

// Visualize renders root and its whole subtree.
func Visualize(root *model.Datum) string {
	var b strings.Builder
	write(&b, root, 0)
	return b.String()
}

func write(b *strings.Builder, d *model.Datum, depth int) {
	offset, offErr := d.Offset()
	size, sizeErr := d.Size()
	indent := strings.Repeat("  ", depth)

	b.WriteString(indent)
	b.WriteString(fmtField(offset, offErr, size, sizeErr))
	b.WriteString(d.Name())
	b.WriteString(": ")
	b.WriteString(d.TypeName())
	b.WriteString("\n")

	children := d.Children()
	if len(children) == 0 {
		return
	}

	if _, isArray := d.Model().(model.Array); isArray && isScalarRun(children) {
		// A scalar-element array collapses to its own header line above;
		// the elements themselves aren't individually interesting.
		return
	}

	for _, c := range children {
		write(b, c, depth+1)
	}
}

// isScalarRun reports whether every child is a non-container leaf (plain
// scalar or bytes field), so the array's elements carry no internal
// structure worth expanding.
func isScalarRun(children []*model.Datum) bool {
	for _, c := range children {
		if _, ok := c.Model().(model.Container); ok {
			return false
		}
	}
	return true
}

func fmtField(offset int, offErr error, size int, sizeErr error) string {
	offStr := "0x?"
	if offErr == nil {
		offStr = fmt.Sprintf("0x%x", offset)
	}
	sizeStr := "0x?"
	if sizeErr == nil {
		sizeStr = fmt.Sprintf("0x%x", size)
	}
	return fmt.Sprintf("%s (%s) ", offStr, sizeStr)
}
