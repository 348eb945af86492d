package build

import (
	"fmt"
	"strings"

	"baf/internal/bferr"
	"baf/internal/model"
)

// cyclicDependencyError walks the built tree collecting every datum still
// Pending and what it's blocked on, per spec.md §4.6: "the error lists the
// residual Pending datums and their unresolved targets."
func cyclicDependencyError(root *model.Datum) error {
	var lines []string
	collectPending(root, &lines)
	return bferr.New(bferr.KindCyclicDependency,
		"scheduler made no progress with work remaining:\n%s", strings.Join(lines, "\n"))
}

func collectPending(d *model.Datum, lines *[]string) {
	if d.IsBuilt() {
		return
	}
	if target := d.PendingOn(); target != nil {
		*lines = append(*lines, fmt.Sprintf("  %s is Pending on %s", d.Path(), target.Path()))
	} else {
		*lines = append(*lines, fmt.Sprintf("  %s is Pending", d.Path()))
	}
	for _, c := range d.Children() {
		collectPending(c, lines)
	}
}
