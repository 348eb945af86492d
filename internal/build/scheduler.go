// Package build implements BAF's multi-pass dependency-driven build
// scheduler (spec.md §4.6, component C6): the core algorithm that tolerates
// forward references among setters by retrying deferred fields pass after
// pass until the tree is fully built or a cycle is detected.
package build

import (
	"context"
	"encoding/binary"
	"strings"

	"github.com/sirupsen/logrus"

	"baf/internal/bferr"
	"baf/internal/model"
	"baf/internal/value"
)

// Options configures a single Build call.
type Options struct {
	// RootPath resolves relative File paths (spec.md §4.4).
	RootPath string
	// ByteOrder is the scalar encoding order; defaults to little-endian.
	ByteOrder model.ByteOrder
	// Logger receives one structured entry per pass at Debug level. A nil
	// Logger discards all output (matches the teacher's "never log
	// directly; route through an injected writer" convention).
	Logger *logrus.Logger
}

// Build runs the scheduler over rootModel against the given input Value,
// per spec.md §6's `build(root_model, value_tree, root_path)`. It returns
// the root datum, whose Bytes() is then the final output.
func Build(ctx context.Context, rootModel model.Model, input value.Value, opts Options) (*model.Datum, error) {
	if opts.ByteOrder == nil {
		opts.ByteOrder = binary.LittleEndian
	}
	logger := opts.Logger
	if logger == nil {
		logger = silentLogger()
	}

	root := rootModel.Instantiate(nil)
	root.SetName("$root")
	root.SetInputResult(model.FromValue(input))

	bctx := &model.BuildContext{RootPath: opts.RootPath, ByteOrder: opts.ByteOrder}

	passNum := 0
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		passNum++
		completed := 0
		if err := attempt(bctx, root, &completed); err != nil {
			return nil, err
		}
		logger.WithFields(logrus.Fields{
			"pass":      passNum,
			"completed": completed,
			"built":     root.IsBuilt(),
		}).Debug("build pass finished")

		if root.IsBuilt() {
			return root, nil
		}
		if completed == 0 {
			return nil, cyclicDependencyError(root)
		}
	}
}

// attempt is one pass's treewide, depth-first, declaration-order walk
// (spec.md §4.6). It recurses into containers so that a nested block's
// fields get exactly one attempt per pass too, and increments *completed
// once per datum that transitions Pending/Unstarted -> Complete this pass.
func attempt(bctx *model.BuildContext, d *model.Datum, completed *int) error {
	if d.IsBuilt() {
		return nil
	}

	cont, isContainer := d.Model().(model.Container)
	if !isContainer {
		in, ok := d.InputResult()
		if !ok {
			return nil // parent hasn't derived this leaf's input yet
		}
		return attemptLeaf(bctx, d, in, completed)
	}

	if err := cont.Prepare(d); err != nil {
		if p, ok := model.AsPending(err); ok {
			d.SetPendingOn(p.Target)
			return nil
		}
		return err
	}

	allDone := true
	for i := 0; i < cont.ChildCount(d); i++ {
		child := d.Children()[i]
		if child.IsBuilt() {
			continue
		}
		if !child.HasInput() {
			res, err := cont.DeriveChildInput(bctx.WithDatum(child), d, i)
			if err != nil {
				if p, ok := model.AsPending(err); ok {
					child.SetPendingOn(p.Target)
					allDone = false
					continue
				}
				return bferr.WithBreadcrumb(err, crumb(d, cont, i))
			}
			if err := applyDerived(d, i, res); err != nil {
				return bferr.WithBreadcrumb(err, crumb(d, cont, i))
			}
			child = d.Children()[i]
			if child.IsBuilt() {
				// A ResultDatum swap installs an already-Complete datum
				// without ever going through attempt/attemptLeaf below, so
				// it must count as this pass's progress itself.
				*completed++
				continue
			}
		}
		if err := attempt(bctx, child, completed); err != nil {
			return bferr.WithBreadcrumb(err, crumb(d, cont, i))
		}
		if !child.IsBuilt() {
			allDone = false
		}
	}

	if allDone {
		preV, _ := d.InputResult()
		pv := preV.Value
		if err := d.Model().Build(bctx.WithDatum(d), d, pv); err != nil {
			if p, ok := model.AsPending(err); ok {
				d.SetPendingOn(p.Target)
				return nil
			}
			return err
		}
		*completed++
	}
	return nil
}

// attemptLeaf preprocesses and builds a non-container datum.
func attemptLeaf(bctx *model.BuildContext, d *model.Datum, in model.SetterResult, completed *int) error {
	if in.Kind != model.ResultValue {
		return bferr.New(bferr.KindValidationError, "%s: leaf field received a non-value setter result", d.TypeName())
	}
	pv, err := d.Model().Preprocess(in.Value)
	if err != nil {
		return err
	}
	if err := d.Model().Build(bctx.WithDatum(d), d, pv); err != nil {
		if p, ok := model.AsPending(err); ok {
			d.SetPendingOn(p.Target)
			return nil
		}
		return err
	}
	*completed++
	return nil
}

// applyDerived installs a just-derived SetterResult onto child i of
// container d, handling the four non-plain-value shapes of spec.md §4.3.
func applyDerived(d *model.Datum, i int, res model.SetterResult) error {
	child := d.Children()[i]

	switch res.Kind {
	case model.ResultValue:
		child.SetInputResult(res)
		return nil

	case model.ResultAbsent:
		if _, ok := child.Model().(model.Optional); !ok {
			return bferr.New(bferr.KindValidationError, "field %q: setter returned None but the field is not Optional", child.Name())
		}
		child.SetInputResult(model.FromValue(value.Null))
		return nil

	case model.ResultDatum:
		res.Datum.SetParent(d)
		res.Datum.SetName(child.Name())
		d.ReplaceChild(i, res.Datum)
		return nil

	case model.ResultAlt:
		alt := res.AltModel.Instantiate(d)
		alt.SetName(child.Name())
		alt.SetInputResult(model.FromValue(res.AltValue))
		d.ReplaceChild(i, alt)
		return nil

	case model.ResultAltEntries:
		// Only meaningful when the child itself is the whole Array; install
		// it as the array's own input and let Array.Prepare expand it.
		child.SetInputResult(res)
		return nil

	default:
		return bferr.New(bferr.KindValidationError, "unknown setter result kind")
	}
}

// crumb formats the breadcrumb segment for container d's child i, per
// spec.md §6's two trail forms.
func crumb(d *model.Datum, cont model.Container, i int) string {
	name := cont.ChildName(i)
	childTypeName := d.Children()[i].TypeName()
	if strings.HasPrefix(name, "[") {
		return bferr.ArrayElementCrumb(childTypeName, indexOf(name))
	}
	return bferr.BlockFieldCrumb(d.TypeName(), name, childTypeName)
}

func indexOf(label string) int {
	n := 0
	for _, r := range label {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
		}
	}
	return n
}

func silentLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(&discardWriter{})
	return l
}

type discardWriter struct{}

func (discardWriter) Write(p []byte) (int, error) { return len(p), nil }
