package assembly

import (
	"iter"
	"strings"
)

// Flatten walks parts depth-first in input order and yields one
// FlattenedLeaf per leaf. Group transforms are composed on the way down;
// base is the transform applied above the top-level parts.
//
// The sequence is lazy and can be ranged over more than once. Nil parts,
// leaves without a shape and groups that reappear on their own ancestor
// path are skipped.
func Flatten(parts []Part, base Transform) iter.Seq[FlattenedLeaf] {
	return func(yield func(FlattenedLeaf) bool) {
		w := walker{yield: yield, active: make(map[*Group]bool)}
		w.walk(parts, base, nil)
	}
}

// Collect materializes a flatten pass.
func Collect(parts []Part, base Transform) []FlattenedLeaf {
	var leaves []FlattenedLeaf
	for leaf := range Flatten(parts, base) {
		leaves = append(leaves, leaf)
	}
	return leaves
}

type walker struct {
	yield   func(FlattenedLeaf) bool
	active  map[*Group]bool
	emitted int
	stopped bool
}

func (w *walker) walk(parts []Part, acc Transform, path []string) {
	for _, part := range parts {
		if w.stopped {
			return
		}
		switch p := part.(type) {
		case *Group:
			if p == nil || w.active[p] {
				continue
			}
			local := Identity()
			if p.Transform != nil {
				local = *p.Transform
			}
			w.active[p] = true
			w.walk(p.Children, acc.Compose(local), append(path, p.Name))
			delete(w.active, p)
		case *Leaf:
			if p == nil || p.Shape == nil {
				continue
			}
			resolved := acc
			if p.Transform != nil {
				resolved = *p.Transform
			}
			leaf := FlattenedLeaf{
				Index:     w.emitted,
				Path:      joinPath(path, p.Name),
				Shape:     p.Shape,
				Transform: resolved,
			}
			w.emitted++
			if !w.yield(leaf) {
				w.stopped = true
				return
			}
		}
	}
}

func joinPath(path []string, name string) string {
	parts := make([]string, 0, len(path)+1)
	for _, p := range path {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if name != "" {
		parts = append(parts, name)
	}
	return strings.Join(parts, "/")
}
