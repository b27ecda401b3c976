// Package rowagg folds flat left-join rows into parent groups with embedded children.
//
// A join of a parent table with 0..N child rows yields one row per child, or a single
// row with no child when the parent has none. Fold walks those rows once, starting a new
// group whenever the parent id changes. That is only correct when rows sharing a parent
// id are contiguous, so Fold accepts a Sorted value, and Sorted can only be built by Sort.
package rowagg

import (
	"cmp"
	"slices"
)

// Row is one flat join row. Child is nil when the join matched no child.
type Row[K cmp.Ordered, P any, C any] struct {
	ParentID K
	Parent   P
	Child    *C
}

// Group is one parent with the children reconstructed from its run of rows.
type Group[P any, C any] struct {
	Parent   P
	Children []C
}

// Sorted holds rows ordered by ascending parent id.
type Sorted[K cmp.Ordered, P any, C any] struct {
	rows []Row[K, P, C]
}

// Sort orders rows by parent id. The sort is stable, so children keep their input
// order within a parent. Input already ordered by the query is left as is.
func Sort[K cmp.Ordered, P any, C any](rows []Row[K, P, C]) Sorted[K, P, C] {
	out := slices.Clone(rows)
	if !slices.IsSortedFunc(out, compareRows[K, P, C]) {
		slices.SortStableFunc(out, compareRows[K, P, C])
	}
	return Sorted[K, P, C]{rows: out}
}

func compareRows[K cmp.Ordered, P any, C any](a, b Row[K, P, C]) int {
	return cmp.Compare(a.ParentID, b.ParentID)
}

func (s Sorted[K, P, C]) Len() int { return len(s.rows) }

// Fold produces one group per distinct parent id in ascending id order. Children is
// never nil. The parent columns of the first row in a run seed the group.
func Fold[K cmp.Ordered, P any, C any](s Sorted[K, P, C]) []Group[P, C] {
	out := make([]Group[P, C], 0)
	var (
		cur   *Group[P, C]
		curID K
	)
	for _, r := range s.rows {
		if cur == nil || r.ParentID != curID {
			if cur != nil {
				out = append(out, *cur)
			}
			cur = &Group[P, C]{Parent: r.Parent, Children: []C{}}
			curID = r.ParentID
		}
		if r.Child != nil {
			cur.Children = append(cur.Children, *r.Child)
		}
	}
	if cur != nil {
		out = append(out, *cur)
	}
	return out
}

// FoldRows is Fold(Sort(rows)).
func FoldRows[K cmp.Ordered, P any, C any](rows []Row[K, P, C]) []Group[P, C] {
	return Fold(Sort(rows))
}

// Index keys groups by a value derived from the parent, typically a foreign key, for
// splicing one level of groups into the next. Groups keep their order within a key.
func Index[K comparable, P any, C any](groups []Group[P, C], key func(P) K) map[K][]Group[P, C] {
	out := make(map[K][]Group[P, C], len(groups))
	for _, g := range groups {
		k := key(g.Parent)
		out[k] = append(out[k], g)
	}
	return out
}
