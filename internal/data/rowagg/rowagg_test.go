package rowagg

import (
	"reflect"
	"testing"
)

type parent struct {
	ID   int64
	Name string
}

type meta struct {
	ID    int64
	Key   string
	Value string
}

func row(id int64, name string, child *meta) Row[int64, parent, meta] {
	return Row[int64, parent, meta]{ParentID: id, Parent: parent{ID: id, Name: name}, Child: child}
}

func TestFoldJoinRows(t *testing.T) {
	rows := []Row[int64, parent, meta]{
		row(1, "a", &meta{ID: 10, Key: "k1", Value: "v1"}),
		row(1, "a", &meta{ID: 11, Key: "k2", Value: "v2"}),
		row(2, "b", nil),
	}

	got := FoldRows(rows)
	want := []Group[parent, meta]{
		{Parent: parent{ID: 1, Name: "a"}, Children: []meta{{ID: 10, Key: "k1", Value: "v1"}, {ID: 11, Key: "k2", Value: "v2"}}},
		{Parent: parent{ID: 2, Name: "b"}, Children: []meta{}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected groups:\n got=%+v\nwant=%+v", got, want)
	}
}

func TestFoldEmptyInput(t *testing.T) {
	got := FoldRows[int64, parent, meta](nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got=%#v", got)
	}
}

func TestSortRegroupsInterleavedParents(t *testing.T) {
	rows := []Row[int64, parent, meta]{
		row(2, "b", &meta{ID: 20}),
		row(1, "a", &meta{ID: 10}),
		row(2, "b", &meta{ID: 21}),
		row(1, "a", &meta{ID: 11}),
		row(3, "c", nil),
	}

	got := Fold(Sort(rows))
	if len(got) != 3 {
		t.Fatalf("expected one group per parent id, got=%d", len(got))
	}
	for i, wantID := range []int64{1, 2, 3} {
		if got[i].Parent.ID != wantID {
			t.Fatalf("group %d: got parent=%d want=%d", i, got[i].Parent.ID, wantID)
		}
	}
	if ids := childIDs(got[1].Children); !reflect.DeepEqual(ids, []int64{20, 21}) {
		t.Fatalf("children of parent 2 lost input order: %v", ids)
	}
	if len(got[2].Children) != 0 {
		t.Fatalf("null child must not be appended")
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	rows := []Row[int64, parent, meta]{row(2, "b", nil), row(1, "a", nil)}
	_ = Sort(rows)
	if rows[0].ParentID != 2 {
		t.Fatalf("input slice was reordered")
	}
}

func TestFoldExactlyOneGroupPerParent(t *testing.T) {
	var rows []Row[int64, parent, meta]
	children := map[int64]int{}
	for i := int64(0); i < 200; i++ {
		pid := (i*7)%13 + 1
		if i%5 == 0 {
			rows = append(rows, row(pid, "p", nil))
			continue
		}
		rows = append(rows, row(pid, "p", &meta{ID: i}))
		children[pid]++
	}

	groups := FoldRows(rows)
	seen := map[int64]bool{}
	for _, g := range groups {
		if seen[g.Parent.ID] {
			t.Fatalf("duplicate group for parent %d", g.Parent.ID)
		}
		seen[g.Parent.ID] = true
		if len(g.Children) != children[g.Parent.ID] {
			t.Fatalf("parent %d: got %d children want %d", g.Parent.ID, len(g.Children), children[g.Parent.ID])
		}
	}
	if len(seen) != 13 {
		t.Fatalf("expected 13 parents, got=%d", len(seen))
	}
}

func TestIndexSplicesByForeignKey(t *testing.T) {
	groups := []Group[parent, meta]{
		{Parent: parent{ID: 5, Name: "x"}},
		{Parent: parent{ID: 6, Name: "y"}},
		{Parent: parent{ID: 7, Name: "x"}},
	}
	idx := Index(groups, func(p parent) string { return p.Name })
	if len(idx["x"]) != 2 || idx["x"][0].Parent.ID != 5 || idx["x"][1].Parent.ID != 7 {
		t.Fatalf("unexpected index: %+v", idx)
	}
}

func childIDs(cs []meta) []int64 {
	out := make([]int64, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.ID)
	}
	return out
}
