package atom_test

import (
	"fmt"
	"sync"
	"testing"

	"pseudosel/atom"
)

func TestTable_InternIsStable(t *testing.T) {
	tbl := atom.NewTable()

	a := tbl.Intern(":before")
	b := tbl.Intern(":before")
	if a != b {
		t.Fatalf("Intern returned different atoms for same text: %d vs %d", a, b)
	}
	if a == atom.Empty {
		t.Fatal("non-empty text interned as Empty")
	}
	if got := tbl.Text(a); got != ":before" {
		t.Errorf("Text() = %q, want %q", got, ":before")
	}
	if tbl.Intern(":after") == a {
		t.Error("distinct texts share an atom")
	}
}

func TestTable_EmptyString(t *testing.T) {
	tbl := atom.NewTable()
	if got := tbl.Intern(""); got != atom.Empty {
		t.Errorf("Intern(\"\") = %d, want Empty", got)
	}
	if tbl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tbl.Len())
	}
}

func TestTable_Lookup(t *testing.T) {
	tbl := atom.NewTable()
	if _, ok := tbl.Lookup("hover"); ok {
		t.Fatal("Lookup found text that was never interned")
	}
	want := tbl.Intern("hover")
	got, ok := tbl.Lookup("hover")
	if !ok || got != want {
		t.Errorf("Lookup() = %d, %v; want %d, true", got, ok, want)
	}
	if tbl.Text(atom.Atom(1000)) != "" {
		t.Error("Text() of unknown atom should be empty")
	}
}

func TestTable_ConcurrentIntern(t *testing.T) {
	tbl := atom.NewTable()

	var wg sync.WaitGroup
	results := make([][]atom.Atom, 8)
	for g := range results {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range 100 {
				results[g] = append(results[g], tbl.Intern(fmt.Sprintf("name-%d", i)))
			}
		}(g)
	}
	wg.Wait()

	for g := 1; g < len(results); g++ {
		for i := range results[g] {
			if results[g][i] != results[0][i] {
				t.Fatalf("goroutine %d got atom %d for name-%d, goroutine 0 got %d", g, results[g][i], i, results[0][i])
			}
		}
	}
	if tbl.Len() != 101 {
		t.Errorf("Len() = %d, want 101", tbl.Len())
	}
}

func TestDefault_WellKnown(t *testing.T) {
	if atom.Before.String() != ":before" {
		t.Errorf("Before = %q", atom.Before.String())
	}
	if atom.After.String() != ":after" {
		t.Errorf("After = %q", atom.After.String())
	}
	if atom.Intern(":before") != atom.Before {
		t.Error("Intern(\":before\") differs from Before")
	}
}
