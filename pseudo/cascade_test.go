package pseudo_test

import (
	"testing"

	"pseudosel/atom"
	"pseudosel/pseudo"
)

func TestClassify_BeforeAfterEager(t *testing.T) {
	cat := pseudo.Default()
	for _, name := range []string{"before", "after", "BEFORE", "After"} {
		pe, ok := cat.LookupByText(name, false)
		if !ok {
			t.Fatalf("%q not found", name)
		}
		if got := pseudo.Classify(pe); got != pseudo.CascadeTypeEager {
			t.Errorf("Classify(%s) = %v, want eager", name, got)
		}
	}
}

func TestClassify_DefaultCatalog(t *testing.T) {
	cat := pseudo.Default()

	counts := map[pseudo.CascadeType]int{}
	cat.ForEach(func(pe pseudo.Element) {
		got := pseudo.Classify(pe)
		if again := pseudo.Classify(pe); again != got {
			t.Errorf("Classify(%s) not deterministic: %v then %v", pe, got, again)
		}
		counts[got]++

		var want pseudo.CascadeType
		switch {
		case pe.IsBeforeOrAfter():
			want = pseudo.CascadeTypeEager
		case pe.Internal():
			want = pseudo.CascadeTypePrecomputed
		default:
			want = pseudo.CascadeTypeLazy
		}
		if got != want {
			t.Errorf("Classify(%s) = %v, want %v", pe, got, want)
		}
	})

	if counts[pseudo.CascadeTypeEager] != 2 {
		t.Errorf("eager count = %d, want 2", counts[pseudo.CascadeTypeEager])
	}
	if counts[pseudo.CascadeTypePrecomputed] == 0 || counts[pseudo.CascadeTypeLazy] == 0 {
		t.Errorf("unexpected distribution: %v", counts)
	}
}

// An internal entry carrying the well-known ::before identifier is still
// eager: the before/after check runs first on purpose.
func TestClassify_BeforeOverridesInternal(t *testing.T) {
	cat, err := pseudo.NewCatalog([]pseudo.Entry{
		{Text: ":before", ID: atom.Before, Internal: true},
		pseudo.EntryFor(":-internal-box", true),
	})
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}

	pe, ok := cat.LookupByText("before", true)
	if !ok || !pe.Internal() {
		t.Fatalf("internal before not found: %v %v", pe, ok)
	}
	if got := pseudo.Classify(pe); got != pseudo.CascadeTypeEager {
		t.Errorf("Classify(internal before) = %v, want eager", got)
	}

	box, _ := cat.LookupByText("-internal-box", true)
	if got := pseudo.Classify(box); got != pseudo.CascadeTypePrecomputed {
		t.Errorf("Classify(-internal-box) = %v, want precomputed", got)
	}
}

func TestCascadeType_Parse(t *testing.T) {
	for _, ct := range []pseudo.CascadeType{pseudo.CascadeTypeEager, pseudo.CascadeTypePrecomputed, pseudo.CascadeTypeLazy} {
		got, err := pseudo.ParseCascadeType(ct.String())
		if err != nil || got != ct {
			t.Errorf("ParseCascadeType(%q) = %v, %v", ct.String(), got, err)
		}
	}
	if _, err := pseudo.ParseCascadeType("sometimes"); err == nil {
		t.Error("expected error for unknown cascade type")
	}
}
