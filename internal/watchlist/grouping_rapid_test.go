package watchlist

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func keywordGen() *rapid.Generator[Keyword] {
	categories := append([]string{"", "Custom Category", "Another Custom"}, Taxonomy...)
	return rapid.Custom(func(t *rapid.T) Keyword {
		return Keyword{
			ID:       rapid.StringMatching(`[a-z0-9]{1,8}`).Draw(t, "id"),
			Keyword:  rapid.StringMatching(`[A-Za-z0-9 ._-]{1,16}`).Draw(t, "keyword"),
			Category: rapid.SampledFrom(categories).Draw(t, "category"),
			Active:   rapid.Bool().Draw(t, "active"),
		}
	})
}

func TestDeriveGroupsPartitionFilteredInput(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(keywordGen(), 0, 40).Draw(t, "raw")
		filter := rapid.SampledFrom([]string{"", "a", "APT", "0", "zz"}).Draw(t, "filter")

		groups := Derive(raw, filter)

		wantTotal := 0
		for _, kw := range raw {
			if filter == "" || strings.Contains(strings.ToLower(kw.Keyword), strings.ToLower(filter)) {
				wantTotal++
			}
		}

		gotTotal := 0
		seenGroups := make(map[string]bool)
		for _, g := range groups {
			if seenGroups[g.Category] {
				t.Fatalf("category %q appears in two groups", g.Category)
			}
			seenGroups[g.Category] = true
			if len(g.Keywords) == 0 {
				t.Fatalf("empty group %q", g.Category)
			}
			gotTotal += len(g.Keywords)
		}

		if gotTotal != wantTotal {
			t.Fatalf("groups hold %d records, filtered input has %d", gotTotal, wantTotal)
		}
	})
}

func TestDeriveGroupOrderFollowsTaxonomy(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(keywordGen(), 0, 40).Draw(t, "raw")

		groups := Derive(raw, "")
		for i := 1; i < len(groups); i++ {
			prev := CategoryRank(groups[i-1].Category)
			cur := CategoryRank(groups[i].Category)
			if prev > cur {
				t.Fatalf("group %q (rank %d) follows %q (rank %d)",
					groups[i].Category, cur, groups[i-1].Category, prev)
			}
		}
	})
}

func TestDeriveFilterIsIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(keywordGen(), 0, 40).Draw(t, "raw")
		filter := rapid.StringMatching(`[a-z]{1,4}`).Draw(t, "filter")

		once := Derive(raw, filter)

		var survivors []Keyword
		for _, g := range once {
			survivors = append(survivors, g.Keywords...)
		}
		twice := Derive(survivors, filter)

		if len(once) != len(twice) {
			t.Fatalf("group count changed on second filter: %d vs %d", len(once), len(twice))
		}
		for i := range once {
			if once[i].Category != twice[i].Category {
				t.Fatalf("group %d changed category: %q vs %q", i, once[i].Category, twice[i].Category)
			}
			if len(once[i].Keywords) != len(twice[i].Keywords) {
				t.Fatalf("group %q changed size: %d vs %d",
					once[i].Category, len(once[i].Keywords), len(twice[i].Keywords))
			}
		}
	})
}

func TestDeriveIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.SliceOfN(keywordGen(), 0, 40).Draw(t, "raw")
		filter := rapid.SampledFrom([]string{"", "a", "b"}).Draw(t, "filter")

		first := Derive(raw, filter)
		second := Derive(raw, filter)

		if len(first) != len(second) {
			t.Fatalf("group count differs across runs")
		}
		for i := range first {
			if first[i].Category != second[i].Category {
				t.Fatalf("group order differs across runs at %d", i)
			}
			for j := range first[i].Keywords {
				if first[i].Keywords[j].ID != second[i].Keywords[j].ID {
					t.Fatalf("record order differs across runs in %q", first[i].Category)
				}
			}
		}
	})
}

func TestCollapseToggleTwiceRestores(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		set := NewCollapseSet()
		pre := rapid.SliceOfN(rapid.SampledFrom(Taxonomy), 0, 10).Draw(t, "pre")
		for _, c := range pre {
			set.Toggle(c)
		}
		target := rapid.SampledFrom(Taxonomy).Draw(t, "target")

		before := set.Collapsed(target)
		others := make(map[string]bool)
		for _, c := range Taxonomy {
			if c != target {
				others[c] = set.Collapsed(c)
			}
		}

		set.Toggle(target)
		set.Toggle(target)

		if set.Collapsed(target) != before {
			t.Fatalf("double toggle changed %q", target)
		}
		for c, want := range others {
			if set.Collapsed(c) != want {
				t.Fatalf("toggling %q disturbed %q", target, c)
			}
		}
	})
}
