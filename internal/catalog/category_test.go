package catalog

import "testing"

func TestCanonicalCategory(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"Beads", "Beads", true},
		{"beads", "Beads", true},
		{"home decor", "Home Decor", true},
		{"HOME DECOR", "Home Decor", true},
		{" Stools ", "Stools", true},
		{"Furniture", "Furniture", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := CanonicalCategory(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("CanonicalCategory(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCategoriesIsCopy(t *testing.T) {
	labels := Categories()
	labels[0] = "mutated"
	if Categories()[0] != "Beads" {
		t.Fatal("Categories must return a copy")
	}
}
