package catalog

import "testing"

func TestListInvariants(t *testing.T) {
	all := List()
	if len(all) == 0 {
		t.Fatal("catalog is empty")
	}

	seen := map[string]bool{}
	for _, tpl := range all {
		if tpl.ID == "" {
			t.Fatalf("template %q has empty id", tpl.Name)
		}
		if seen[tpl.ID] {
			t.Fatalf("duplicate template id %q", tpl.ID)
		}
		seen[tpl.ID] = true

		if len(tpl.Colors) == 0 {
			t.Fatalf("template %q has no colors", tpl.ID)
		}
		colorIDs := map[string]bool{}
		for _, c := range tpl.Colors {
			if c.Primary == "" || c.Secondary == "" {
				t.Fatalf("template %q color %q misses primary/secondary", tpl.ID, c.ID)
			}
			if colorIDs[c.ID] {
				t.Fatalf("template %q has duplicate color id %q", tpl.ID, c.ID)
			}
			colorIDs[c.ID] = true
		}
	}
}

func TestFind(t *testing.T) {
	tpl, ok := Find("modern")
	if !ok {
		t.Fatal("modern template missing")
	}
	if tpl.IsPro {
		t.Fatal("modern should be a free template")
	}

	if _, ok := Find("no-such-template"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestFindColor(t *testing.T) {
	tpl, ok := Find("classic")
	if !ok {
		t.Fatal("classic template missing")
	}

	c, ok := FindColor(tpl, "teal")
	if !ok {
		t.Fatal("teal color missing from classic")
	}
	if c.Primary != "#0d9488" {
		t.Fatalf("unexpected primary %q", c.Primary)
	}

	if _, ok := FindColor(tpl, "coral"); ok {
		t.Fatal("coral belongs to the creative group, not classic")
	}

	if got := DefaultColor(tpl).ID; got != "blue" {
		t.Fatalf("default color = %q, want blue", got)
	}
}
