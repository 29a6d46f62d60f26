package document

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
	"time"
)

func sampleResume() Resume {
	return Resume{
		ID:         "resume-1700000000000-abcd1234",
		UserID:     "42",
		Name:       "Software Developer Resume",
		CreatedAt:  "2023-01-15T12:00:00Z",
		UpdatedAt:  "2023-01-15T15:30:00Z",
		TemplateID: "modern",
		ColorID:    "blue",
		Colors:     &Colors{Primary: "#2563eb", Secondary: "#93c5fd"},
		PersonalInfo: PersonalInfo{
			FullName: "Alex Johnson",
			Email:    "alex.johnson@example.com",
			Title:    "Senior Software Developer",
		},
		Education: []Education{{
			ID:          "edu-1",
			Institution: "University of California, Berkeley",
			Degree:      "Bachelor of Science",
			Field:       "Computer Science",
			StartDate:   "2014-09-01",
			EndDate:     "2018-05-30",
		}},
		Experience: []Experience{{
			ID:        "exp-1",
			Company:   "Tech Solutions Inc.",
			Position:  "Senior Frontend Developer",
			StartDate: "2020-03-01",
			EndDate:   "",
		}},
		Skills: []Skill{
			{ID: "skill-1", Name: "Go", Level: 5},
			{ID: "skill-2", Name: "TypeScript", Level: 4},
		},
		Languages: []Language{{Language: "English", Proficiency: "Native"}},
	}
}

func TestNewIDUniquePerUser(t *testing.T) {
	now := time.Now()
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := NewID(now)
		if !strings.HasPrefix(id, "resume-") {
			t.Fatalf("unexpected id format %q", id)
		}
		if seen[id] {
			t.Fatalf("duplicate id %q", id)
		}
		seen[id] = true
	}
}

func TestNewEntryIDDistinctFromDocumentID(t *testing.T) {
	id := NewEntryID("edu")
	if !strings.HasPrefix(id, "edu-") {
		t.Fatalf("unexpected entry id %q", id)
	}
	if strings.HasPrefix(id, "resume-") {
		t.Fatalf("entry id must not look like a document id: %q", id)
	}
}

func TestPatchApplyOnlyTouchesSuppliedFields(t *testing.T) {
	original := sampleResume()
	name := "X"
	patched := Patch{Name: &name}.Apply(original)

	if patched.Name != "X" {
		t.Fatalf("name = %q, want X", patched.Name)
	}

	// 其余字段逐一保持不变。
	patched.Name = original.Name
	if !reflect.DeepEqual(patched, original) {
		t.Fatalf("patch touched unrelated fields:\n got %+v\nwant %+v", patched, original)
	}
}

func TestPatchApplyDoesNotAliasSlices(t *testing.T) {
	original := sampleResume()
	skills := []Skill{{ID: "skill-9", Name: "Rust", Level: 3}}
	patched := Patch{Skills: &skills}.Apply(original)

	skills[0].Name = "mutated"
	if patched.Skills[0].Name != "Rust" {
		t.Fatal("patched document aliases caller slice")
	}
	if len(original.Skills) != 2 {
		t.Fatal("original document was mutated")
	}
}

func TestPatchEnsureEntryIDs(t *testing.T) {
	education := []Education{
		{Institution: "State University"},
		{ID: "edu-keep", Institution: "Technical College"},
		{ID: "edu-keep", Institution: "Duplicate"},
	}
	skills := []Skill{{Name: "Go", Level: 4}, {Name: "SQL", Level: 3}}
	p := Patch{Education: &education, Skills: &skills}
	p.EnsureEntryIDs()

	if education[1].ID != "edu-keep" {
		t.Errorf("existing id rewritten: %q", education[1].ID)
	}
	seen := map[string]bool{}
	for i, e := range education {
		if e.ID == "" {
			t.Errorf("education %d id empty", i)
		}
		if seen[e.ID] {
			t.Errorf("education %d duplicate id %q", i, e.ID)
		}
		seen[e.ID] = true
	}
	for i, s := range skills {
		if s.ID == "" {
			t.Errorf("skill %d id empty", i)
		}
	}
}

func TestCloneIsDeep(t *testing.T) {
	original := sampleResume()
	clone := original.Clone()

	clone.Skills[0].Level = 1
	clone.Colors.Primary = "#000000"

	if original.Skills[0].Level != 5 {
		t.Fatal("clone shares skills slice")
	}
	if original.Colors.Primary != "#2563eb" {
		t.Fatal("clone shares colors pointer")
	}
}

func TestCollectionRoundTrip(t *testing.T) {
	cases := [][]Resume{
		{},
		{sampleResume()},
		{
			sampleResume(),
			{
				ID:         "resume-1700000000001-ffff0000",
				UserID:     "42",
				Name:       "Untitled Resume",
				TemplateID: "classic",
				Education:  []Education{},
				Experience: []Experience{},
				Skills:     []Skill{},
			},
		},
	}

	for _, in := range cases {
		data, err := json.Marshal(in)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		var out []Resume
		if err := json.Unmarshal(data, &out); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(in) == 0 {
			if len(out) != 0 {
				t.Fatalf("round trip grew collection: %d", len(out))
			}
			continue
		}
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", out, in)
		}
	}
}
