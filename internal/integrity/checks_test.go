package integrity

import (
	"testing"

	"github.com/diegomarinho/jabref/internal/model"
)

func entry(key string, fields map[model.Field]string) *model.Entry {
	e := model.NewEntry("article", key)
	for f, v := range fields {
		e.SetField(f, v)
	}
	return e
}

func TestYear(t *testing.T) {
	bad := entry("a", map[model.Field]string{model.FieldYear: "20x0"})
	if msgs := Year(bad); len(msgs) != 1 || msgs[0].Field != model.FieldYear {
		t.Fatalf("expected one year message, got %v", msgs)
	}

	good := entry("b", map[model.Field]string{model.FieldYear: "2020"})
	if msgs := Year(good); len(msgs) != 0 {
		t.Errorf("valid year flagged: %v", msgs)
	}

	// Absent year is the required-fields checker's business, not Year's.
	if msgs := Year(entry("c", nil)); len(msgs) != 0 {
		t.Errorf("missing year flagged by Year: %v", msgs)
	}
}

func TestEdition(t *testing.T) {
	cases := []struct {
		value string
		want  int
	}{
		{"2", 0},
		{"Second", 0},
		{"1", 1},
		{"second", 1},
		{"2nd", 1},
	}
	for _, c := range cases {
		e := entry("x", map[model.Field]string{model.FieldEdition: c.value})
		if got := len(Edition(e)); got != c.want {
			t.Errorf("Edition(%q): %d messages, want %d", c.value, got, c.want)
		}
	}
}

func TestPages(t *testing.T) {
	ok := []string{"7", "7+", "7--33", "7--33, 41", "L7--L12"}
	for _, v := range ok {
		e := entry("x", map[model.Field]string{model.FieldPages: v})
		if msgs := Pages(e); len(msgs) != 0 {
			t.Errorf("Pages(%q) flagged: %v", v, msgs)
		}
	}
	bad := []string{"7-33", "seven", "--7"}
	for _, v := range bad {
		e := entry("x", map[model.Field]string{model.FieldPages: v})
		if msgs := Pages(e); len(msgs) != 1 {
			t.Errorf("Pages(%q) not flagged", v)
		}
	}
}

func TestBraces(t *testing.T) {
	open := entry("x", map[model.Field]string{model.FieldTitle: "{Unclosed"})
	if msgs := Braces(open); len(msgs) != 1 {
		t.Fatalf("unbalanced open brace not flagged: %v", msgs)
	}
	closing := entry("x", map[model.Field]string{model.FieldTitle: "Closed}"})
	if msgs := Braces(closing); len(msgs) != 1 || msgs[0].Text != "unexpected closing curly bracket" {
		t.Fatalf("unexpected closing brace not flagged: %v", msgs)
	}
	balanced := entry("x", map[model.Field]string{model.FieldTitle: "{DNA} sequencing"})
	if msgs := Braces(balanced); len(msgs) != 0 {
		t.Errorf("balanced braces flagged: %v", msgs)
	}
}

func TestTitleCase(t *testing.T) {
	unmasked := entry("x", map[model.Field]string{model.FieldTitle: "On the Origin of species"})
	if msgs := TitleCase(unmasked); len(msgs) != 1 {
		t.Error("unmasked mid-title capital not flagged")
	}
	masked := entry("x", map[model.Field]string{model.FieldTitle: "On the {Origin} of species"})
	if msgs := TitleCase(masked); len(msgs) != 0 {
		t.Errorf("masked capital flagged: %v", msgs)
	}
	leading := entry("x", map[model.Field]string{model.FieldTitle: "Origin of species"})
	if msgs := TitleCase(leading); len(msgs) != 0 {
		t.Errorf("leading capital flagged: %v", msgs)
	}
}

func TestCitationKey(t *testing.T) {
	if msgs := CitationKey(model.NewEntry("article", "")); len(msgs) != 1 || msgs[0].Text != "empty citation key" {
		t.Fatalf("empty key not flagged: %v", msgs)
	}
	if msgs := CitationKey(model.NewEntry("article", "doe 2020")); len(msgs) != 1 {
		t.Error("key with space not flagged")
	}
	if msgs := CitationKey(model.NewEntry("article", "doe2020")); len(msgs) != 0 {
		t.Errorf("valid key flagged: %v", msgs)
	}
}

func TestRequiredFields(t *testing.T) {
	e := entry("doe2020", map[model.Field]string{model.FieldTitle: "T", model.FieldYear: "2020"})
	msgs := RequiredFields(e)
	if len(msgs) != 2 {
		t.Fatalf("expected author and journal to be reported, got %v", msgs)
	}
}

func TestISSN(t *testing.T) {
	good := entry("x", map[model.Field]string{model.FieldISSN: "0378-5955"})
	if msgs := ISSN(good); len(msgs) != 0 {
		t.Errorf("valid ISSN flagged: %v", msgs)
	}
	badFormat := entry("x", map[model.Field]string{model.FieldISSN: "03785955"})
	if msgs := ISSN(badFormat); len(msgs) != 1 || msgs[0].Text != "incorrect format" {
		t.Errorf("bad format not flagged: %v", msgs)
	}
	badCheck := entry("x", map[model.Field]string{model.FieldISSN: "0378-5954"})
	if msgs := ISSN(badCheck); len(msgs) != 1 || msgs[0].Text != "incorrect control digit" {
		t.Errorf("bad checksum not flagged: %v", msgs)
	}
}

func TestRunOrderingAndIgnores(t *testing.T) {
	e1 := entry("doe2020", map[model.Field]string{model.FieldYear: "20xx"})
	e2 := entry("tmp-note", map[model.Field]string{model.FieldYear: "20xx"})
	e3 := entry("doe2020", map[model.Field]string{model.FieldYear: "1999", model.FieldAuthor: "Doe", model.FieldTitle: "A title", model.FieldJournal: "J"})

	msgs := Run([]*model.Entry{e1, e2, e3}, Options{
		IgnoreKeys: []string{"tmp-*"},
		Enable:     []string{"year", "duplicate_key"},
	})

	// e1 bad year, e3 duplicate key; e2 ignored entirely.
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d: %v", len(msgs), msgs)
	}
	if msgs[0].Entry != e1 || msgs[0].Field != model.FieldYear {
		t.Errorf("first message should be e1's year, got %v", msgs[0])
	}
	if msgs[1].Entry != e3 || msgs[1].Text != "duplicate citation key" {
		t.Errorf("second message should be e3's duplicate key, got %v", msgs[1])
	}
}

func TestRunDisable(t *testing.T) {
	e := entry("", nil)
	msgs := Run([]*model.Entry{e}, Options{Disable: []string{"citation_key"}})
	for _, m := range msgs {
		if m.Field == model.FieldKey {
			t.Errorf("disabled checker still ran: %v", m)
		}
	}
}
