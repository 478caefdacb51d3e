package scraper

import "testing"

func TestClean(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", ""},
		{"a  b", "a b"},
		{"\t a \n b \r\n c ", "a b c"},
		{"already clean", "already clean"},
	}
	for _, c := range cases {
		if got := Clean(c.in); got != c.want {
			t.Fatalf("Clean(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestClean_Idempotent(t *testing.T) {
	inputs := []string{"", "  x  ", "a \t b\nc", "PKR  45,000 "}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q != %q", in, twice, once)
		}
	}
}

func TestFirstNonEmpty(t *testing.T) {
	if got := FirstNonEmpty(nil, "", "  ", " first ", "second"); got != "first" {
		t.Fatalf("expected first, got %q", got)
	}
	if got := FirstNonEmpty(); got != "" {
		t.Fatalf("expected empty for no candidates, got %q", got)
	}
	if got := FirstNonEmpty(nil, "", "  \t "); got != "" {
		t.Fatalf("expected empty for all-blank candidates, got %q", got)
	}
}

func TestFirstNonEmpty_Numbers(t *testing.T) {
	if got := FirstNonEmpty(nil, 3); got != "3" {
		t.Fatalf("expected 3, got %q", got)
	}
	if got := FirstNonEmpty("", float64(45000)); got != "45000" {
		t.Fatalf("expected 45000, got %q", got)
	}
	if got := FirstNonEmpty(float64(120.5)); got != "120.5" {
		t.Fatalf("expected 120.5, got %q", got)
	}
	if got := FirstNonEmpty(int64(7), "ignored"); got != "7" {
		t.Fatalf("expected 7, got %q", got)
	}
}
