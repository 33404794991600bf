package text

import (
	"strings"
	"testing"
)

func stripSeparators(s string) string {
	return paragraphBreak.ReplaceAllString(s, "")
}

func reassemble(chunks []string) string {
	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(stripSeparators(c))
	}
	return b.String()
}

func TestChars(t *testing.T) {
	if got := Chars(4000); got != 12000 {
		t.Errorf("Chars(4000) = %d, want 12000", got)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name      string
		in        string
		maxTokens int
		want      string
	}{
		{"fits", "hello", 2, "hello"},
		{"exact", "abcdef", 2, "abcdef"},
		{"cut", "abcdefgh", 2, "abcdef..."},
		{"multibyte", "ééééé", 1, "ééé..."},
		{"empty", "", 1, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Truncate(tc.in, tc.maxTokens); got != tc.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxTokens, got, tc.want)
			}
		})
	}
}

func TestPrefix(t *testing.T) {
	if got := Prefix("héllo", 2); got != "hé" {
		t.Errorf("Prefix = %q", got)
	}
	if got := Prefix("hi", 10); got != "hi" {
		t.Errorf("Prefix = %q", got)
	}
	if got := Prefix("hi", -1); got != "" {
		t.Errorf("Prefix = %q", got)
	}
}

func TestSplit_ShortTextSingleChunk(t *testing.T) {
	inputs := []string{"", "one paragraph", "a\n\nb\n\nc", strings.Repeat("x", 100)}
	for _, in := range inputs {
		chunks := Split(in, 100)
		if len(chunks) != 1 {
			t.Fatalf("Split(%q) returned %d chunks, want 1", in, len(chunks))
		}
		if chunks[0] != in {
			t.Errorf("expected the text itself, got %q", chunks[0])
		}
	}
}

func TestSplit_MergesParagraphs(t *testing.T) {
	in := "aaaa\n\nbbbb\n\ncccc\n\ndddd"
	chunks := Split(in, 10)

	want := []string{"aaaa\n\nbbbb", "cccc\n\ndddd"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_HardSlicesLongParagraph(t *testing.T) {
	long := strings.Repeat("z", 25)
	in := "head\n\n" + long + "\n\ntail"
	chunks := Split(in, 10)

	want := []string{"head", "zzzzzzzzzz", "zzzzzzzzzz", "zzzzz", "tail"}
	if len(chunks) != len(want) {
		t.Fatalf("got %d chunks %q, want %d", len(chunks), chunks, len(want))
	}
	for i := range want {
		if chunks[i] != want[i] {
			t.Errorf("chunk %d = %q, want %q", i, chunks[i], want[i])
		}
	}
}

func TestSplit_NeverExceedsBudget(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 60; i++ {
		b.WriteString(strings.Repeat("word ", i%17+1))
		b.WriteString("\n\n")
	}
	b.WriteString(strings.Repeat("q", 333))
	in := b.String()

	for _, budget := range []int{7, 40, 128, 500} {
		for i, c := range Split(in, budget) {
			if Len(c) > budget {
				t.Errorf("budget %d: chunk %d has %d chars", budget, i, Len(c))
			}
		}
	}
}

func TestSplit_ReassemblesInput(t *testing.T) {
	inputs := []string{
		"alpha beta\n\ngamma\n \n delta\n\n\n\nepsilon",
		strings.Repeat("lorem ipsum dolor sit amet. ", 40) + "\n\n" + strings.Repeat("x", 90),
		"\n\nleading and trailing\n\n",
		"Ünïcödé paragraphs\n\nwith ✓ marks\n\n" + strings.Repeat("ж", 75),
	}
	for _, in := range inputs {
		for _, budget := range []int{5, 16, 33, 64} {
			chunks := Split(in, budget)
			if got, want := reassemble(chunks), stripSeparators(in); got != want {
				t.Errorf("budget %d: reassembled %q, want %q", budget, got, want)
			}
		}
	}
}

func TestSplit_FifteenThousandChars(t *testing.T) {
	para := strings.Repeat("s", 499)
	var parts []string
	for i := 0; i < 30; i++ {
		parts = append(parts, para)
	}
	in := strings.Join(parts, "\n\n")
	if Len(in) < 15000 {
		t.Fatalf("fixture too short: %d", Len(in))
	}

	chunks := Split(in, 4000)
	if len(chunks) < 4 {
		t.Errorf("expected at least 4 chunks, got %d", len(chunks))
	}
}
