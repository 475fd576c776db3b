package content

import "strings"

// delimiters in match precedence: longer runs of the same character first.
var inlineDelimiters = []struct {
	delim string
	kind  SpanKind
}{
	{"$$", SpanDisplayMath},
	{"$", SpanInlineMath},
	{"**", SpanBold},
	{"*", SpanItalic},
	{"`", SpanCode},
}

// Tokenize splits one line into ordered, non-overlapping spans covering the whole line.
//
// At each position the delimiters are tried in precedence order; a span needs a
// non-empty payload and ends at the first closing delimiter of its kind.
// Delimiters without a match are plain text. Payloads are not tokenized further.
func Tokenize(line string) []Span {
	if line == "" {
		return nil
	}

	var spans []Span
	plainStart := 0
	for i := 0; i < len(line); {
		span, end, ok := matchDelimited(line, i)
		if !ok {
			i++
			continue
		}
		if plainStart < i {
			spans = append(spans, Span{Kind: SpanPlain, Text: line[plainStart:i]})
		}
		spans = append(spans, span)
		i = end
		plainStart = end
	}
	if plainStart < len(line) {
		spans = append(spans, Span{Kind: SpanPlain, Text: line[plainStart:]})
	}
	return spans
}

// matchDelimited tries every delimiter at line[i:] and returns the span and the offset past its closing delimiter.
func matchDelimited(line string, i int) (Span, int, bool) {
	switch line[i] {
	case '$', '*', '`':
	default:
		return Span{}, 0, false
	}

	for _, d := range inlineDelimiters {
		if !strings.HasPrefix(line[i:], d.delim) {
			continue
		}
		start := i + len(d.delim)
		if start >= len(line) {
			continue
		}
		// the payload holds at least one character, so the search starts one char in
		searchFrom := start + runeLen(line[start:])
		j := strings.Index(line[searchFrom:], d.delim)
		if j < 0 {
			continue
		}
		stop := searchFrom + j
		return Span{Kind: d.kind, Text: line[start:stop]}, stop + len(d.delim), true
	}
	return Span{}, 0, false
}

func runeLen(s string) int {
	for i := range s {
		if i > 0 {
			return i
		}
	}
	return len(s)
}
