package report

// TextSpan represents a range of source text.  Lines and columns are
// one-indexed; the end column is the column just after the last character of
// the span so that `EndCol - StartCol` is the width of a single line span.
type TextSpan struct {
	// The line and column beginning the text span.
	StartLine, StartCol int

	// The line and column ending the text span.
	EndLine, EndCol int
}

// NewSpan returns a span that starts at the given line and column and covers
// width characters on that line.
func NewSpan(line, col, width int) *TextSpan {
	line, col = clampPos(line, col)
	if width < 1 {
		width = 1
	}

	return &TextSpan{
		StartLine: line,
		StartCol:  col,
		EndLine:   line,
		EndCol:    col + width,
	}
}

// NewSpanOver returns a new text span which spans over and between the two
// given text spans.
func NewSpanOver(start, end *TextSpan) *TextSpan {
	return &TextSpan{
		StartLine: start.StartLine,
		StartCol:  start.StartCol,
		EndLine:   end.EndLine,
		EndCol:    end.EndCol,
	}
}

// clampPos makes sure no position is ever reported at or below zero.
func clampPos(line, col int) (int, int) {
	if line < 1 {
		line = 1
	}

	if col < 1 {
		col = 1
	}

	return line, col
}
