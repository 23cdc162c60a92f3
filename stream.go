package reindent

import (
	"io"
	"iter"
	"strings"
)

// Lines yields the physical lines of src split on '\n'. Empty lines are kept,
// so a trailing newline yields a final empty line and "" yields one empty line.
func Lines(src string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for {
			i := strings.IndexByte(src, '\n')
			if i < 0 {
				yield(src)
				return
			}
			if !yield(src[:i]) {
				return
			}
			src = src[i+1:]
		}
	}
}

// ReindentSeq is the streaming form of [Reindent]. Each call to the returned
// sequence starts from depth zero.
func ReindentSeq(seq iter.Seq[string], cfg Config, rules Rules) iter.Seq[string] {
	return func(yield func(string) bool) {
		st := newState(cfg, rules)
		for line := range seq {
			if !st.step(line, yield) {
				return
			}
		}
	}
}

// WriteIter reindents lines from seq and writes them to w as they arrive.
// Output lines are joined with '\n'; no newline is added after the last line.
func WriteIter(w io.Writer, seq iter.Seq[string], cfg Config, rules Rules) error {
	first := true
	var writeErr error
	for line := range ReindentSeq(seq, cfg, rules) {
		if !first {
			if _, err := io.WriteString(w, "\n"); err != nil {
				writeErr = err
				break
			}
		}
		first = false
		if _, err := io.WriteString(w, line); err != nil {
			writeErr = err
			break
		}
	}
	return writeErr
}

// WriteChan reindents lines received from ch and writes them to w.
// It is a thin wrapper around [WriteIter].
func WriteChan(w io.Writer, ch <-chan string, cfg Config, rules Rules) error {
	return WriteIter(w, chanToIter(ch), cfg, rules)
}

func chanToIter[T any](ch <-chan T) iter.Seq[T] {
	return func(yield func(T) bool) {
		for item := range ch {
			if !yield(item) {
				return
			}
		}
	}
}
