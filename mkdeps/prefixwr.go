package mkdeps

import (
	"bytes"
	"io"
)

// prefixWriter writes prefix at the start of every line written to w.
type prefixWriter struct {
	w      io.Writer
	prefix []byte
	inLine bool // not at start of line (zero…)
}

func newPrefixWriter(w io.Writer, prefix string) *prefixWriter {
	return &prefixWriter{w: w, prefix: []byte(prefix)}
}

func (pw *prefixWriter) Write(p []byte) (n int, err error) {
	for len(p) > 0 {
		nlIdx := bytes.IndexByte(p, '\n')
		if nlIdx < 0 {
			if !pw.inLine {
				if _, err := pw.w.Write(pw.prefix); err != nil {
					return n, err
				}
			}
			pw.inLine = true
			m, err := pw.w.Write(p)
			return n + m, err
		}
		if !pw.inLine && nlIdx > 0 {
			if _, err := pw.w.Write(pw.prefix); err != nil {
				return n, err
			}
		}
		nlIdx++
		m, err := pw.w.Write(p[:nlIdx])
		n += m
		if err != nil {
			return n, err
		}
		pw.inLine = false
		p = p[nlIdx:]
	}
	return n, nil
}
