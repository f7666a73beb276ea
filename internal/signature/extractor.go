// Package signature pulls normalized error signatures out of simulator
// logs and status files.
package signature

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"iter"
	"regexp"
	"strings"
	"unicode/utf8"

	"regscan/internal/regress"
	"regscan/internal/settings"
)

// MaxLineBytes bounds a single log line. Longer lines fail the artifact.
const MaxLineBytes = 1 << 20

type matcher struct {
	name  string
	re    *regexp.Regexp
	group int // submatch index holding the signature; 0 = whole match
}

// Extractor applies an ordered list of patterns to artifact text.
type Extractor struct {
	matchers []matcher
}

// New compiles patterns in order.
func New(patterns []settings.Pattern) (*Extractor, error) {
	e := &Extractor{}
	for _, p := range patterns {
		re, err := regexp.Compile(p.Regexp)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q: %w", p.Name, err)
		}
		group := re.SubexpIndex("sig")
		if group < 0 {
			group = 0
			if re.NumSubexp() > 0 {
				group = 1
			}
		}
		e.matchers = append(e.matchers, matcher{name: p.Name, re: re, group: group})
	}
	return e, nil
}

// Line returns the signatures on one line. The first pattern that matches
// owns the line, so a marker recognised by two patterns counts once.
func (e *Extractor) Line(line string) []string {
	for _, m := range e.matchers {
		found := m.re.FindAllStringSubmatch(line, -1)
		if len(found) == 0 {
			continue
		}
		var sigs []string
		for _, sub := range found {
			if sig := Normalize(sub[m.group]); sig != "" {
				sigs = append(sigs, sig)
			}
		}
		return sigs
	}
	return nil
}

// Signatures streams r line by line and yields each signature found.
// Content that is not text (a NUL byte, invalid UTF-8, a line over
// MaxLineBytes) or a failed read yields a single ErrArtifactRead error and
// ends the sequence.
func (e *Extractor) Signatures(r io.Reader) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64*1024), MaxLineBytes)
		lineNo := 0
		for sc.Scan() {
			lineNo++
			raw := sc.Bytes()
			if bytes.IndexByte(raw, 0) >= 0 || !utf8.Valid(raw) {
				yield("", fmt.Errorf("%w: binary content at line %d", regress.ErrArtifactRead, lineNo))
				return
			}
			for _, sig := range e.Line(string(raw)) {
				if !yield(sig, nil) {
					return
				}
			}
		}
		if err := sc.Err(); err != nil {
			yield("", fmt.Errorf("%w: after line %d: %v", regress.ErrArtifactRead, lineNo, err))
		}
	}
}

// Collect drains Signatures. On error nothing is returned but the error,
// so a half-read artifact never reaches a tally.
func (e *Extractor) Collect(r io.Reader) ([]string, error) {
	var sigs []string
	for sig, err := range e.Signatures(r) {
		if err != nil {
			return nil, err
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

var delimiterRun = regexp.MustCompile(`[\s\-.:]+`)

// Normalize trims s and collapses runs of whitespace, '-', '.' and ':'
// into a single '_'.
func Normalize(s string) string {
	s = delimiterRun.ReplaceAllString(strings.TrimSpace(s), "_")
	return strings.Trim(s, "_")
}
