// Package console prints tagged progress, warnings and errors for a scan.
// Wording lives in templates keyed by Kind so callers never build
// presentation strings themselves.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"regscan/internal/analyze"
	"regscan/internal/display"
	"regscan/internal/format"
	"regscan/internal/regress"
	"regscan/internal/settings"
)

// Reporter writes console messages. Progress is shown only when verbose.
type Reporter struct {
	out       io.Writer
	verbose   bool
	repoName  string
	tags      map[Tag]string
	templates map[Kind]Template
}

// New returns a Reporter using the default wording overlaid with the tag
// and message overrides from s.
func New(out io.Writer, verbose bool, s settings.Settings) *Reporter {
	r := &Reporter{
		out:       out,
		verbose:   verbose,
		repoName:  s.RepoName,
		tags:      DefaultTags(),
		templates: DefaultTemplates(),
	}
	for name, text := range s.Tags {
		r.tags[Tag(name)] = text
	}
	for name, text := range s.Messages {
		k := Kind(name)
		tpl := r.templates[k]
		tpl.Text = text
		r.templates[k] = tpl
	}
	return r
}

// Say prints the message for k unconditionally.
func (r *Reporter) Say(k Kind, args ...any) {
	tpl, ok := r.templates[k]
	if !ok {
		tpl = Template{Tag: TagInfo, Text: string(k)}
	}
	fmt.Fprintln(r.out, r.tags[tpl.Tag]+fmt.Sprintf(tpl.Text, args...))
}

// Progress prints the message for k only in verbose mode.
func (r *Reporter) Progress(k Kind, args ...any) {
	if r.verbose {
		r.Say(k, args...)
	}
}

// Fatal prints the tagged message for a scan-aborting error.
func (r *Reporter) Fatal(err error) {
	var nf *regress.NotFoundError
	switch {
	case errors.Is(err, regress.ErrWrongDirectory):
		r.Say(WrongDirectory, r.repoName)
	case errors.Is(err, regress.ErrScratchAreaMissing) && errors.As(err, &nf):
		r.Say(ScratchMissing, nf.Name)
	case errors.Is(err, regress.ErrConfigNotFound) && errors.As(err, &nf):
		r.Say(ConfigNotFound, nf.Name)
	default:
		r.Say(Failed, err)
	}
}

// Summary prints the scan statistics line, plus the status breakdown
// when status files were scanned.
func (r *Reporter) Summary(st analyze.Stats) {
	r.Say(Summary,
		display.Plural(st.Artifacts, "artifact"),
		display.Plural(st.Configurations, "configuration"),
		display.Plural(st.Signatures, "signature"),
		display.Plural(st.MissingArtifacts, "run"),
		display.Plural(st.ReadFailures, "file"),
	)
	if len(st.ByStatus) == 0 {
		return
	}
	tb := format.NewTable(format.ASCII)
	tb.Header("Status", "Runs")
	for _, status := range []regress.Status{regress.StatusGood, regress.StatusBad, regress.StatusUnknown} {
		tb.Row(display.Status(string(status)), st.ByStatus[status])
	}
	tb.AlignRight(2)
	fmt.Fprintln(r.out, tb.String())
}

func (r *Reporter) ScratchResolved(dir string) {
	r.Progress(ScratchResolved, dir)
}

func (r *Reporter) ConfigurationsListed(names []string) {
	list := strings.Join(names, ", ")
	if list == "" {
		list = "none"
	}
	r.Progress(Configurations, display.Plural(len(names), "configuration"), list)
}

func (r *Reporter) ConfigSelected(c regress.Configuration, runs int) {
	r.Progress(ConfigSelected, c.Name, display.Plural(runs, "run"))
}

func (r *Reporter) ArtifactRead(a regress.Artifact, signatures int) {
	what := "log file"
	if a.Status != regress.StatusNone {
		what = "status file (" + display.Status(string(a.Status)) + ")"
	}
	r.Progress(FileRead, what, a.Path, display.Plural(signatures, "signature"))
}

func (r *Reporter) Notice(n analyze.Notice) {
	switch n.Kind {
	case analyze.NoticeNoRuns:
		r.Progress(NoRuns, n.Config)
	case analyze.NoticeListFailed:
		r.Progress(ListFailed, n.Config, n.Err)
	case analyze.NoticeArtifactMissing:
		r.Progress(ArtifactMissing, n.Seed, n.Config, "log or status file")
	case analyze.NoticeReadFailed:
		r.Progress(FileReadFailed, n.Path, n.Err)
	}
}

var _ analyze.Notifier = (*Reporter)(nil)
