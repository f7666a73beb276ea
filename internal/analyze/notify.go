package analyze

import "regscan/internal/regress"

// NoticeKind classifies a recoverable condition.
type NoticeKind string

const (
	NoticeNoRuns          NoticeKind = "no_runs"
	NoticeListFailed      NoticeKind = "list_failed"
	NoticeArtifactMissing NoticeKind = "artifact_missing"
	NoticeReadFailed      NoticeKind = "read_failed"
)

// Notice records something skipped during a scan.
type Notice struct {
	Kind   NoticeKind
	Config string
	Seed   string
	Path   string
	Err    error
}

// Notifier observes scan progress. Implementations decide what to show.
type Notifier interface {
	ScratchResolved(dir string)
	ConfigurationsListed(names []string)
	ConfigSelected(c regress.Configuration, runs int)
	ArtifactRead(a regress.Artifact, signatures int)
	Notice(n Notice)
}

// NopNotifier ignores everything.
type NopNotifier struct{}

func (NopNotifier) ScratchResolved(string) {}
func (NopNotifier) ConfigurationsListed([]string) {}
func (NopNotifier) ConfigSelected(regress.Configuration, int) {}
func (NopNotifier) ArtifactRead(regress.Artifact, int) {}
func (NopNotifier) Notice(Notice) {}

var _ Notifier = NopNotifier{}
