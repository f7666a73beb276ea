// Package analyze runs the regression scan end to end:
// resolve the scratch area, enumerate configurations, select one artifact
// per run, extract signatures and tally them.
package analyze

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"regscan/internal/logging"
	"regscan/internal/regress"
	"regscan/internal/scratch"
	"regscan/internal/settings"
	"regscan/internal/signature"
	"regscan/internal/tally"
)

// Options selects what one scan covers.
type Options struct {
	Config string // scan only this configuration when set
	Mode   regress.Mode
}

// Stats summarises a scan. Read failures are counted here, never in the tally.
type Stats struct {
	Configurations         int
	EmptyConfigurations    int // listed fine but hold no runs
	UnlistedConfigurations int // run listing failed
	Runs                   int
	Artifacts              int
	MissingArtifacts       int
	ReadFailures           int
	Signatures             int
	ByStatus               map[regress.Status]int
}

// Result is the outcome of a completed scan.
type Result struct {
	ScratchDir string
	Mode       regress.Mode
	Tally      *tally.Tally
	Stats      Stats
	Notices    []Notice
}

// Pipeline wires the scan stages together. It is single-threaded; use one
// Pipeline per goroutine.
type Pipeline struct {
	settings  settings.Settings
	resolver  *scratch.Resolver
	scanner   *regress.Scanner
	extractor *signature.Extractor
	notifier  Notifier
	open      func(string) (io.ReadCloser, error)
	log       *slog.Logger
}

// New builds a Pipeline for the given site settings. n may be nil.
func New(s settings.Settings, n Notifier) (*Pipeline, error) {
	ext, err := signature.New(s.Patterns)
	if err != nil {
		return nil, err
	}
	if n == nil {
		n = NopNotifier{}
	}
	return &Pipeline{
		settings:  s,
		resolver:  scratch.NewResolver(s),
		scanner:   regress.NewScanner(s),
		extractor: ext,
		notifier:  n,
		open:      func(p string) (io.ReadCloser, error) { return os.Open(p) },
		log:       logging.New("analyze"),
	}, nil
}

// Configurations resolves the scratch area for cwd and lists what a scan
// with the same config filter would cover.
func (p *Pipeline) Configurations(cwd, only string) (string, []regress.Configuration, error) {
	dir, err := p.resolver.Locate(cwd)
	if err != nil {
		return "", nil, err
	}
	seq, err := regress.NewEnumerator(dir, p.settings.ConfigPrefix).Configurations(only)
	if err != nil {
		return dir, nil, err
	}
	var cfgs []regress.Configuration
	for c := range seq {
		cfgs = append(cfgs, c)
	}
	return dir, cfgs, nil
}

// Run scans the regression under the scratch area derived from cwd.
// Fatal conditions (wrong directory, missing scratch area, unknown
// configuration) return an error before anything is scanned. Everything
// else is recorded as a Notice and the scan continues.
func (p *Pipeline) Run(cwd string, opts Options) (*Result, error) {
	dir, cfgs, err := p.Configurations(cwd, opts.Config)
	if err != nil {
		if !regress.IsFatal(err) {
			err = fmt.Errorf("list configurations: %w", err)
		}
		return nil, err
	}
	p.log.Debug("scratch area resolved", slog.String("dir", dir))
	p.notifier.ScratchResolved(dir)
	names := make([]string, len(cfgs))
	for i, c := range cfgs {
		names[i] = c.Name
	}
	p.notifier.ConfigurationsListed(names)

	res := &Result{
		ScratchDir: dir,
		Mode:       opts.Mode,
		Tally:      tally.New(),
		Stats:      Stats{ByStatus: make(map[regress.Status]int)},
	}
	for _, c := range cfgs {
		p.scanConfiguration(res, c, opts.Mode)
	}
	p.log.Debug("scan complete",
		slog.Int("configurations", res.Stats.Configurations),
		slog.Int("artifacts", res.Stats.Artifacts),
		slog.Int("signatures", res.Stats.Signatures),
	)
	return res, nil
}

func (p *Pipeline) scanConfiguration(res *Result, c regress.Configuration, mode regress.Mode) {
	res.Stats.Configurations++
	runs, err := p.scanner.Runs(c)
	if err != nil {
		kind := NoticeNoRuns
		if errors.Is(err, regress.ErrNoRuns) {
			res.Stats.EmptyConfigurations++
		} else {
			kind = NoticeListFailed
			res.Stats.UnlistedConfigurations++
		}
		p.record(res, Notice{Kind: kind, Config: c.Name, Path: c.Dir, Err: err})
		return
	}
	p.log.Debug("configuration selected", slog.String("config", c.Name), slog.Int("runs", len(runs)))
	p.notifier.ConfigSelected(c, len(runs))

	for _, r := range runs {
		res.Stats.Runs++
		a, err := p.scanner.Select(r, mode)
		if err != nil {
			res.Stats.MissingArtifacts++
			p.record(res, Notice{Kind: NoticeArtifactMissing, Config: c.Name, Seed: r.Seed, Path: r.Dir, Err: err})
			continue
		}
		p.scanArtifact(res, a)
	}
}

func (p *Pipeline) scanArtifact(res *Result, a regress.Artifact) {
	sigs, err := p.readSignatures(a.Path)
	if err != nil {
		res.Stats.ReadFailures++
		p.record(res, Notice{Kind: NoticeReadFailed, Config: a.Run.Config, Seed: a.Run.Seed, Path: a.Path, Err: err})
		return
	}
	res.Stats.Artifacts++
	if a.Status != regress.StatusNone {
		res.Stats.ByStatus[a.Status]++
	}
	for _, sig := range sigs {
		res.Tally.Add(a.Run.Config, a.Run.Seed, sig)
	}
	res.Stats.Signatures += len(sigs)
	p.log.Debug("tally updated",
		slog.String("config", a.Run.Config),
		slog.String("seed", a.Run.Seed),
		slog.Int("signatures", len(sigs)),
	)
	p.notifier.ArtifactRead(a, len(sigs))
}

func (p *Pipeline) readSignatures(path string) ([]string, error) {
	f, err := p.open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", regress.ErrArtifactRead, err)
	}
	defer f.Close()
	return p.extractor.Collect(f)
}

func (p *Pipeline) record(res *Result, n Notice) {
	res.Notices = append(res.Notices, n)
	p.log.Debug("skipped", slog.String("kind", string(n.Kind)), slog.String("path", n.Path), slog.Any("error", n.Err))
	p.notifier.Notice(n)
}
