package analyze

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"regscan/internal/regress"
	"regscan/internal/settings"
	"regscan/internal/tally"
)

const testCwd = "/home/tester/work/mcip/build"

// fixture lays out files under <base>/tester/work/regression_results and
// returns settings pointing at it. Keys ending in "/" are directories.
func fixture(t *testing.T, files map[string]string) settings.Settings {
	t.Helper()
	base := t.TempDir()
	root := filepath.Join(base, "tester", "work", "regression_results")
	if err := os.MkdirAll(root, 0o755); err != nil {
		t.Fatal(err)
	}
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if strings.HasSuffix(name, "/") {
			if err := os.MkdirAll(p, 0o755); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	s := settings.Default()
	s.ScratchBase = base
	s.User = "tester"
	return s
}

type recorder struct {
	NopNotifier
	selected []string
	read     []string
	notices  []NoticeKind
}

func (r *recorder) ConfigSelected(c regress.Configuration, _ int) {
	r.selected = append(r.selected, c.Name)
}

func (r *recorder) ArtifactRead(a regress.Artifact, _ int) {
	r.read = append(r.read, a.Run.Config+"/"+a.Run.Seed)
}

func (r *recorder) Notice(n Notice) { r.notices = append(r.notices, n.Kind) }

func uvm(id string) string {
	return "UVM_ERROR /tb/env.sv(10) @ 100ns: uvm_test_top.env [" + id + "] failure\n"
}

func run(t *testing.T, s settings.Settings, opts Options) (*Result, *recorder) {
	t.Helper()
	rec := &recorder{}
	p, err := New(s, rec)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	res, err := p.Run(testCwd, opts)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return res, rec
}

func render(t *testing.T, tl *tally.Tally) string {
	t.Helper()
	var buf bytes.Buffer
	if err := tl.Render(&buf, tally.Plain); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestRun_FullLogReportOrder(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_base/run_1/sim_1.log": uvm("ERR_TIMEOUT") + "UVM_INFO @ 0: r [X] fine\n" + uvm("ERR_PARITY"),
		"mcip_base/run_2/sim_2.log": uvm("ERR_TIMEOUT") + uvm("ERR_TIMEOUT"),
	})
	res, rec := run(t, s, Options{Mode: regress.FullLog})

	if diff := cmp.Diff("ERR_TIMEOUT: 3\nERR_PARITY: 1\n", render(t, res.Tally)); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"mcip_base/1", "mcip_base/2"}, rec.read); diff != "" {
		t.Errorf("artifacts read (-want +got):\n%s", diff)
	}
	if res.Stats.Artifacts != 2 || res.Stats.Signatures != 4 || len(res.Notices) != 0 {
		t.Errorf("stats %+v notices %v", res.Stats, res.Notices)
	}
}

func TestRun_FastSearchMissingStatus(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_a/run_1/status_GOOD": uvm("ERR_LATE"),
		"mcip_a/run_2/sim_2.log":   uvm("ERR_NEVER_READ"),
	})
	res, rec := run(t, s, Options{Mode: regress.FastSearch})

	if len(rec.read) != 1 || rec.read[0] != "mcip_a/1" {
		t.Errorf("want exactly run 1 scanned, got %v", rec.read)
	}
	if diff := cmp.Diff([]NoticeKind{NoticeArtifactMissing}, rec.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
	if res.Notices[0].Seed != "2" {
		t.Errorf("warning should name run 2, got %+v", res.Notices[0])
	}
	if res.Stats.ByStatus[regress.StatusGood] != 1 || res.Stats.MissingArtifacts != 1 {
		t.Errorf("stats %+v", res.Stats)
	}
	if res.Tally.Count("ERR_NEVER_READ") != 0 {
		t.Error("full log must not be read in fast-search mode")
	}
}

func TestRun_ConfigWithoutRuns(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_a/run_1/sim_1.log": uvm("ERR_A"),
		"mcip_empty/notes.txt":   "",
	})
	res, rec := run(t, s, Options{})

	if res.Tally.Total() != 1 {
		t.Errorf("empty configuration changed the tally: total %d", res.Tally.Total())
	}
	if diff := cmp.Diff([]NoticeKind{NoticeNoRuns}, rec.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
	if !errors.Is(res.Notices[0].Err, regress.ErrNoRuns) || res.Notices[0].Config != "mcip_empty" {
		t.Errorf("notice %+v", res.Notices[0])
	}
	if res.Stats.Configurations != 2 || res.Stats.EmptyConfigurations != 1 || res.Stats.UnlistedConfigurations != 0 {
		t.Errorf("stats %+v", res.Stats)
	}
}

func TestRun_ListingFailureNotEmpty(t *testing.T) {
	s := fixture(t, map[string]string{"mcip_a/run_1/sim_1.log": uvm("ERR_A")})
	rec := &recorder{}
	p, err := New(s, rec)
	if err != nil {
		t.Fatal(err)
	}
	res := &Result{Tally: tally.New(), Stats: Stats{ByStatus: make(map[regress.Status]int)}}
	gone := regress.Configuration{Name: "mcip_gone", Dir: filepath.Join(t.TempDir(), "mcip_gone")}
	p.scanConfiguration(res, gone, regress.FullLog)

	if diff := cmp.Diff([]NoticeKind{NoticeListFailed}, rec.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
	if errors.Is(res.Notices[0].Err, regress.ErrNoRuns) {
		t.Errorf("listing failure reported as no runs: %v", res.Notices[0].Err)
	}
	want := Stats{Configurations: 1, UnlistedConfigurations: 1, ByStatus: map[regress.Status]int{}}
	if diff := cmp.Diff(want, res.Stats); diff != "" {
		t.Errorf("stats (-want +got):\n%s", diff)
	}
}

func TestRun_ExplicitConfig(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_a/run_1/sim_1.log": uvm("ERR_A"),
		"mcip_b/run_1/sim_1.log": uvm("ERR_B"),
	})
	res, rec := run(t, s, Options{Config: "mcip_b"})
	if diff := cmp.Diff([]string{"mcip_b"}, rec.selected); diff != "" {
		t.Errorf("selected (-want +got):\n%s", diff)
	}
	if res.Tally.Count("ERR_A") != 0 || res.Tally.Count("ERR_B") != 1 {
		t.Errorf("report:\n%s", render(t, res.Tally))
	}
}

func TestRun_ConfigNotFound(t *testing.T) {
	s := fixture(t, map[string]string{"mcip_a/run_1/sim_1.log": uvm("ERR_A")})
	rec := &recorder{}
	p, err := New(s, rec)
	if err != nil {
		t.Fatal(err)
	}
	res, err := p.Run(testCwd, Options{Config: "mcip_missing"})
	if !errors.Is(err, regress.ErrConfigNotFound) {
		t.Fatalf("want ErrConfigNotFound, got %v", err)
	}
	if res != nil || len(rec.selected) != 0 {
		t.Errorf("nothing should be scanned, got %v", rec.selected)
	}
}

func TestRun_FatalPaths(t *testing.T) {
	s := fixture(t, nil)
	p, err := New(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := p.Run("/home/tester/work/other", Options{}); !errors.Is(err, regress.ErrWrongDirectory) {
		t.Errorf("want ErrWrongDirectory, got %v", err)
	}
	if _, err := p.Run("/home/tester/elsewhere/mcip", Options{}); !errors.Is(err, regress.ErrScratchAreaMissing) {
		t.Errorf("want ErrScratchAreaMissing, got %v", err)
	}
}

func TestRun_UnreadableArtifactSkipped(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_a/run_1/sim_1.log": uvm("ERR_A") + "\x00\x00\x00",
		"mcip_a/run_2/sim_2.log": uvm("ERR_B"),
	})
	res, rec := run(t, s, Options{})

	if res.Tally.Count("ERR_A") != 0 {
		t.Error("signatures from an unreadable artifact must not be tallied")
	}
	if res.Tally.Count("ERR_B") != 1 {
		t.Error("later artifacts must still be scanned")
	}
	if diff := cmp.Diff([]NoticeKind{NoticeReadFailed}, rec.notices); diff != "" {
		t.Errorf("notices (-want +got):\n%s", diff)
	}
	if res.Stats.ReadFailures != 1 || res.Stats.Artifacts != 1 {
		t.Errorf("stats %+v", res.Stats)
	}
}

func TestRun_Deterministic(t *testing.T) {
	s := fixture(t, map[string]string{
		"mcip_a/run_1/sim_1.log":   uvm("ERR_C") + uvm("ERR_A"),
		"mcip_a/run_10/sim_10.log": uvm("ERR_B") + uvm("ERR_A"),
		"mcip_b/run_3/sim_3.log":   uvm("ERR_B") + uvm("ERR_D"),
		"mcip_c/run_1/sim_1.log":   uvm("ERR_C"),
	})
	first, _ := run(t, s, Options{})
	second, _ := run(t, s, Options{})
	a, b := render(t, first.Tally), render(t, second.Tally)
	if a != b {
		t.Fatalf("reports differ:\n%s\nvs\n%s", a, b)
	}
	want := "ERR_C: 2\nERR_A: 2\nERR_B: 2\nERR_D: 1\n"
	if diff := cmp.Diff(want, a); diff != "" {
		t.Errorf("report (-want +got):\n%s", diff)
	}
}

func TestConfigurations(t *testing.T) {
	s := fixture(t, map[string]string{"mcip_b/": "", "mcip_a/": "", "misc/": ""})
	p, err := New(s, nil)
	if err != nil {
		t.Fatal(err)
	}
	dir, cfgs, err := p.Configurations(testCwd, "")
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(dir) != "regression_results" {
		t.Errorf("dir = %s", dir)
	}
	var names []string
	for _, c := range cfgs {
		names = append(names, c.Name)
	}
	if diff := cmp.Diff([]string{"mcip_a", "mcip_b"}, names); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
