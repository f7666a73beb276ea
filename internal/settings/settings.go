// Package settings holds the regression layout conventions and signature
// patterns that drive a scan. Everything the scanner treats as a fixed name
// lives here so a site can override it with a YAML or JSON file.
package settings

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// SeedPlaceholder is replaced by the run's seed in LogFilePattern.
const SeedPlaceholder = "{seed}"

// Artifact status codes a status suffix may map to.
const (
	StatusGood    = "good"
	StatusBad     = "bad"
	StatusUnknown = "unknown"
)

// Pattern is one named error-signature regular expression.
// The signature is the named group "sig", else the first capture group,
// else the whole match.
type Pattern struct {
	Name   string `json:"name" yaml:"name"`
	Regexp string `json:"regexp" yaml:"regexp"`
}

// StatusSuffix maps a status file suffix to an artifact status code.
type StatusSuffix struct {
	Suffix string `json:"suffix" yaml:"suffix"`
	Status string `json:"status" yaml:"status"`
}

// Settings is the full set of layout conventions for one regression site.
type Settings struct {
	RepoName       string         `json:"repo_name" yaml:"repo_name"`
	User           string         `json:"user,omitempty" yaml:"user,omitempty"`
	ScratchBase    string         `json:"scratch_base" yaml:"scratch_base"`
	ResultsDir     string         `json:"results_dir" yaml:"results_dir"`
	ConfigPrefix   string         `json:"config_prefix" yaml:"config_prefix"`
	RunPrefix      string         `json:"run_prefix" yaml:"run_prefix"`
	LogFilePattern string         `json:"log_file_pattern" yaml:"log_file_pattern"`
	StatusPrefix   string         `json:"status_prefix" yaml:"status_prefix"`
	StatusSuffixes []StatusSuffix `json:"status_suffixes" yaml:"status_suffixes"`
	Patterns       []Pattern      `json:"patterns" yaml:"patterns"`

	// Tags and Messages override console tags and message templates,
	// keyed by tag name (info, success, warning, error) and message kind.
	Tags     map[string]string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Messages map[string]string `json:"messages,omitempty" yaml:"messages,omitempty"`
}

// DefaultPatterns recognise the failure markers of the common HDL simulators.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "uvm", Regexp: `UVM_(?:ERROR|FATAL)\b[^\[]*\[(?P<sig>[^\]]+)\]`},
		{Name: "vcs", Regexp: `Error-\[(?P<sig>[^\]]+)\]`},
		{Name: "xcelium", Regexp: `\*[EF],(?P<sig>[A-Za-z0-9_]+)`},
		{Name: "questa", Regexp: `\*\* (?:Error|Fatal)(?: \(suppressible\))?: \((?P<sig>vsim-\d+)\)`},
	}
}

// Default returns the conventions of the mcip regression flow.
func Default() Settings {
	return Settings{
		RepoName:       "mcip",
		ScratchBase:    "/lan/dscratch",
		ResultsDir:     "regression_results",
		ConfigPrefix:   "mcip_",
		RunPrefix:      "run_",
		LogFilePattern: "sim_" + SeedPlaceholder + ".log",
		StatusPrefix:   "status_",
		StatusSuffixes: []StatusSuffix{
			{Suffix: "GOOD", Status: StatusGood},
			{Suffix: "BAD", Status: StatusBad},
			{Suffix: "UNKNOWN", Status: StatusUnknown},
		},
		Patterns: DefaultPatterns(),
	}
}

// LogFileName returns the full-log file name for seed.
func (s Settings) LogFileName(seed string) string {
	return strings.ReplaceAll(s.LogFilePattern, SeedPlaceholder, seed)
}

// Validate reports every problem with s at once.
func (s Settings) Validate() error {
	var errs []error
	if s.RepoName == "" {
		errs = append(errs, errors.New("repo_name is empty"))
	}
	if s.ScratchBase == "" {
		errs = append(errs, errors.New("scratch_base is empty"))
	}
	if s.ConfigPrefix == "" {
		errs = append(errs, errors.New("config_prefix is empty"))
	}
	if s.RunPrefix == "" {
		errs = append(errs, errors.New("run_prefix is empty"))
	}
	if s.LogFilePattern == "" {
		errs = append(errs, errors.New("log_file_pattern is empty"))
	}
	if s.StatusPrefix == "" {
		errs = append(errs, errors.New("status_prefix is empty"))
	}
	if len(s.StatusSuffixes) == 0 {
		errs = append(errs, errors.New("status_suffixes is empty"))
	}
	for i, ss := range s.StatusSuffixes {
		if ss.Suffix == "" {
			errs = append(errs, fmt.Errorf("status_suffixes[%d]: suffix is empty", i))
		}
		switch ss.Status {
		case StatusGood, StatusBad, StatusUnknown:
		default:
			errs = append(errs, fmt.Errorf("status_suffixes[%d]: unknown status %q", i, ss.Status))
		}
	}
	if len(s.Patterns) == 0 {
		errs = append(errs, errors.New("patterns is empty"))
	}
	for _, p := range s.Patterns {
		if _, err := regexp.Compile(p.Regexp); err != nil {
			errs = append(errs, fmt.Errorf("pattern %q: %w", p.Name, err))
		}
	}
	return errors.Join(errs...)
}
