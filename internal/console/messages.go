package console

// Tag marks a console line with its severity.
type Tag string

const (
	TagNone    Tag = ""
	TagInfo    Tag = "info"
	TagSuccess Tag = "success"
	TagWarning Tag = "warning"
	TagError   Tag = "error"
)

// Kind identifies a message template.
type Kind string

const (
	Opening         Kind = "opening"
	NoArgs          Kind = "no_args"
	VerboseEnabled  Kind = "verbose"
	ConfigSupplied  Kind = "config_supplied"
	FastSearch      Kind = "fast_search"
	ScratchResolved Kind = "scratch_resolved"
	Configurations  Kind = "configurations"
	ConfigSelected  Kind = "config_selected"
	FileRead        Kind = "file_read"
	FileReadFailed  Kind = "file_read_failed"
	ListFailed      Kind = "list_failed"
	NoRuns          Kind = "no_runs"
	ArtifactMissing Kind = "artifact_missing"
	WrongDirectory  Kind = "wrong_directory"
	ScratchMissing  Kind = "scratch_missing"
	ConfigNotFound  Kind = "config_not_found"
	Failed          Kind = "failed"
	JobDone         Kind = "job_done"
	Summary         Kind = "summary"
	Goodbye         Kind = "goodbye"
)

// Template is a fmt format string plus the tag it is printed with.
type Template struct {
	Tag  Tag
	Text string
}

// DefaultTags are printed in front of tagged messages.
func DefaultTags() map[Tag]string {
	return map[Tag]string{
		TagInfo:    "***Info: ",
		TagSuccess: "***Success: ",
		TagWarning: "***Warning: ",
		TagError:   "***Error: ",
	}
}

const rule = "\t==========================================================================="

// DefaultTemplates returns the stock wording for every Kind.
func DefaultTemplates() map[Kind]Template {
	return map[Kind]Template{
		Opening:         {TagNone, "\n" + rule + "\n\t\tRunning %s to Analyse the Regression Results\n" + rule + "\n"},
		NoArgs:          {TagInfo, "No optional arguments were supplied."},
		VerboseEnabled:  {TagInfo, "Verbosity has been enabled from the command line."},
		ConfigSupplied:  {TagInfo, "The following configuration has been supplied on the command line: %s"},
		FastSearch:      {TagInfo, "A fast search has been requested on the command line."},
		ScratchResolved: {TagInfo, "The regression results are at %s"},
		Configurations:  {TagInfo, "%s will be analysed: %s"},
		ConfigSelected:  {TagInfo, "Analysing %s (%s)."},
		FileRead:        {TagSuccess, "The %s at %s was read in successfully (%s)."},
		FileReadFailed:  {TagError, "The file at %s could not be read in successfully: %v"},
		ListFailed:      {TagError, "The runs of config '%s' could not be listed: %v"},
		NoRuns:          {TagWarning, "No results were found for the config '%s'."},
		ArtifactMissing: {TagWarning, "Run %s of config '%s' has no %s; skipping it."},
		WrongDirectory:  {TagError, "The script appears to have been called from the wrong directory.\nThe %s repository can't be found."},
		ScratchMissing:  {TagError, "The regression results area %s does not exist."},
		ConfigNotFound:  {TagError, "The config '%s' could not be located - double-check the name."},
		Failed:          {TagError, "%v"},
		JobDone:         {TagNone, "\n" + rule + "\n\t\tThe regression analysis is below!\n" + rule},
		Summary:         {TagInfo, "Scanned %s in %s: %s, %s missing, %s unreadable."},
		Goodbye:         {TagNone, "\n" + rule + "\n\t\tSuccess! The analysis report is at %s.\n" + rule},
	}
}
