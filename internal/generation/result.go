package generation

// Status is the terminal state of one file's generation.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"    // vendor reported failure
	StatusTimedOut  Status = "timed_out" // poll budget exhausted
	StatusError     Status = "error"     // config, input, network or API error
)

// Result is the outcome for a single source file.
type Result struct {
	Path     string `json:"path,omitempty"`
	Success  bool   `json:"success"`
	Status   Status `json:"status"`
	URL      string `json:"url,omitempty"`
	HTMLPath string `json:"html_path,omitempty"`
	Title    string `json:"title,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Summary is the outcome of a batch run.
type Summary struct {
	Success   bool     `json:"success"`
	RunID     string   `json:"run_id,omitempty"`
	Total     int      `json:"total"`
	Processed int      `json:"processed"`
	Failed    int      `json:"failed"`
	Results   []Result `json:"results"`
	Message   string   `json:"message,omitempty"`
	Error     string   `json:"error,omitempty"`
}

func errorResult(path string, msg string) Result {
	return Result{Path: path, Status: StatusError, Error: msg}
}

func errorSummary(msg string) Summary {
	return Summary{Results: []Result{}, Error: msg}
}
