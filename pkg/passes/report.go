package passes

// Warning records a file a pass had to leave untouched
type Warning struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// Report is the outcome of one pass
type Report struct {
	Pass      string    `json:"pass"`
	Created   int       `json:"created"`
	Moved     int       `json:"moved"`
	Renamed   int       `json:"renamed"`
	Rewritten int       `json:"rewritten"`
	Warnings  []Warning `json:"warnings"`
}

// NewReport returns an empty report for the named pass
func NewReport(pass string) *Report {
	return &Report{Pass: pass, Warnings: []Warning{}}
}

// Changed returns the number of items the pass changed
func (r *Report) Changed() int {
	return r.Created + r.Moved + r.Renamed + r.Rewritten
}

// Warn records a warning for a pack-relative path
func (r *Report) Warn(path string, err error) {
	r.Warnings = append(r.Warnings, Warning{Path: path, Reason: err.Error()})
}
