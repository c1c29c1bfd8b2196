package batch

import "errors"

// Report collects the per-file results of CompressDir, ordered by input name.
type Report struct {
	Files []FileResult
}

// Succeeded returns the number of files encoded without error.
func (r *Report) Succeeded() int {
	n := 0
	for _, f := range r.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the results that carry an error.
func (r *Report) Failed() []FileResult {
	var failed []FileResult
	for _, f := range r.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// Err joins the per-file errors, or returns nil if every file succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, f := range r.Failed() {
		errs = append(errs, &FileError{Path: f.Input, Err: f.Err})
	}
	return errors.Join(errs...)
}

// Totals sums input and output sizes over the successful files.
func (r *Report) Totals() (in, out int64) {
	for _, f := range r.Files {
		if f.Result != nil {
			in += f.Result.InputBytes
			out += f.Result.OutputBytes
		}
	}
	return in, out
}

// FileError ties a per-file failure to its input path.
type FileError struct {
	Path string
	Err  error
}

func (e *FileError) Error() string { return e.Path + ": " + e.Err.Error() }
func (e *FileError) Unwrap() error { return e.Err }
