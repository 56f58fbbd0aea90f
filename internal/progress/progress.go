package progress

import (
	"fmt"
	"io"
	"time"
)

// Reporter handles CLI progress output for batch renders
type Reporter struct {
	out       io.Writer
	startTime time.Time
	total     int
	count     int
	failures  int
}

// NewReporter creates a progress reporter for a batch of total renders
func NewReporter(out io.Writer, total int) *Reporter {
	return &Reporter{
		out:       out,
		startTime: time.Now(),
		total:     total,
	}
}

// Rendered announces one completed track
func (r *Reporter) Rendered(path, detail string) {
	r.count++
	fmt.Fprintf(r.out, "[%d/%d] %s  (%s)\n", r.count, r.total, path, detail)
}

// Failed announces one failed render
func (r *Reporter) Failed(name string, err error) {
	r.count++
	r.failures++
	fmt.Fprintf(r.out, "[%d/%d] %s failed: %v\n", r.count, r.total, name, err)
}

// Warning announces a non-fatal warning
func (r *Reporter) Warning(format string, args ...any) {
	fmt.Fprintf(r.out, "Warning: %s\n", fmt.Sprintf(format, args...))
}

// Done announces completion of the batch
func (r *Reporter) Done() {
	elapsed := time.Since(r.startTime)
	written := r.count - r.failures
	if r.failures > 0 {
		fmt.Fprintf(r.out, "Finished: %d written, %d failed in %.1f seconds\n",
			written, r.failures, elapsed.Seconds())
		return
	}
	fmt.Fprintf(r.out, "Done! %d tracks written in %.1f seconds\n", written, elapsed.Seconds())
}
