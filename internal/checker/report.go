package checker

import (
	"fmt"
	"io"

	"github.com/hamed0406/pingcheck/internal/domain"
)

// Reporter prints one console line per outcome: reachable targets go to Out,
// everything else to Err.
type Reporter struct {
	Out io.Writer
	Err io.Writer
}

func NewReporter(out, errOut io.Writer) *Reporter {
	return &Reporter{Out: out, Err: errOut}
}

func (r *Reporter) Report(o domain.Outcome) {
	switch o.Status {
	case domain.StatusUp:
		fmt.Fprintf(r.Out, "%s is up\n", o.Target)
	case domain.StatusDown:
		fmt.Fprintf(r.Err, "%s is not responding! PING ERROR: %v\n", o.Target, o.Reason)
	case domain.StatusAbnormal:
		fmt.Fprintf(r.Err, "Could not send ping to %s: Thread error\n", o.Target)
	}
}
