package checker

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hamed0406/pingcheck/internal/domain"
)

func TestReporter_Lines(t *testing.T) {
	var out, errOut bytes.Buffer
	r := NewReporter(&out, &errOut)

	r.Report(domain.Outcome{Target: "1.1.1.1", Status: domain.StatusUp})
	r.Report(domain.Outcome{Target: "8.8.8.8", Status: domain.StatusDown, Reason: errors.New("host unreachable")})
	r.Report(domain.Outcome{Target: "9.9.9.9", Status: domain.StatusAbnormal, Reason: errors.New("panic")})
	r.Report(domain.Outcome{Target: "4.4.4.4", Status: domain.StatusPending})

	assert.Equal(t, "1.1.1.1 is up\n", out.String())
	assert.Equal(t,
		"8.8.8.8 is not responding! PING ERROR: host unreachable\n"+
			"Could not send ping to 9.9.9.9: Thread error\n",
		errOut.String())
}
