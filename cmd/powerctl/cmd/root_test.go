package cmd

import (
	"bytes"
	"testing"

	"github.com/mfulz/powergeist/protocol"
	"github.com/stretchr/testify/assert"
)

func TestReport(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, report(&buf, &protocol.Outcome{Success: true, Message: "Shutdown cancelled"}))
	assert.Equal(t, "Shutdown cancelled\n", buf.String())

	buf.Reset()
	err := report(&buf, &protocol.Outcome{Message: "Unsupported operating system"})
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "Unsupported operating system\n", buf.String())
}
