package diags

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capture redirects Output and Exit for one test.
func capture(t *testing.T) (*bytes.Buffer, *int) {
	var buf bytes.Buffer
	status := -1
	oldOutput, oldExit, oldWarnings := Output, Exit, nWarnings
	Output = &buf
	Exit = func(code int) { status = code }
	nWarnings = 0
	t.Cleanup(func() {
		Output, Exit, nWarnings = oldOutput, oldExit, oldWarnings
	})
	return &buf, &status
}

func TestWarn(t *testing.T) {
	buf, _ := capture(t)

	Warn("slot %d looks odd\n", 3)
	WarnIf(nil, "not shown")
	WarnIf2(errors.New("disk full"), "backup", "")

	assert.Equal(t, 2, Warnings())
	assert.Equal(t,
		progName+": slot 3 looks odd\n"+progName+" backup: disk full\n",
		buf.String())
}

func TestDie(t *testing.T) {
	buf, status := capture(t)

	DieIf(nil, "not shown")
	assert.Equal(t, -1, *status)

	Die("cannot go on")
	assert.Equal(t, 2, *status)
	assert.Contains(t, buf.String(), "cannot go on")

	Warn("careful")
	DieIf2(errors.New("boom"), "BUG", "")
	assert.Equal(t, 3, *status)
	assert.Contains(t, buf.String(), progName+" BUG: boom")
}

func TestDieWithoutMessage(t *testing.T) {
	buf, status := capture(t)

	Die2("usage", "")
	assert.Equal(t, 2, *status)
	assert.Empty(t, buf.String())
	assert.Equal(t, 0, Warnings())
}

func TestExitStatus(t *testing.T) {
	capture(t)
	assert.Equal(t, 0, ExitStatus(false))
	assert.Equal(t, 2, ExitStatus(true))
	Warn("x")
	assert.Equal(t, 1, ExitStatus(false))
	assert.Equal(t, 3, ExitStatus(true))
}

func TestSetupLogging(t *testing.T) {
	buf, _ := capture(t)
	defer logrus.SetLevel(logrus.InfoLevel)
	defer logrus.SetOutput(os.Stderr)

	require.NoError(t, SetupLogging("debug"))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	logrus.WithField("slot", 1).Debug("hello")
	assert.Contains(t, buf.String(), "slot=1")

	require.NoError(t, SetupLogging(""))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	assert.Error(t, SetupLogging("chatty"))
}
