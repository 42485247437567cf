package cmd

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"github.com/samdecook/treewalk/internal/diagnostics"
	"github.com/samdecook/treewalk/internal/interp"
)

func silentLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func TestRunSourceSuccess(t *testing.T) {
	in := interp.New()
	var out bytes.Buffer
	in.Stdout = &out

	code := runSource([]byte(`print 1 + 2;`), in, silentLogger())
	assert.Equal(t, diagnostics.ExitOK, code)
	assert.Equal(t, "3\n", out.String())
}

func TestRunSourceStaticErrorExitsSixtyFive(t *testing.T) {
	in := interp.New()
	code := runSource([]byte(`var = ;`), in, silentLogger())
	assert.Equal(t, diagnostics.ExitStatic, code)
}

func TestRunSourceRuntimeErrorExitsSeventy(t *testing.T) {
	in := interp.New()
	code := runSource([]byte(`print 1 + "a";`), in, silentLogger())
	assert.Equal(t, diagnostics.ExitRuntime, code)
}
