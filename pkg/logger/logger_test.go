package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerWritesKeyValuePairs(t *testing.T) {
	var out, errOut bytes.Buffer
	l := newLogger(&out, &errOut, false)

	l.Info("venda registrada", "venta_id", 42, "total", "7.00")
	l.Error("falha", "erro", "timeout")
	l.Debug("não aparece")

	assert.Contains(t, out.String(), "INFO: venda registrada venta_id=42 total=7.00")
	assert.NotContains(t, out.String(), "não aparece")
	assert.Contains(t, errOut.String(), "ERROR: falha erro=timeout")
}

func TestFormatOddPairs(t *testing.T) {
	assert.Equal(t, "msg", format("msg", nil))
	assert.Equal(t, "msg a=1 extra=b", format("msg", []interface{}{"a", 1, "b"}))
}
