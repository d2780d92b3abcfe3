package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_LoneErrorBecomesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(&buf, "debug", "production"))

	Error("EventRepository:FindOverlapping", errors.New("boom"))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "EventRepository:FindOverlapping", line["msg"])
	assert.Equal(t, "boom", line["error"])
	assert.Equal(t, "club-api", line["service"])
}

func TestInfo_KeyValues(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(New(&buf, "info", "production"))

	Info("TimesheetService:Coaches:Done", "lines", 3, "coaches", 1)
	Debug("hidden")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.EqualValues(t, 3, line["lines"])
	assert.NotContains(t, buf.String(), "hidden")
}
