package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWritesServiceFields(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{ServiceName: "dairy-test", Environment: "test", Level: "info", Output: &buf})

	Info(ContextWithRequestID(context.Background(), "req-1")).Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "dairy-test", line["service"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, "hello", line["message"])
}

func TestSetLevelFiltersDebug(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{ServiceName: "dairy-test", Environment: "test", Level: "debug", Output: &buf})

	SetLevel("warn")
	Debug(context.Background()).Msg("dropped")
	Info(context.Background()).Msg("dropped too")
	assert.Empty(t, buf.String())

	Warn(context.Background()).Msg("kept")
	assert.Contains(t, buf.String(), "kept")
}
