package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, line string) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &m))
	return m
}

func TestJSONLogger_WritesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	logger.Info("building routing table", Compartment("p"), Ports(4))
	logger.Info("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	first := decodeLine(t, lines[0])
	assert.Equal(t, "INFO", first["level"])
	assert.Equal(t, "building routing table", first["msg"])

	fields, ok := first["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "p", fields["compartment"])
	assert.Equal(t, float64(4), fields["ports"])
}

func TestJSONLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, WarnLevel)

	logger.Debug("ignored")
	logger.Info("ignored")
	logger.Warn("kept")
	logger.Error("kept")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 2)
}

func TestJSONLogger_WithPresetsFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	child := logger.With(RunID("run-42"))
	child.Info("chunking enzyme set", ReactionSet("inner"))

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	fields := entry["fields"].(map[string]any)
	assert.Equal(t, "run-42", fields["run_id"])
	assert.Equal(t, "inner", fields["reaction_set"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, ErrorLevel, ParseLevel("error"))
	assert.Equal(t, InfoLevel, ParseLevel("nonsense"))
}

func TestErrorField(t *testing.T) {
	f := Error(errors.New("boom"))
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "boom", f.Value)

	assert.Nil(t, Error(nil).Value)
}

func TestTimedOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSONLogger(&buf, InfoLevel)

	op := StartTimer(logger, "assemble compartment", Compartment("c"))
	op.End()

	entry := decodeLine(t, strings.TrimSpace(buf.String()))
	fields := entry["fields"].(map[string]any)
	assert.Equal(t, "c", fields["compartment"])
	assert.Contains(t, fields, "latency")
}
