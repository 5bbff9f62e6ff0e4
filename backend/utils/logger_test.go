package utils

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONLoggerWritesOneObjectPerLine(t *testing.T) {
	var buf bytes.Buffer
	logger := InitLogger(LoggerConfig{Format: "json", Output: &buf})
	logger.Printf("GET /api/quizzes/%d: %s", 3, `boom "quoted"`)
	logger.Println("second")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var entry map[string]string
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "RESET Academy", entry["app"])
	assert.Equal(t, `GET /api/quizzes/3: boom "quoted"`, entry["msg"])
	_, err := time.Parse(time.RFC3339, entry["time"])
	assert.NoError(t, err)

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &entry))
	assert.Equal(t, "second", entry["msg"])
}

func TestTextLoggerKeepsPrefix(t *testing.T) {
	var buf bytes.Buffer
	InitLogger(LoggerConfig{Output: &buf}).Print("hello")
	assert.True(t, strings.HasPrefix(buf.String(), "[RESET Academy] "))
	assert.Contains(t, buf.String(), "hello")
}
