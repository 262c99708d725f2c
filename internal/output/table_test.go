package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

func TestTruncate_RuneSafe(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 48))

	long := strings.Repeat("ä", 60)
	got := truncate(long, 48)
	assert.True(t, utf8.ValidString(got), "must not split a rune mid-sequence")
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.Equal(t, strings.Repeat("ä", 45)+"...", got)
}

func TestTaskTable_LongMultibyteTitle(t *testing.T) {
	DisableColor()
	var buf bytes.Buffer
	TaskTable(&buf, []*task.Task{{
		ID:       1,
		Title:    strings.Repeat("日", 60),
		Category: task.CategoryTask,
		DueDate:  date.New(2024, 5, 17),
		DueTime:  "09:00",
	}})

	assert.True(t, utf8.ValidString(buf.String()))
	assert.Contains(t, buf.String(), "...")
}

func TestJSONError_Envelope(t *testing.T) {
	var buf bytes.Buffer
	JSONError(&buf, "TASK_NOT_FOUND", "task #7 not found", map[string]any{"id": 7})

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "TASK_NOT_FOUND", resp.Code)
	assert.Equal(t, "task #7 not found", resp.Error)
	assert.EqualValues(t, 7, resp.Details["id"])
}
