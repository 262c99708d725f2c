package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskbot-dev/taskbot/internal/backend"
	"github.com/taskbot-dev/taskbot/internal/clierr"
	"github.com/taskbot-dev/taskbot/internal/date"
	"github.com/taskbot-dev/taskbot/internal/task"
)

func TestList_SendsAuthHeaderAndNoFilterForAll(t *testing.T) {
	var gotAuth, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		_ = json.NewEncoder(w).Encode(listResponse{Tasks: []WireTask{}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret-token")
	_, _, err := c.List(context.Background(), task.FilterAll)
	require.NoError(t, err)

	assert.Equal(t, "secret-token", gotAuth)
	assert.Empty(t, gotQuery)
}

func TestList_SendsFilterParam(t *testing.T) {
	var gotFilter string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotFilter = r.URL.Query().Get("filter")
		_ = json.NewEncoder(w).Encode(listResponse{})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, _, err := c.List(context.Background(), task.FilterToday)
	require.NoError(t, err)
	assert.Equal(t, "today", gotFilter)
}

func TestList_DecodesTasksAndCounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(listResponse{
			Tasks: []WireTask{
				{ID: 1, Text: "Pick up parcel", Category: "reminder", EventAt: strPtr("2024-06-01T12:00:00")},
			},
			Counts: task.Counts{All: 1, Active: 1},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	tasks, counts, err := c.List(context.Background(), task.FilterAll)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Pick up parcel", tasks[0].Title)
	assert.Equal(t, "12:00", tasks[0].DueTime)
	assert.Equal(t, task.Counts{All: 1, Active: 1}, counts)
}

func TestCreate_PostsPayloadAndAdoptsServerID(t *testing.T) {
	var gotBody map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(createResponse{Status: "ok", ID: 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	tk, err := c.Create(context.Background(), backend.Draft{
		Title:    "Buy groceries",
		Category: task.CategoryTask,
		DueDate:  mustDate(t, "2024-06-01"),
		DueTime:  "18:00",
	})
	require.NoError(t, err)

	assert.Equal(t, 42, tk.ID)
	assert.Equal(t, `"Buy groceries"`, string(gotBody["text"]))
	assert.Equal(t, "null", string(gotBody["reminder_offset_minutes"]))
}

func TestToggle_PostsTaskID(t *testing.T) {
	var got toggleRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tasks/toggle", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(statusResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	require.NoError(t, c.Toggle(context.Background(), 9))
	assert.Equal(t, 9, got.TaskID)
}

func TestDelete_UsesPathID(t *testing.T) {
	var gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		_ = json.NewEncoder(w).Encode(statusResponse{Status: "ok"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	require.NoError(t, c.Delete(context.Background(), 5))
	assert.Equal(t, "/api/tasks/5", gotPath)
	assert.Equal(t, http.MethodDelete, gotMethod)
}

func TestDo_ErrorDetailFromBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"detail":"Task not found"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.Delete(context.Background(), 999)
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
	assert.Equal(t, "Task not found", err.Error())
}

func TestDo_ErrorFallbackLabel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("gateway broke"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	err := c.Toggle(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, "HTTP 500", err.Error())
}

func TestDo_TransportFailureIsNetworkError(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "")
	_, err := c.Counts(context.Background())
	require.Error(t, err)

	var cliErr *clierr.Error
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, clierr.NetworkError, cliErr.Code)
}

func mustDate(t *testing.T, s string) date.Date {
	t.Helper()
	d, err := date.Parse(s)
	require.NoError(t, err)
	return d
}
