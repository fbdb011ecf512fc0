package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Counters(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordRequest("GET", "/todos", 200, 15*time.Millisecond)
	c.RecordRequest("GET", "/todos", 200, 5*time.Millisecond)
	c.RecordRequest("POST", "/todos", 400, time.Millisecond)
	c.RecordAuthEvent("login", "failure")
	c.RecordTodoOp("create", "success")
	c.RecordTodoOp("create", "success")

	assert.Equal(t, 2.0, testutil.ToFloat64(c.requests.WithLabelValues("GET", "/todos", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.requests.WithLabelValues("POST", "/todos", "400")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.authEvents.WithLabelValues("login", "failure")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.todoOps.WithLabelValues("create", "success")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.requestDuration))
}

func TestHandler_Exposition(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordTodoOp("delete", "not_found")

	srv := httptest.NewServer(Handler(reg))
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), `tasklist_todo_operations_total{op="delete",outcome="not_found"} 1`))
}

func TestNop_ImplementsRecorder(t *testing.T) {
	var r Recorder = Nop{}
	r.RecordRequest("GET", "/", 200, 0)
	r.RecordAuthEvent("login", "success")
	r.RecordTodoOp("list", "success")
}
