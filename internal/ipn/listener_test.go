package ipn

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	verdict bool
	got     *Message
}

func (s *stubVerifier) Verify(_ context.Context, msg *Message) bool {
	s.got = msg
	return s.verdict
}

type memoryAudit struct {
	lines []string
}

func (m *memoryAudit) Append(line string) {
	m.lines = append(m.lines, line)
}

func TestListener_HandleMessage(t *testing.T) {
	t.Run("dispatches verified messages", func(t *testing.T) {
		dispatched := 0
		registry := NewRegistry()
		registry.Bind("web_accept", BoolHandler(func(*Message) bool { dispatched++; return true }))
		verifier := &stubVerifier{verdict: true}
		listener := NewListener(verifier, registry)

		ok := listener.HandleMessage(context.Background(), []byte("txn_type=web_accept&txn_id=1"))

		assert.True(t, ok)
		assert.Equal(t, 1, dispatched)
		require.NotNil(t, verifier.got)
		assert.Equal(t, 2, verifier.got.Len())
	})

	t.Run("skips dispatch when verification fails", func(t *testing.T) {
		dispatched := 0
		registry := NewRegistry()
		registry.Bind("web_accept", BoolHandler(func(*Message) bool { dispatched++; return true }))
		listener := NewListener(&stubVerifier{verdict: false}, registry)

		ok := listener.HandleMessage(context.Background(), []byte("txn_type=web_accept"))

		assert.False(t, ok)
		assert.Zero(t, dispatched)
	})

	t.Run("verified message without handlers still returns true", func(t *testing.T) {
		listener := NewListener(&stubVerifier{verdict: true}, NewRegistry())

		assert.True(t, listener.HandleMessage(context.Background(), []byte("payment_status=Completed")))
	})

	t.Run("writes audit lines", func(t *testing.T) {
		audit := &memoryAudit{}
		listener := NewListener(&stubVerifier{verdict: true}, NewRegistry(), WithAuditSink(audit))

		listener.HandleMessage(context.Background(), []byte("a=1&b=x%20y"))

		assert.Equal(t, []string{
			"Received Message: a=1;b=x%20y;",
			"Validating success for message: a=1;b=x%20y;",
		}, audit.lines)
	})

	t.Run("writes failure audit line", func(t *testing.T) {
		audit := &memoryAudit{}
		listener := NewListener(&stubVerifier{verdict: false}, NewRegistry(), WithAuditSink(audit))

		listener.HandleMessage(context.Background(), []byte("a=1"))

		assert.Equal(t, "Validating failed for message: a=1;", audit.lines[1])
	})
}

func TestListener_EndToEnd(t *testing.T) {
	testCases := []struct {
		name             string
		response         string
		expected         bool
		expectedHandlers []string
	}{
		{name: "verified", response: "VERIFIED", expected: true, expectedHandlers: []string{"h1", "h2"}},
		{name: "invalid", response: "INVALID", expected: false},
		{name: "empty", response: "", expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var validateBody string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, r.ParseForm())
				validateBody = r.PostForm.Get("cmd")
				_, _ = w.Write([]byte(tc.response))
			}))
			defer server.Close()

			verifier, err := NewHTTPVerifier(VerifierConfig{Endpoint: server.URL, Timeout: 5 * time.Second})
			require.NoError(t, err)

			rec := &recorder{}
			registry := NewRegistry()
			registry.Bind("subscr_payment", rec.handler("h1", Continue))
			registry.Bind("subscr_payment", rec.handler("h2", Stop))
			registry.Bind("subscr_payment", rec.handler("h3", Continue))
			listener := NewListener(verifier, registry)

			ok := listener.HandleMessage(context.Background(),
				[]byte("txn_type=subscr_payment&subscr_id=I-123&mc_gross=9.99"))

			assert.Equal(t, tc.expected, ok)
			assert.Equal(t, "_notify-validate", validateBody)
			if tc.expectedHandlers == nil {
				assert.Empty(t, rec.calls)
			} else {
				assert.Equal(t, tc.expectedHandlers, rec.calls)
			}
		})
	}
}

func TestFileAuditSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ipn.log")
	sink := NewFileAuditSink(path)
	sink.now = func() time.Time {
		return time.Date(2009, time.January, 13, 20, 12, 59, 0, time.UTC)
	}

	sink.Append("Received Message: a=1;")
	sink.Append("Validating success for message: a=1;")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Equal(t, []string{
		"Tuesday, 13-Jan-2009 20:12:59 UTC Received Message: a=1;",
		"Tuesday, 13-Jan-2009 20:12:59 UTC Validating success for message: a=1;",
	}, lines)
}

func TestFileAuditSink_IgnoresWriteErrors(t *testing.T) {
	sink := NewFileAuditSink(filepath.Join(t.TempDir(), "missing-dir", "ipn.log"))

	assert.NotPanics(t, func() { sink.Append("line") })
}
