package server

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"
)

// syncLogger records log lines and is safe for use from handler goroutines
type syncLogger struct {
	mtx   sync.Mutex
	lines []string
}

func (l *syncLogger) Printf(format string, v ...interface{}) {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.lines = append(l.lines, fmt.Sprintf(format, v...))
}

func (l *syncLogger) Lines() []string {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return append([]string(nil), l.lines...)
}

func (l *syncLogger) Find(substr string) []string {
	var found []string
	for _, line := range l.Lines() {
		if strings.Contains(line, substr) {
			found = append(found, line)
		}
	}
	return found
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("GET %v: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body of %v: %v", url, err)
	}
	return resp.StatusCode, string(body)
}

func waitForError(t *testing.T, errs <-chan error, timeout time.Duration) error {
	t.Helper()
	select {
	case err := <-errs:
		return err
	case <-time.After(timeout):
		t.Fatalf("timed out after %v", timeout)
		return nil
	}
}
