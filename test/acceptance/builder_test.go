package acceptance

import (
	"strings"
	"sync"
)

// syncBuilder collects process output written from another goroutine
type syncBuilder struct {
	mtx sync.Mutex
	b   strings.Builder
}

func (s *syncBuilder) Write(p []byte) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.b.Write(p)
}

func (s *syncBuilder) String() string {
	s.mtx.Lock()
	defer s.mtx.Unlock()
	return s.b.String()
}
