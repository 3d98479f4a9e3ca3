package responder

import (
	mathrand "math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// ulid.Monotonic is not safe for concurrent use, so every draw holds traceMu.
var (
	traceMu      sync.Mutex
	traceEntropy = ulid.Monotonic(mathrand.New(mathrand.NewSource(time.Now().UnixNano())), 0)
)

func newTraceID() string {
	traceMu.Lock()
	defer traceMu.Unlock()

	return ulid.MustNew(ulid.Timestamp(time.Now()), traceEntropy).String()
}
