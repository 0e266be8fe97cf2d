package logs

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"sync"
	"time"

	"cloud.google.com/go/logging"
)

// Logger is the subset of *logging.Logger used across the service.
type Logger interface {
	Log(e logging.Entry)
	Flush() error
}

// StdoutLogger writes every entry as a single JSON line.
type StdoutLogger struct {
	mu  sync.Mutex
	out *log.Logger
}

func NewStdoutLogger(w io.Writer) *StdoutLogger {
	if w == nil {
		w = os.Stdout
	}
	return &StdoutLogger{out: log.New(w, "", 0)}
}

func (l *StdoutLogger) Log(e logging.Entry) {
	ts := e.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	logEntry := map[string]interface{}{
		"severity": e.Severity.String(),
		"message":  payloadString(e.Payload),
		"time":     ts.Format(time.RFC3339),
	}
	for k, v := range e.Labels {
		logEntry[k] = v
	}

	jsonLog, err := json.Marshal(logEntry)
	if err != nil {
		jsonLog = []byte(fmt.Sprintf(`{"severity":"ERROR","message":%q}`, err.Error()))
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.out.Println(string(jsonLog))
}

func (l *StdoutLogger) Flush() error {
	return nil
}

func payloadString(payload interface{}) interface{} {
	switch p := payload.(type) {
	case nil:
		return ""
	case string:
		return p
	case error:
		return p.Error()
	case fmt.Stringer:
		return p.String()
	default:
		return p
	}
}
