package responder

import (
	"log/slog"
	"net/http"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	statusDocBaseURL   = "https://httpstatuses.io"
)

// ErrorClassifierFunc maps an error to the HTTP status that should describe
// it. The boolean reports whether the classifier recognised the error; when
// it did not, HandleErrors falls back to a 500.
type ErrorClassifierFunc func(err error) (status int, handled bool)

// ResponderOption configures a Responder created by NewResponder.
type ResponderOption func(*Responder)

type statusMeta struct {
	typeURI  string
	title    string
	logLevel slog.Level
	logMsg   string
}

// StatusMetadata customises the title, type URI, and log record emitted for
// a given HTTP status.
type StatusMetadata struct {
	TypeURI  string
	Title    string
	LogLevel slog.Level
	LogMsg   string
}

// Responder writes asset bodies, JSON payloads, and RFC 9457 problem
// documents, logging every failure with a trace identifier.
type Responder struct {
	log             *slog.Logger
	statusMetadata  map[int]statusMeta
	errorClassifier ErrorClassifierFunc
}

// NewResponder returns a Responder backed by slog.Default and the built-in
// status metadata.
func NewResponder(opts ...ResponderOption) *Responder {
	r := &Responder{
		log:            slog.Default(),
		statusMetadata: defaultStatusMetadata(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// WithLogger sets the logger used for problem records.
func WithLogger(logger *slog.Logger) ResponderOption {
	return func(r *Responder) {
		if logger != nil {
			r.log = logger
		}
	}
}

// WithErrorClassifier installs the classifier consulted by HandleErrors.
func WithErrorClassifier(classifier ErrorClassifierFunc) ResponderOption {
	return func(r *Responder) {
		r.errorClassifier = classifier
	}
}

// WithStatusMetadata overrides how status is titled and logged.
func WithStatusMetadata(status int, meta StatusMetadata) ResponderOption {
	return func(r *Responder) {
		if r.statusMetadata == nil {
			r.statusMetadata = make(map[int]statusMeta)
		}
		r.statusMetadata[status] = normalizeStatusMeta(status, statusMeta{
			typeURI:  meta.TypeURI,
			title:    meta.Title,
			logLevel: meta.LogLevel,
			logMsg:   meta.LogMsg,
		})
	}
}

// Logger returns the logger used internally by the responder.
func (r *Responder) Logger() *slog.Logger {
	return r.logger()
}

func (r *Responder) logger() *slog.Logger {
	if r == nil || r.log == nil {
		return slog.Default()
	}
	return r.log
}

func (r *Responder) classifyError(err error) (int, bool) {
	if r.errorClassifier == nil {
		return 0, false
	}
	return r.errorClassifier(err)
}

func defaultStatusMetadata() map[int]statusMeta {
	return map[int]statusMeta{
		http.StatusInternalServerError: {title: http.StatusText(http.StatusInternalServerError), logLevel: slog.LevelError, logMsg: "Internal Server Error"},
		http.StatusNotFound:            {title: http.StatusText(http.StatusNotFound), logLevel: slog.LevelInfo, logMsg: "Not Found"},
		http.StatusServiceUnavailable:  {title: http.StatusText(http.StatusServiceUnavailable), logLevel: slog.LevelWarn, logMsg: "Service Unavailable"},
	}
}
