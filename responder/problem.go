package responder

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// ProblemDetails is the RFC 9457 body written for every error response.
type ProblemDetails struct {
	Type      string `json:"type,omitempty"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	Instance  string `json:"instance,omitempty"`
	TraceID   string `json:"traceId,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func (r *Responder) statusMetaFor(status int) statusMeta {
	return normalizeStatusMeta(status, r.statusMetadata[status])
}

func (r *Responder) buildProblemDetails(req *http.Request, status int, err error, meta statusMeta) ProblemDetails {
	return ProblemDetails{
		Type:      meta.typeURI,
		Title:     meta.title,
		Status:    status,
		Detail:    err.Error(),
		Instance:  requestInstance(req),
		TraceID:   newTraceID(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

func (r *Responder) logProblem(req *http.Request, meta statusMeta, err error, problem ProblemDetails, msgs []string) {
	logger := r.logger().With(
		"error", err.Error(),
		"traceId", problem.TraceID,
		"status", problem.Status,
	)
	if problem.Instance != "" {
		logger = logger.With("instance", problem.Instance)
	}
	if len(msgs) > 0 {
		logger = logger.With("logMessages", msgs)
	}
	logger.Log(requestContext(req), meta.logLevel, meta.logMsg)
}

func normalizeStatusMeta(status int, meta statusMeta) statusMeta {
	if meta.logLevel == 0 && status >= http.StatusInternalServerError {
		meta.logLevel = slog.LevelError
	}
	if meta.title == "" {
		meta.title = http.StatusText(status)
	}
	if meta.logMsg == "" {
		meta.logMsg = meta.title
	}
	if meta.typeURI == "" {
		meta.typeURI = fmt.Sprintf("%s/%d", statusDocBaseURL, status)
	}
	return meta
}

func requestInstance(req *http.Request) string {
	if req == nil || req.URL == nil {
		return ""
	}
	return req.URL.RequestURI()
}

func requestContext(req *http.Request) context.Context {
	if req == nil {
		return context.Background()
	}
	return req.Context()
}
