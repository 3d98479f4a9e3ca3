package responder

import (
	"net/http"

	"github.com/drblury/swaggerui/jsonutil"
)

// HandleAPIError writes a problem document for status and logs err using
// the metadata configured for that status. A nil err writes nothing.
func (r *Responder) HandleAPIError(w http.ResponseWriter, req *http.Request, status int, err error, logMsg ...string) {
	if err == nil {
		return
	}

	meta := r.statusMetaFor(status)
	problem := r.buildProblemDetails(req, status, err, meta)
	r.logProblem(req, meta, err, problem, logMsg)
	r.respondWithJSON(w, status, problem, problemContentType)
}

// HandleInternalServerError reports err with HTTP 500.
func (r *Responder) HandleInternalServerError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusInternalServerError, err, logMsg...)
}

// HandleServiceUnavailableError reports err with HTTP 503.
func (r *Responder) HandleServiceUnavailableError(w http.ResponseWriter, req *http.Request, err error, logMsg ...string) {
	r.HandleAPIError(w, req, http.StatusServiceUnavailable, err, logMsg...)
}

// HandleErrors picks the status for err through the configured classifier,
// defaulting to HTTP 500.
func (r *Responder) HandleErrors(w http.ResponseWriter, req *http.Request, err error, msgs ...string) {
	if err == nil {
		return
	}

	if status, handled := r.classifyError(err); handled {
		r.HandleAPIError(w, req, status, err, msgs...)
		return
	}

	r.HandleInternalServerError(w, req, err, msgs...)
}

// RespondWithJSON serialises v and writes it with the supplied status.
func (r *Responder) RespondWithJSON(w http.ResponseWriter, _ *http.Request, status int, v any) {
	r.respondWithJSON(w, status, v, jsonContentType)
}

// RespondWithContent writes a raw body, such as a bundle file, with the
// supplied status and Content-Type header value.
func (r *Responder) RespondWithContent(w http.ResponseWriter, _ *http.Request, status int, contentType string, body []byte) {
	if w == nil {
		return
	}
	r.writeResponse(w, status, resolveContentType(contentType, "application/octet-stream"), body)
}

func (r *Responder) respondWithJSON(w http.ResponseWriter, status int, payload any, contentType string) {
	if w == nil {
		return
	}

	body, err := marshalPayload(payload)
	if err != nil {
		r.logger().Error("failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	r.writeResponse(w, status, resolveContentType(contentType, jsonContentType), body)
}

func marshalPayload(payload any) ([]byte, error) {
	data, err := jsonutil.Marshal(payload)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || data[len(data)-1] != '\n' {
		data = append(data, '\n')
	}
	return data, nil
}

func (r *Responder) writeResponse(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		r.logger().Error("failed to write response", "error", err)
	}
}

func resolveContentType(provided, fallback string) string {
	if provided == "" {
		return fallback
	}
	return provided
}
