package swaggerui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

type probePayload struct {
	Status string `json:"status"`
}

func (h *Handler) respondProbe(w http.ResponseWriter, r *http.Request, state string) {
	h.RespondWithJSON(w, r, http.StatusOK, probePayload{Status: state})
}

// runChecks runs checks in order under one shared deadline and stops at the
// first failure.
func (h *Handler) runChecks(ctx context.Context, checks []ProbeFunc) error {
	if len(checks) == 0 {
		return nil
	}

	probeCtx, cancel := context.WithTimeout(ctx, h.probeTimeout)
	defer cancel()

	for idx, check := range checks {
		err := check(probeCtx)
		switch {
		case err == nil:
			continue
		case errors.Is(err, context.DeadlineExceeded):
			return fmt.Errorf("probe %d timed out after %s", idx+1, h.probeTimeout)
		case errors.Is(err, context.Canceled):
			return fmt.Errorf("probe %d was cancelled", idx+1)
		default:
			return fmt.Errorf("probe %d failed: %w", idx+1, err)
		}
	}
	return nil
}

func filterProbes(checks []ProbeFunc) []ProbeFunc {
	var filtered []ProbeFunc
	for _, check := range checks {
		if check != nil {
			filtered = append(filtered, check)
		}
	}
	return filtered
}
