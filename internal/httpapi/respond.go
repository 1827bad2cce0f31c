package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/floorlay/floorlay/pkg/errors"
)

// maxBodySize bounds uploaded project snapshots.
const maxBodySize = 8 << 20

func readBody(r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read request body")
	}
	if len(data) > maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodySize)
	}
	return data, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusForCode maps error codes onto HTTP statuses. Unknown codes are
// treated as internal failures.
func statusForCode(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput,
		errors.ErrCodeInvalidCalibration,
		errors.ErrCodeInvalidSnapshot,
		errors.ErrCodeInvalidTemplate,
		errors.ErrCodeInvalidQuantity,
		errors.ErrCodeInvalidFormat,
		errors.ErrCodeUnknownIdentity:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound,
		errors.ErrCodeProjectNotFound,
		errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeSessionInactive,
		errors.ErrCodeHistoryBoundary:
		return http.StatusConflict
	case errors.ErrCodeUnsupported:
		return http.StatusUnsupportedMediaType
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := statusForCode(code)
	if status >= 500 {
		s.logger.Error("request failed", "err", err)
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, status, map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": errors.UserMessage(err),
		},
	})
}
