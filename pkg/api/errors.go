package api

import (
	"encoding/json"
	"errors"
	"net/http"

	ferrors "github.com/matzehuels/familytower/pkg/errors"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StatusFor maps an error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case ferrors.IsInvalid(err):
		return http.StatusBadRequest
	case ferrors.IsNotFound(err):
		return http.StatusNotFound
	case ferrors.Is(err, ferrors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	code := string(ferrors.GetCode(err))
	if code == "" {
		code = string(ferrors.ErrCodeInternal)
	}
	msg := ferrors.UserMessage(err)
	var fe *ferrors.Error
	if errors.As(err, &fe) && fe.Cause != nil {
		msg += ": " + fe.Cause.Error()
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "id", RequestID(r.Context()), "path", r.URL.Path, "err", err)
	}
	writeJSON(w, status, errorBody{Code: code, Message: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
