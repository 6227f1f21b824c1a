package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/shandysiswandi/goident/internal/pkg/pkgerror"
)

type errorDetail struct {
	Code   string `json:"code"`
	Type   string `json:"type"`
	Detail string `json:"detail,omitempty"`
}

type errorResponse struct {
	Message string       `json:"message"`
	Error   *errorDetail `json:"error,omitempty"`
}

type successResponse struct {
	Message string         `json:"message"`
	Data    any            `json:"data"`
	Meta    map[string]any `json:"meta,omitempty"`
}

type message string

func (m message) Message() string { return string(m) }

func encodeError(ctx context.Context, w http.ResponseWriter, err error) {
	gerr, ok := pkgerror.As(err)
	if !ok {
		slog.ErrorContext(ctx, "unhandled error", "error", err)
		writeJSON(w, errorResponse{Message: "Internal server error"}, http.StatusInternalServerError)
		return
	}

	detail := &errorDetail{Code: gerr.Code().String(), Type: gerr.Type().String()}
	switch gerr.Type() {
	case pkgerror.TypeValidation:
		if gerr.Unwrap() != nil {
			detail.Detail = gerr.Unwrap().Error()
		}
	case pkgerror.TypeServer:
		slog.ErrorContext(ctx, "server error", "error", gerr.String())
	}

	msg := gerr.Msg()
	if msg == "" {
		msg = gerr.Error()
	}
	writeJSON(w, errorResponse{Message: msg, Error: detail}, gerr.StatusCode())
}

func encodeOK(w http.ResponseWriter, resp any) {
	code := http.StatusOK
	if sc, ok := resp.(interface{ StatusCode() int }); ok {
		code = sc.StatusCode()
	}
	if code == http.StatusNoContent || resp == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := successResponse{Message: "request has been successfully", Data: resp}
	if m, ok := resp.(interface{ Message() string }); ok {
		out.Message = m.Message()
	}
	if m, ok := resp.(interface{ Meta() map[string]any }); ok {
		out.Meta = m.Meta()
	}
	if _, ok := resp.(message); ok {
		out.Data = nil
	}

	writeJSON(w, out, code)
}

func writeJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("server: failed to encode data to json", "error", err)
	}
}
