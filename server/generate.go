package server

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	relayerrors "github.com/sweetpotato0/deadchat/errors"
	"github.com/sweetpotato0/deadchat/message"
	"github.com/sweetpotato0/deadchat/relay"
)

// Client-facing error strings.
const (
	MissingFieldMessage  = "Missing characterPrompt or userMessage"
	ProviderErrorMessage = "Failed to connect to Gemini API"
	RateLimitedMessage   = "Too many requests"
	TooLargeMessage      = "Request body too large"
	InternalErrorMessage = "Internal server error"
)

const maxBodyBytes = 1 << 20

// GenerateHandler serves POST /api/gemini.
func GenerateHandler(rl Relayer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req message.GenerationRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, message.ErrorBody{Error: TooLargeMessage})
				return
			}
			// An unreadable body carries no usable fields.
			req = message.GenerationRequest{}
		}

		ctx := relay.WithCaller(r.Context(), relay.Caller{
			RequestID: chiMiddleware.GetReqID(r.Context()),
			ClientIP:  clientIP(r),
		})
		text, err := rl.Relay(ctx, req)
		if err != nil {
			writeRelayError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, message.GenerationResult{Text: text})
	}
}

func writeRelayError(w http.ResponseWriter, err error) {
	switch relayerrors.KindOf(err) {
	case relayerrors.KindMissingField:
		writeJSON(w, http.StatusBadRequest, message.ErrorBody{Error: MissingFieldMessage})
	case relayerrors.KindProviderError:
		writeJSON(w, http.StatusInternalServerError, message.ProviderErrorBody{
			Error:   ProviderErrorMessage,
			Details: relayerrors.Details(err),
		})
	case relayerrors.KindRateLimited:
		writeJSON(w, http.StatusTooManyRequests, message.ErrorBody{Error: RateLimitedMessage})
	default:
		writeJSON(w, http.StatusInternalServerError, message.ErrorBody{Error: InternalErrorMessage})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
