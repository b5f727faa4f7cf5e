package server

import (
	"encoding/json"
	"net/http"

	"github.com/jrsteele09/storedesk/api"
	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json"

func writeEnvelope(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("writing response")
	}
}

func writeData[T any](w http.ResponseWriter, message string, data T) {
	writeEnvelope(w, http.StatusOK, api.OK(message, data))
}

func writeFailure(w http.ResponseWriter, status int, message string, errs ...string) {
	writeEnvelope(w, status, api.Fail(message, errs...))
}

func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
