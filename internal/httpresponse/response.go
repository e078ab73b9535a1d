package httpresponse

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	errs "go_engine/internal/errors"
)

type Response[T any] struct {
	Status int `json:"Status"`
	Body   any `json:"Body,omitempty"`
}

type ErrorResponse struct {
	ErrorDescription string      `json:"ErrorDescription"`
	Reason           errs.Reason `json:"Reason,omitempty"`
}

const INTERNALERRORJSON = "{\"Status\": 500,\"Body\":{\"ErrorDescription\": \"Internal server error\",\"Reason\":\"Internal\"}}"

const MALFORMEDJSON_errorDesc = "json unmarshalling error"

func WriteResponseWithStatus(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	jsonByte, err := marshalStatusJson(status, body)
	if err != nil {
		WriteInternalErrorResponse(w)
		return
	}
	w.WriteHeader(status)
	_, _ = w.Write(jsonByte)
}

func marshalStatusJson(status int, body any) ([]byte, error) {
	response := Response[any]{
		Status: status,
		Body:   body,
	}
	marshal, err := json.Marshal(response)
	if err != nil {
		return nil, err
	}
	return marshal, nil
}

func WriteInternalErrorResponse(w http.ResponseWriter) {
	// same as http.Error, only the Content-Type differs
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusInternalServerError)
	_, _ = fmt.Fprintln(w, INTERNALERRORJSON)
}

// StatusOf maps an engine or service error to its HTTP status.
func StatusOf(err error) int {
	switch {
	case errs.IsInputError(err):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errs.IsRuleViolation(err), errs.IsStateError(err):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// WriteError writes err with its reason tag. Internal errors are not
// described to the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	description := err.Error()
	if status == http.StatusInternalServerError {
		description = "Internal server error"
	}
	WriteResponseWithStatus(w, status, ErrorResponse{
		ErrorDescription: description,
		Reason:           errs.ReasonOf(err),
	})
}
