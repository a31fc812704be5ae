package helpers

import (
	"net/http"
)

type APIResponse struct {
	StatCode   int         `json:"-"`
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	ErrMessage string      `json:"error,omitempty"`
	ErrDetails interface{} `json:"details,omitempty"`
}

func ApiResponse(rw http.ResponseWriter, payload *APIResponse) {
	rw.Header().Set("Content-Type", "application/json")

	parser := NewParser()
	payloadByte, err := parser.Marshal(payload)

	if err != nil {
		rw.WriteHeader(http.StatusInternalServerError)
		rw.Write([]byte(err.Error()))
		return
	}

	if payload.StatCode != 0 {
		rw.WriteHeader(payload.StatCode)
	}

	rw.Write(payloadByte)
}

func TextResponse(rw http.ResponseWriter, statCode int, body string) {
	rw.Header().Set("Content-Type", "text/plain; charset=utf-8")
	rw.WriteHeader(statCode)
	rw.Write([]byte(body))
}
