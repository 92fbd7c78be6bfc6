package rutil

import (
	"net/http"

	"github.com/goccy/go-json"
)

func MustWriteJson(w http.ResponseWriter, statusCode int, data any) {
	bytes, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_, err = w.Write(bytes)
	if err != nil {
		panic(err)
	}
}
