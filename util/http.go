package util

import (
	"net/http"
)

func UserIp(r *http.Request) string {
	return r.Header.Get("X-Forwarded-For")
}
