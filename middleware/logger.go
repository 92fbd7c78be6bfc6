package middleware

import (
	"context"
	"net/http"
	"time"

	"stationboard/db/pgw"
	"stationboard/log"
	"stationboard/oops"
	"stationboard/util"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Logger should come before Recoverer
func Logger(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		t1 := time.Now()

		path := r.URL.Path
		if r.URL.RawQuery != "" {
			path += "?" + r.URL.RawQuery
		}

		requestId := r.Header.Get("X-Request-ID")
		if requestId == "" {
			requestId = uuid.New().String()
		}
		logger := &WebLogger{RequestId: requestId}

		logger.Info().
			Str("method", r.Method).
			Str("path", path).
			Str("ip", util.UserIp(r)).
			Str("user-agent", r.UserAgent()).
			Msg("started")

		var errorWrapper errorWrapper
		r = pgw.WithDBDuration(withLogger(withErrorWrapper(r, &errorWrapper), logger))

		defer func() {
			status := ww.Status()
			dbDuration := pgw.DbDuration(r.Context())
			if dbDuration > time.Second {
				logger.Warn().Str("path", path).Msgf("Long db duration: %v", dbDuration)
			}

			if (status/100 == 4 || status/100 == 5) &&
				status != http.StatusMethodNotAllowed &&
				status != http.StatusNotFound {

				event := logger.Error()
				if errorWrapper.err != nil {
					event.Err(errorWrapper.err)
				}
				event.
					Str("method", r.Method).
					Str("path", path).
					Int("status", status).
					TimeDiff("duration", time.Now(), t1).
					Dur("db_duration", dbDuration).
					Msg("failed")
			} else {
				logger.Info().
					Str("method", r.Method).
					Str("path", path).
					Int("status", status).
					TimeDiff("duration", time.Now(), t1).
					Dur("db_duration", dbDuration).
					Msg("completed")
			}
		}()
		next.ServeHTTP(ww, r)
	}
	return http.HandlerFunc(fn)
}

type errorWrapperKeyType struct{}

var errorWrapperKey = &errorWrapperKeyType{}

type errorWrapper struct {
	err *oops.Error
}

func withErrorWrapper(r *http.Request, errorWrapper *errorWrapper) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), errorWrapperKey, errorWrapper))
	return r
}

func setError(r *http.Request, err *oops.Error) {
	errorWrapper, _ := r.Context().Value(errorWrapperKey).(*errorWrapper)
	errorWrapper.err = err
}

type loggerKeyType struct{}

var loggerKey = &loggerKeyType{}

func withLogger(r *http.Request, logger *WebLogger) *http.Request {
	r = r.WithContext(context.WithValue(r.Context(), loggerKey, logger))
	return r
}

func GetLogger(r *http.Request) *WebLogger {
	return r.Context().Value(loggerKey).(*WebLogger)
}

type WebLogger struct {
	RequestId string
}

func (l *WebLogger) Info() *zerolog.Event {
	return l.logWebCommon(log.Base.Info())
}

func (l *WebLogger) Warn() *zerolog.Event {
	return l.logWebCommon(log.Base.Warn())
}

func (l *WebLogger) Error() *zerolog.Event {
	return l.logWebCommon(log.Base.Error())
}

func (l *WebLogger) logWebCommon(event *zerolog.Event) *zerolog.Event {
	return event.Timestamp().Str("request_id", l.RequestId)
}
