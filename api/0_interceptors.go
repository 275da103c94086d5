package api

import (
	"context"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"
	"github.com/google/uuid"
)

func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Println("PANIC:", err)
				debug.PrintStack()
				box.SetError(ctx, ErrInternal)
			}
		}()
		next(ctx)
	}
}

// AccessLog tags every request with an X-Request-Id, reusing the one sent
// by the client.
func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			requestId := r.Header.Get("X-Request-Id")
			if requestId == "" {
				requestId = uuid.NewString()
			}
			box.GetResponse(ctx).Header().Set("X-Request-Id", requestId)

			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), requestId, formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	i := strings.LastIndex(r.RemoteAddr, ":")
	if i < 0 {
		return r.RemoteAddr
	}
	return r.RemoteAddr[0:i]
}
