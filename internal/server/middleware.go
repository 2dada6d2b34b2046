package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	userInfoKey
)

// UserInfo is the caller identity attached to a request.
type UserInfo struct {
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
}

var devUser = UserInfo{Login: "local", DisplayName: "Local Dev User"}

func withUser(r *http.Request, id int, info UserInfo) *http.Request {
	ctx := context.WithValue(r.Context(), userIDKey, id)
	ctx = context.WithValue(ctx, userInfoKey, info)
	return r.WithContext(ctx)
}

// userIDFromContext returns the caller's user ID, or 1 when no identity
// middleware ran.
func userIDFromContext(r *http.Request) int {
	if id, ok := r.Context().Value(userIDKey).(int); ok {
		return id
	}
	return 1
}

func userInfoFromContext(r *http.Request) UserInfo {
	if info, ok := r.Context().Value(userInfoKey).(UserInfo); ok {
		return info
	}
	return devUser
}

// DevIdentity attributes every request to user 1.
func DevIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, withUser(r, 1, devUser))
	})
}

// identify resolves the caller in order: tailnet peer, API key, and, when
// enabled, the development user.
func (s *Server) identify(next http.Handler) http.Handler {
	dev := DevIdentity(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.whois != nil {
			resp, err := s.whois.WhoIs(r.Context(), r.RemoteAddr)
			if err == nil && resp != nil && resp.UserProfile != nil {
				info := UserInfo{Login: resp.UserProfile.LoginName, DisplayName: resp.UserProfile.DisplayName}
				s.serveAs(w, r, next, info)
				return
			}
			if err != nil {
				s.log.Debug("whois failed", "remote", r.RemoteAddr, "error", err)
			}
		}

		if key := r.Header.Get("X-API-Key"); key != "" {
			if s.opts.APIKey == "" || key != s.opts.APIKey {
				writeJSON(w, http.StatusForbidden, map[string]string{"error": "invalid API key"})
				return
			}
			s.serveAs(w, r, next, UserInfo{Login: s.opts.APILogin})
			return
		}

		if s.opts.DevIdentity {
			dev.ServeHTTP(w, r)
			return
		}
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "missing API key"})
	})
}

func (s *Server) serveAs(w http.ResponseWriter, r *http.Request, next http.Handler, info UserInfo) {
	id, err := s.db.GetOrCreateUser(r.Context(), info.Login, info.DisplayName)
	if err != nil {
		s.log.Error("resolving user", "login", info.Login, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not resolve user"})
		return
	}
	next.ServeHTTP(w, withUser(r, id, info))
}

// RequestLogging returns middleware that logs each request.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

// CORS adds permissive CORS headers for local development.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-Key")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
