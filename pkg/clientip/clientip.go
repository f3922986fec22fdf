package clientip

import (
	"net"
	"net/http"
	"strings"
)

// proxyHeaders are consulted in order before RemoteAddr. X-Forwarded-For
// yields its first valid entry.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the normalized client IP of r, or "" when none is valid.
func GetIP(r *http.Request) string {
	for _, name := range proxyHeaders {
		v := r.Header.Get(name)
		if v == "" {
			continue
		}
		for candidate := range strings.SplitSeq(v, ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return parseIP(r.RemoteAddr)
	}
	return parseIP(host)
}

func parseIP(s string) string {
	ip := net.ParseIP(strings.TrimSpace(s))
	if ip == nil {
		return ""
	}
	return ip.String()
}
