package clientip

import (
	"net"
	"net/http"
	"strings"
)

// DefaultHeaders lists the proxy headers GetIP consults, highest priority first.
var DefaultHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address using DefaultHeaders.
func GetIP(r *http.Request) string {
	return Resolve(r.Header, r.RemoteAddr, DefaultHeaders...)
}

// Resolve returns the first valid IP found in headers, in order, falling back
// to remoteAddr ("host:port" or a bare IP). It returns an empty string when
// nothing valid is found.
func Resolve(h http.Header, remoteAddr string, headers ...string) string {
	for _, name := range headers {
		for candidate := range strings.SplitSeq(h.Get(name), ",") {
			if ip := parseIP(candidate); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return parseIP(remoteAddr)
	}
	return parseIP(host)
}

// parseIP validates and normalizes an IP address string.
func parseIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}
