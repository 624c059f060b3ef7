package message

import (
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrymomot/reqkit/pkg/clientip"
	"github.com/dmitrymomot/reqkit/pkg/requestid"
)

// serverParams derives CGI-style server parameters from r.
func serverParams(r *http.Request, now time.Time) map[string]any {
	requestURI := r.RequestURI
	if requestURI == "" && r.URL != nil {
		requestURI = r.URL.RequestURI()
	}
	rawQuery := ""
	if r.URL != nil {
		rawQuery = r.URL.RawQuery
	}
	proto := r.Proto
	if proto == "" {
		proto = "HTTP/" + DefaultProtocolVersion
	}

	params := map[string]any{
		"REQUEST_METHOD":     r.Method,
		"REQUEST_URI":        requestURI,
		"QUERY_STRING":       rawQuery,
		"SERVER_PROTOCOL":    proto,
		"REQUEST_TIME":       now.Unix(),
		"REQUEST_TIME_FLOAT": float64(now.UnixNano()) / float64(time.Second),
		"CLIENT_IP":          clientip.GetIP(r),
	}

	host, port := splitHost(r.Host)
	if port == "" {
		port = "80"
		if r.TLS != nil {
			port = "443"
		}
	}
	params["SERVER_NAME"] = host
	params["SERVER_PORT"] = port
	if r.TLS != nil {
		params["HTTPS"] = "on"
	}

	if remoteHost, remotePort, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		params["REMOTE_ADDR"] = remoteHost
		params["REMOTE_PORT"] = remotePort
	} else if r.RemoteAddr != "" {
		params["REMOTE_ADDR"] = r.RemoteAddr
	}

	if ct := r.Header.Get("Content-Type"); ct != "" {
		params["CONTENT_TYPE"] = ct
	}
	if cl := r.Header.Get("Content-Length"); cl != "" {
		params["CONTENT_LENGTH"] = cl
	} else if r.ContentLength > 0 {
		params["CONTENT_LENGTH"] = strconv.FormatInt(r.ContentLength, 10)
	}

	if id := requestid.FromContext(r.Context()); id != "" {
		params["REQUEST_ID"] = id
	}

	if r.Host != "" {
		params["HTTP_HOST"] = r.Host
	}
	for name, values := range r.Header {
		key := strings.ToUpper(strings.ReplaceAll(name, "-", "_"))
		if key == "CONTENT_TYPE" || key == "CONTENT_LENGTH" {
			continue
		}
		params["HTTP_"+key] = strings.Join(values, ", ")
	}

	return params
}

func splitHost(hostport string) (string, string) {
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		return hostport, ""
	}
	return host, port
}
