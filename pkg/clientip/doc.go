// Package clientip resolves the originating client's IP address for requests
// that may have passed through reverse proxies.
//
// Resolve walks a list of proxy headers in priority order and returns the
// first valid IP it finds. Headers may carry comma-separated lists, in which
// case the first valid entry wins. When no header yields an address the TCP
// peer address is used.
//
// GetIP applies DefaultHeaders:
//
//  1. CF-Connecting-IP
//  2. DO-Connecting-IP
//  3. X-Forwarded-For
//  4. X-Real-IP
//
// Only trust these headers when the service runs behind proxies that set
// them; otherwise clients can spoof their address.
package clientip
