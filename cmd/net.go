package main

import (
	"net"
	"strconv"
	"strings"
)

// splitPeerList splits the comma-separated -peers value into single
// addresses, trimming whitespace and dropping empty entries so a trailing
// comma is harmless.
func splitPeerList(list string) []string {
	peers := []string{}
	for _, entry := range strings.Split(list, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			peers = append(peers, entry)
		}
	}
	return peers
}

// completePeerAddress fills in defaultPort when addr carries no port, so a
// bare host like "10.0.0.2" seeds "10.0.0.2:5000". URL and host:port forms
// pass through untouched; the ledger normalizes those on registration.
func completePeerAddress(addr string, defaultPort int) string {
	if strings.Contains(addr, "://") {
		return addr
	}
	if _, _, err := net.SplitHostPort(addr); err == nil {
		return addr
	}
	return net.JoinHostPort(addr, strconv.Itoa(defaultPort))
}
