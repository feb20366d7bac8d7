package handler

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		allowed []string
		origin  string
		want    bool
	}{
		{name: "no origin header passes", allowed: nil, origin: "", want: true},
		{name: "same host when unconfigured", allowed: nil, origin: "http://portal.example.com", want: true},
		{name: "cross host when unconfigured", allowed: nil, origin: "https://evil.example.net", want: false},
		{name: "configured origin", allowed: []string{"https://app.example.com"}, origin: "https://app.example.com", want: true},
		{name: "configured origin case-insensitive", allowed: []string{"https://app.example.com"}, origin: "https://APP.example.com", want: true},
		{name: "unlisted origin", allowed: []string{"https://app.example.com"}, origin: "https://evil.example.net", want: false},
		{name: "same host rejected once configured", allowed: []string{"https://app.example.com"}, origin: "http://portal.example.com", want: false},
		{name: "malformed origin", allowed: nil, origin: "http://bad\x7forigin", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest("GET", "http://portal.example.com/registry/stream", nil)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}

			assert.Equal(t, tt.want, originChecker(tt.allowed)(req))
		})
	}
}
