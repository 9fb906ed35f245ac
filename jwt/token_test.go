package jwt_test

import (
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/axent-pl/jwksverify/common"
	"github.com/axent-pl/jwksverify/jwt"
)

func segment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		want    jwt.Header
		wantErr bool
	}{
		{
			name:  "alg kid typ",
			token: segment(`{"alg":"RS256","kid":"a","typ":"JWT","x5t":"abc"}`) + ".e30.c2ln",
			want:  jwt.Header{Alg: "RS256", Kid: "a", Typ: "JWT"},
		},
		{
			name:  "alg only",
			token: segment(`{"alg":"ES384"}`) + ".e30.c2ln",
			want:  jwt.Header{Alg: "ES384"},
		},
		{
			name:  "empty signature segment",
			token: segment(`{"alg":"HS256"}`) + ".e30.",
			want:  jwt.Header{Alg: "HS256"},
		},
		{name: "two segments", token: segment(`{"alg":"RS256"}`) + ".e30", wantErr: true},
		{name: "four segments", token: segment(`{"alg":"RS256"}`) + ".e30.c2ln.c2ln", wantErr: true},
		{name: "header not base64url", token: "!!!.e30.c2ln", wantErr: true},
		{name: "header not json", token: segment(`alg`) + ".e30.c2ln", wantErr: true},
		{name: "header is null", token: segment(`null`) + ".e30.c2ln", wantErr: true},
		{name: "header is array", token: segment(`["RS256"]`) + ".e30.c2ln", wantErr: true},
		{name: "kid not a string", token: segment(`{"alg":"RS256","kid":7}`) + ".e30.c2ln", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.ParseHeader(tt.token)
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidInput) {
					t.Fatalf("ParseHeader() error = %v, want %v", err, common.ErrInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHeader() unexpected error: %v", err)
			}
			if got.Alg != tt.want.Alg || got.Kid != tt.want.Kid || got.Typ != tt.want.Typ {
				t.Fatalf("ParseHeader() = %+v, want %+v", *got, tt.want)
			}
			if got.Raw["alg"] != tt.want.Alg {
				t.Fatalf("ParseHeader().Raw[alg] = %v, want %q", got.Raw["alg"], tt.want.Alg)
			}
		})
	}
}

func TestTokenFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     func() *http.Request
		want    string
		wantErr bool
	}{
		{
			name: "bearer header",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer abc.def.ghi")
				return r
			},
			want: "abc.def.ghi",
		},
		{
			name: "bearer scheme is case insensitive",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "bearer abc.def.ghi")
				return r
			},
			want: "abc.def.ghi",
		},
		{
			name: "basic scheme",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
				return r
			},
			wantErr: true,
		},
		{
			name: "malformed header",
			req: func() *http.Request {
				r := httptest.NewRequest(http.MethodGet, "/", nil)
				r.Header.Set("Authorization", "Bearer")
				return r
			},
			wantErr: true,
		},
		{
			name: "access_token form value",
			req: func() *http.Request {
				form := url.Values{"access_token": {"abc.def.ghi"}}
				r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
				r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
				return r
			},
			want: "abc.def.ghi",
		},
		{
			name: "access_token query",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/?access_token=abc.def.ghi", nil)
			},
			want: "abc.def.ghi",
		},
		{
			name: "no token",
			req: func() *http.Request {
				return httptest.NewRequest(http.MethodGet, "/", nil)
			},
			wantErr: true,
		},
		{
			name:    "nil request",
			req:     func() *http.Request { return nil },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := jwt.TokenFromRequest(tt.req())
			if tt.wantErr {
				if !errors.Is(err, common.ErrInvalidInput) {
					t.Fatalf("TokenFromRequest() error = %v, want %v", err, common.ErrInvalidInput)
				}
				return
			}
			if err != nil {
				t.Fatalf("TokenFromRequest() unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("TokenFromRequest() = %q, want %q", got, tt.want)
			}
		})
	}
}
