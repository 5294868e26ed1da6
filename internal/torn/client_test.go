package torn

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientProfile(t *testing.T) {
	var gotPath, gotSelections, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotSelections = r.URL.Query().Get("selections")
		gotKey = r.URL.Query().Get("key")
		w.Write([]byte(`{"level": 42, "name": "Alice", "faction": {"faction_id": 7, "faction_name": "Night Owls"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", 0)
	p, err := c.Profile(context.Background(), "111", "secret")
	if err != nil {
		t.Fatalf("Profile() error: %v", err)
	}

	if gotPath != "/user/111" || gotSelections != "profile" || gotKey != "secret" {
		t.Errorf("request = %s selections=%s key=%s", gotPath, gotSelections, gotKey)
	}
	if p.Level != 42 || p.Faction != "Night Owls" {
		t.Errorf("Profile() = %+v", p)
	}
}

func TestClientProfileErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		check  func(error) bool
	}{
		{
			name:   "server error",
			status: http.StatusInternalServerError,
			body:   `{}`,
			check:  func(err error) bool { return errors.Is(err, ErrUnexpectedStatus) },
		},
		{
			name:   "api error payload",
			status: http.StatusOK,
			body:   `{"error": {"code": 2, "error": "Incorrect key"}}`,
			check: func(err error) bool {
				var apiErr *APIError
				return errors.As(err, &apiErr) && apiErr.Code == 2 && apiErr.Message == "Incorrect key"
			},
		},
		{
			name:   "no faction object",
			status: http.StatusOK,
			body:   `{"level": 3}`,
			check:  func(err error) bool { return errors.Is(err, ErrMalformed) },
		},
		{
			name:   "not json",
			status: http.StatusOK,
			body:   `<html>`,
			check:  func(err error) bool { return errors.Is(err, ErrMalformed) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewClient(srv.URL, 0).Profile(context.Background(), "1", "k")
			if err == nil || !tt.check(err) {
				t.Errorf("Profile() error = %v", err)
			}
		})
	}
}

func TestParseProfileEmptyFaction(t *testing.T) {
	p, err := parseProfile([]byte(`{"level": 1, "faction": {"faction_id": 0, "faction_name": "None"}}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Faction != "None" {
		t.Errorf("Faction = %q, want None", p.Faction)
	}
}
