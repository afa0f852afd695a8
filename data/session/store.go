package session

import (
	"net/http"

	"zlib_opds_proxy/internal/model"
)

// Store holds the session credentials for the remote catalog. It is filled
// once at startup and read-only afterwards, so it is safe to share between
// concurrent requests without synchronization.
type Store struct {
	creds []model.SessionCredential
}

func NewStore(creds []model.SessionCredential) *Store {
	return &Store{creds: creds}
}

func (s *Store) Len() int {
	return len(s.creds)
}

// Cookies converts the stored credentials into http cookies ready to be
// attached to outbound requests.
func (s *Store) Cookies() []*http.Cookie {
	cookies := make([]*http.Cookie, 0, len(s.creds))
	for _, c := range s.creds {
		path := c.Path
		if path == "" {
			path = "/"
		}
		cookies = append(cookies, &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   path,
		})
	}
	return cookies
}
