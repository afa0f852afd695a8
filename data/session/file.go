package session

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	"zlib_opds_proxy/internal/model"
)

// LoadFromFile reads the cookie dump produced by the external login step.
// A missing or empty file is not an error: the store starts empty and the
// first search against the remote site will surface the consequences.
func LoadFromFile(path string) (*Store, error) {
	op := "session.LoadFromFile"

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			slog.Warn("cookie file not found, starting with empty session", slog.String("op", op), slog.String("path", path))
			return NewStore(nil), nil
		}
		return nil, fmt.Errorf("stat cookie file: %w", err)
	}

	if info.Size() == 0 {
		slog.Warn("cookie file is empty, starting with empty session", slog.String("op", op), slog.String("path", path))
		return NewStore(nil), nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cookie file: %w", err)
	}

	var creds []model.SessionCredential
	if err := json.Unmarshal(raw, &creds); err != nil {
		return nil, fmt.Errorf("unmarshal cookie file: %w", err)
	}

	slog.Info("loaded session credentials", slog.String("op", op), slog.String("path", path), slog.Int("count", len(creds)))

	return NewStore(creds), nil
}
