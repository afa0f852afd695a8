package downloader

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/data/session"
	"zlib_opds_proxy/internal/token"
	"zlib_opds_proxy/utils"
)

// FileDownloader redeems download tokens against the remote catalog. The
// response body is handed back as a stream so large files never sit fully in
// memory; the caller owns closing it.
type FileDownloader struct {
	cfg    *config.Config
	client *http.Client
}

// Download is the upstream response passed through verbatim: status code and
// content type unchanged, body still open.
type Download struct {
	Body        io.ReadCloser
	ContentType string
	StatusCode  int
}

func NewFileDownloader(cfg *config.Config, store *session.Store) *FileDownloader {
	jar, _ := cookiejar.New(nil)
	if base, err := url.Parse(cfg.Zlib.BaseUrl); err == nil {
		jar.SetCookies(base, store.Cookies())
	}

	client := &http.Client{
		Timeout: cfg.DownloadTimeout,
		Jar:     jar,
	}

	if cfg.ProxyUrl != "" {
		if proxyURL, err := url.Parse(cfg.ProxyUrl); err == nil {
			client.Transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		} else {
			slog.Error("Failed to parse proxy url, continuing without proxy", slog.String("err", err.Error()))
		}
	}

	return &FileDownloader{cfg: cfg, client: client}
}

// ResolveToken decodes a previously issued token into the full remote URL.
// Returns token.ErrMalformedToken when the token does not decode.
func (f *FileDownloader) ResolveToken(tok string) (string, error) {
	remoteID, downloadPath, err := token.Decode(tok)
	if err != nil {
		return "", err
	}

	slog.Debug("resolved download token", slog.String("remoteID", remoteID), slog.String("path", downloadPath))

	return f.cfg.Zlib.BaseUrl + downloadPath, nil
}

// Stream fetches the remote URL with the stored session cookies, following
// redirects. Transport-level faults come back as an error; any HTTP response,
// 2xx or not, comes back as a Download for the caller to pass through.
func (f *FileDownloader) Stream(ctx context.Context, remoteUrl string) (*Download, error) {
	op := "FileDownloader.Stream"
	rqID := utils.GetRequestIDFromCtx(ctx)
	slog.Info("Download start", slog.String("rqID", rqID), slog.String("op", op), slog.String("url", remoteUrl))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remoteUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		slog.Error(
			"Download request failed",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("url", remoteUrl),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	slog.Info(
		"Download response",
		slog.String("rqID", rqID),
		slog.String("op", op),
		slog.Int("status", resp.StatusCode),
		slog.String("contentType", contentType),
	)

	return &Download{
		Body:        resp.Body,
		ContentType: contentType,
		StatusCode:  resp.StatusCode,
	}, nil
}
