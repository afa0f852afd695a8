package bestsellerService

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/utils"
)

type BestsellerService struct {
	cfg    *config.Config
	client *http.Client
}

func New(cfg *config.Config) *BestsellerService {
	return &BestsellerService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.SearchTimeout},
	}
}

// apiResponse mirrors the bestseller-list API shape, only the fields the
// feed needs.
type apiResponse struct {
	Results struct {
		Books []struct {
			Title            string `json:"title"`
			Author           string `json:"author"`
			Description      string `json:"description"`
			AmazonProductUrl string `json:"amazon_product_url"`
			BookImage        string `json:"book_image"`
		} `json:"books"`
	} `json:"results"`
}

func (s *BestsellerService) GetBestsellers(ctx context.Context) ([]model.BestsellerEntry, error) {
	op := "BestsellerService.GetBestsellers"
	rqID := utils.GetRequestIDFromCtx(ctx)

	if s.cfg.Bestsellers.ApiUrl == "" {
		return nil, ErrNotConfigured
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Bestsellers.ApiUrl, nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Error("bestseller api request failed", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.Error("bestseller api returned non-ok status", slog.String("op", op), slog.String("rqID", rqID), slog.Int("status", resp.StatusCode))
		return nil, fmt.Errorf("bestseller api status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bestseller response: %w", err)
	}

	var parsed apiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("unmarshal bestseller response: %w", err)
	}

	entries := make([]model.BestsellerEntry, 0, len(parsed.Results.Books))
	for _, b := range parsed.Results.Books {
		entries = append(entries, model.BestsellerEntry{
			Title:       b.Title,
			Author:      b.Author,
			Description: b.Description,
			ProductUrl:  b.AmazonProductUrl,
			ImageUrl:    b.BookImage,
		})
	}

	return entries, nil
}
