package opdsService

import (
	"context"
	"log/slog"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/utils"
)

type BooksParser interface {
	SearchPage(ctx context.Context, query string, page int) ([]model.BookRecord, model.PaginationCursor, error)
}

type OpdsService struct {
	cfg    *config.Config
	parser BooksParser
}

func New(cfg *config.Config, parser BooksParser) *OpdsService {
	return &OpdsService{cfg: cfg, parser: parser}
}

// Search runs one remote search page through extraction. An upstream failure
// degrades to an empty result set: an e-reader polling a feed URL cannot do
// anything useful with a raw upstream error, so the caller always gets
// something renderable.
func (s *OpdsService) Search(ctx context.Context, query string, page int) ([]model.BookRecord, model.PaginationCursor) {
	op := "OpdsService.Search"
	rqID := utils.GetRequestIDFromCtx(ctx)

	records, cursor, err := s.parser.SearchPage(ctx, query, page)
	if err != nil {
		slog.Error(
			"remote search failed, degrading to empty feed",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("query", query),
			slog.Int("page", page),
			slog.String("err", err.Error()),
		)
		return []model.BookRecord{}, model.PaginationCursor{CurrentPage: page}
	}

	return records, cursor
}
