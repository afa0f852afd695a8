package parser

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/gocolly/colly/v2"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/data/session"
	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/utils"
)

// ZlibParser fetches one search results page from the remote catalog and
// extracts its book cards. All structural assumptions about the remote
// markup (element and attribute names) live in this package only.
type ZlibParser struct {
	cfg   *config.Config
	store *session.Store
}

func NewZlibParser(cfg *config.Config, store *session.Store) *ZlibParser {
	return &ZlibParser{cfg: cfg, store: store}
}

func (z *ZlibParser) getCollector() (*colly.Collector, error) {
	op := "ZlibParser.getCollector"
	c := colly.NewCollector()
	c.SetRequestTimeout(z.cfg.SearchTimeout)

	if z.cfg.ProxyUrl != "" {
		if err := c.SetProxy(z.cfg.ProxyUrl); err != nil {
			slog.Error(
				"Failed to set proxy",
				slog.String("op", op),
				slog.String("err", err.Error()),
			)
			return nil, err
		}
	}

	if err := c.SetCookies(z.cfg.Zlib.BaseUrl, z.store.Cookies()); err != nil {
		slog.Error(
			"Failed to attach session cookies",
			slog.String("op", op),
			slog.String("err", err.Error()),
		)
		return nil, err
	}

	return c, nil
}

// SearchPage returns the page's book cards in document order plus the
// pagination cursor. A page without cards is a legitimate empty result, not
// an error. A missing field on a single card yields an empty string for that
// field only, the card itself is kept.
func (z *ZlibParser) SearchPage(ctx context.Context, query string, page int) (records []model.BookRecord, cursor model.PaginationCursor, err error) {
	op := "ZlibParser.SearchPage"
	rqID := utils.GetRequestIDFromCtx(ctx)

	cursor = model.PaginationCursor{CurrentPage: page}

	if page < 1 {
		return nil, cursor, fmt.Errorf("incorrect page %d", page)
	}

	c, err := z.getCollector()
	if err != nil {
		return nil, cursor, err
	}

	records = make([]model.BookRecord, 0)

	c.OnHTML("z-bookcard", func(e *colly.HTMLElement) {
		records = append(records, model.BookRecord{
			Title:         strings.TrimSpace(e.ChildText("div[slot=title]")),
			Author:        strings.TrimSpace(e.ChildText("div[slot=author]")),
			Publisher:     strings.TrimSpace(e.Attr("publisher")),
			RemoteID:      strings.TrimSpace(e.Attr("id")),
			DownloadPath:  strings.TrimSpace(e.Attr("download")),
			CoverUrl:      strings.TrimSpace(e.ChildAttr("img", "data-src")),
			Extension:     strings.TrimSpace(e.Attr("extension")),
			FilesizeLabel: strings.TrimSpace(e.Attr("filesize")),
			Year:          strings.TrimSpace(e.Attr("year")),
		})
	})

	// the last page of results legitimately has no such anchor
	c.OnHTML("a[title='Next page']", func(e *colly.HTMLElement) {
		cursor.HasNext = true
		cursor.NextPage = page + 1
		if target, parseErr := url.Parse(e.Attr("href")); parseErr == nil {
			if n, convErr := strconv.Atoi(target.Query().Get("page")); convErr == nil && n > page {
				cursor.NextPage = n
			}
		}
	})

	c.OnResponse(func(r *colly.Response) {
		body := string(r.Body)
		if strings.Contains(body, "form") && strings.Contains(body, "password") {
			slog.Warn(
				"search response looks like a login form, stored session cookies may be expired",
				slog.String("op", op),
				slog.String("rqID", rqID),
			)
		}
	})

	c.OnRequest(func(r *colly.Request) {
		slog.Info("Visiting", slog.String("op", op), slog.String("rqID", rqID), slog.String("url", r.URL.String()))
	})

	fullURL := z.searchURL(query, page)

	err = c.Visit(fullURL)
	if err != nil {
		slog.Error(
			"Error while visiting url",
			slog.String("op", op),
			slog.String("rqID", rqID),
			slog.String("url", fullURL),
			slog.String("err", err.Error()),
		)
		return nil, model.PaginationCursor{CurrentPage: page}, err
	}

	return records, cursor, nil
}

// searchURL builds <base>/s/<keywords>?page=N with the keywords collapsed to
// single spaces and percent-encoded the way the remote site expects (%20,
// not +).
func (z *ZlibParser) searchURL(query string, page int) string {
	keywords := strings.Join(strings.Fields(query), " ")
	encoded := strings.ReplaceAll(url.QueryEscape(keywords), "+", "%20")
	return z.cfg.Zlib.BaseUrl + z.cfg.Zlib.SearchPath + encoded + "?page=" + strconv.Itoa(page)
}
