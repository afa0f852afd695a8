package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"zlib_opds_proxy/config"
	"zlib_opds_proxy/data/session"
	"zlib_opds_proxy/internal/downloader"
	"zlib_opds_proxy/internal/feed"
	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/internal/service/bestsellerService"
	"zlib_opds_proxy/internal/token"
	"zlib_opds_proxy/utils"
)

type OpdsService interface {
	Search(ctx context.Context, query string, page int) ([]model.BookRecord, model.PaginationCursor)
}

type BestsellerService interface {
	GetBestsellers(ctx context.Context) ([]model.BestsellerEntry, error)
}

type Downloader interface {
	ResolveToken(tok string) (string, error)
	Stream(ctx context.Context, remoteUrl string) (*downloader.Download, error)
}

type Controller struct {
	cfg         *config.Config
	renderer    *feed.Renderer
	opds        OpdsService
	bestsellers BestsellerService
	downloader  Downloader
	store       *session.Store
}

func NewController(cfg *config.Config, opds OpdsService, bestsellers BestsellerService, dl Downloader, store *session.Store) *Controller {
	return &Controller{
		cfg:         cfg,
		renderer:    feed.NewRenderer(),
		opds:        opds,
		bestsellers: bestsellers,
		downloader:  dl,
		store:       store,
	}
}

func (ctrl *Controller) Home(c *gin.Context) {
	c.Redirect(http.StatusFound, "/opds")
}

func (ctrl *Controller) Index(c *gin.Context) {
	c.Data(http.StatusOK, feed.AtomContentType, []byte(ctrl.renderer.Index()))
}

func (ctrl *Controller) Root(c *gin.Context) {
	c.Data(http.StatusOK, feed.AtomContentType, []byte(ctrl.renderer.Root()))
}

func (ctrl *Controller) OpenSearch(c *gin.Context) {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	baseURL := scheme + "://" + c.Request.Host
	c.Data(http.StatusOK, feed.OpenSearchContentType, []byte(ctrl.renderer.OpenSearch(baseURL)))
}

// SearchFeed always answers 200 with a feed document once the query parses:
// upstream trouble shows up as an empty feed, not an error page.
func (ctrl *Controller) SearchFeed(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.String(http.StatusBadRequest, "missing required parameter q")
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.String(http.StatusBadRequest, "page must be a positive integer")
		return
	}

	ctx := c.Request.Context()
	records, cursor := ctrl.opds.Search(ctx, query, page)

	c.Data(http.StatusOK, feed.AtomContentType, []byte(ctrl.renderer.Search(query, records, cursor)))
}

func (ctrl *Controller) Bestsellers(c *gin.Context) {
	op := "Controller.Bestsellers"
	ctx := c.Request.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	entries, err := ctrl.bestsellers.GetBestsellers(ctx)
	if err != nil {
		if errors.Is(err, bestsellerService.ErrNotConfigured) {
			c.String(http.StatusNotFound, "bestseller feed is not configured")
			return
		}
		slog.Error("bestseller lookup failed, degrading to empty feed", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		entries = []model.BestsellerEntry{}
	}

	c.Data(http.StatusOK, feed.AtomContentType, []byte(ctrl.renderer.Bestsellers(entries)))
}

// Download redeems a token for the remote file and passes the upstream
// response through verbatim. Malformed tokens are the client's fault,
// transport faults are ours; upstream HTTP failures keep their status code.
func (ctrl *Controller) Download(c *gin.Context) {
	op := "Controller.Download"
	ctx := c.Request.Context()
	rqID := utils.GetRequestIDFromCtx(ctx)

	remoteUrl, err := ctrl.downloader.ResolveToken(c.Query("token"))
	if err != nil {
		if errors.Is(err, token.ErrMalformedToken) {
			c.String(http.StatusBadRequest, "malformed token")
			return
		}
		slog.Error("unexpected token resolution failure", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	dl, err := ctrl.downloader.Stream(ctx, remoteUrl)
	if err != nil {
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	defer dl.Body.Close()

	if dl.StatusCode < 200 || dl.StatusCode > 299 {
		// drain a short diagnostic instead of forwarding upstream's error page
		c.String(dl.StatusCode, "download failed with status %d", dl.StatusCode)
		return
	}

	c.Header("Content-Type", dl.ContentType)
	c.Status(dl.StatusCode)

	if _, err := io.Copy(c.Writer, dl.Body); err != nil {
		slog.Warn("download stream interrupted", slog.String("op", op), slog.String("rqID", rqID), slog.String("err", err.Error()))
	}
}

func (ctrl *Controller) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"cookies":   ctrl.store.Len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
