package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"net/url"
	"strings"
	"time"

	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/internal/token"
)

const (
	AtomContentType       = "application/atom+xml; charset=utf-8"
	OpenSearchContentType = "application/opensearchdescription+xml; charset=utf-8"
)

var extensionSymbols = map[string]string{
	"pdf":  "📄",
	"djvu": "📄",
	"epub": "📖",
	"fb2":  "📖",
	"mobi": "📚",
	"azw3": "📚",
	"txt":  "📝",
}

const defaultSymbol = "📁"

type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// Search renders one page of extracted book records as an OPDS acquisition
// feed. Entries appear in the order received. Pagination links follow the
// cursor: "next" only when the source page had a next-page anchor,
// "previous" and "first" whenever the page is past the first one.
func (r *Renderer) Search(query string, records []model.BookRecord, cursor model.PaginationCursor) string {
	var buf bytes.Buffer

	keywords := strings.Join(strings.Fields(query), " ")
	escapedQ := url.QueryEscape(keywords)
	updated := time.Now().UTC().Format(time.RFC3339)

	buf.WriteString(xml.Header)
	buf.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opds="http://opds-spec.org/2010/catalog" xmlns:dc="http://purl.org/dc/terms/">`)
	buf.WriteString("\n")

	writeElement(&buf, "title", "Search: "+keywords, 2)
	writeElement(&buf, "id", "urn:zlib:opds:search:"+strings.ReplaceAll(keywords, " ", "-"), 2)
	writeElement(&buf, "updated", updated, 2)

	writeLink(&buf, "self", fmt.Sprintf("/opds/search?q=%s&page=%d", escapedQ, cursor.CurrentPage), AtomLinkType, 2)
	writeLink(&buf, "start", "/opds/root.xml", AtomLinkType, 2)

	if cursor.HasNext {
		writeLink(&buf, "next", fmt.Sprintf("/opds/search?q=%s&page=%d", escapedQ, cursor.NextPage), AtomLinkType, 2)
	}

	if cursor.CurrentPage > 1 {
		writeLink(&buf, "previous", fmt.Sprintf("/opds/search?q=%s&page=%d", escapedQ, cursor.CurrentPage-1), AtomLinkType, 2)
		writeLink(&buf, "first", fmt.Sprintf("/opds/search?q=%s&page=1", escapedQ), AtomLinkType, 2)
	}

	for _, rec := range records {
		r.writeEntry(&buf, rec, updated)
	}

	buf.WriteString("</feed>\n")

	return buf.String()
}

func (r *Renderer) writeEntry(buf *bytes.Buffer, rec model.BookRecord, updated string) {
	acquisitionHref := "/download?token=" + token.Encode(rec.RemoteID, rec.DownloadPath)

	buf.WriteString("  <entry>\n")
	writeElement(buf, "title", rec.Title, 4)

	buf.WriteString("    <author>\n")
	writeElement(buf, "name", decorateAuthor(rec.Author, rec.Extension), 6)
	buf.WriteString("    </author>\n")

	writeElement(buf, "id", acquisitionHref, 4)
	writeElement(buf, "updated", updated, 4)
	writeElement(buf, "dc:publisher", rec.Publisher, 4)

	summary := fmt.Sprintf("Format: %s, Size: %s, Year: %s",
		strings.ToUpper(rec.Extension), rec.FilesizeLabel, rec.Year)
	buf.WriteString(`    <content type="text">`)
	escapeInto(buf, summary)
	buf.WriteString("</content>\n")

	writeLink(buf, "http://opds-spec.org/acquisition", acquisitionHref, "application/octet-stream", 4)
	writeLink(buf, "http://opds-spec.org/image", rec.CoverUrl, "image/jpeg", 4)
	writeLink(buf, "http://opds-spec.org/image/thumbnail", rec.CoverUrl, "image/jpeg", 4)

	buf.WriteString("  </entry>\n")
}

// Bestsellers renders the simply-mapped bestseller-list entries. These point
// straight at the upstream product pages, no download indirection involved.
func (r *Renderer) Bestsellers(entries []model.BestsellerEntry) string {
	var buf bytes.Buffer

	updated := time.Now().UTC().Format(time.RFC3339)

	buf.WriteString(xml.Header)
	buf.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opds="http://opds-spec.org/2010/catalog">`)
	buf.WriteString("\n")

	writeElement(&buf, "title", "Bestsellers", 2)
	writeElement(&buf, "id", "urn:zlib:opds:bestsellers", 2)
	writeElement(&buf, "updated", updated, 2)
	writeLink(&buf, "self", "/opds/bestsellers", AtomLinkType, 2)
	writeLink(&buf, "start", "/opds/root.xml", AtomLinkType, 2)

	for _, e := range entries {
		buf.WriteString("  <entry>\n")
		writeElement(&buf, "title", e.Title, 4)
		buf.WriteString("    <author>\n")
		writeElement(&buf, "name", e.Author, 6)
		buf.WriteString("    </author>\n")
		writeElement(&buf, "id", "urn:zlib:opds:bestsellers:"+slugify(e.Title), 4)
		writeElement(&buf, "updated", updated, 4)
		buf.WriteString(`    <content type="text">`)
		escapeInto(&buf, e.Description)
		buf.WriteString("</content>\n")
		writeLink(&buf, "alternate", e.ProductUrl, "text/html", 4)
		writeLink(&buf, "http://opds-spec.org/image", e.ImageUrl, "image/jpeg", 4)
		buf.WriteString("  </entry>\n")
	}

	buf.WriteString("</feed>\n")

	return buf.String()
}

func decorateAuthor(author, extension string) string {
	symbol, ok := extensionSymbols[strings.ToLower(extension)]
	if !ok {
		symbol = defaultSymbol
	}
	if author == "" {
		return symbol
	}
	return author + " " + symbol
}

func slugify(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.Join(strings.Fields(s), " ")), " ", "-")
}
