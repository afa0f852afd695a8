package feed

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"zlib_opds_proxy/internal/model"
	"zlib_opds_proxy/internal/token"
)

type parsedFeed struct {
	XMLName xml.Name     `xml:"feed"`
	Title   string       `xml:"title"`
	ID      string       `xml:"id"`
	Links   []parsedLink `xml:"link"`
	Entries []struct {
		Title  string `xml:"title"`
		Author struct {
			Name string `xml:"name"`
		} `xml:"author"`
		Links []parsedLink `xml:"link"`
	} `xml:"entry"`
}

type parsedLink struct {
	Rel  string `xml:"rel,attr"`
	Href string `xml:"href,attr"`
	Type string `xml:"type,attr"`
}

func parseFeed(t *testing.T, doc string) parsedFeed {
	t.Helper()
	var f parsedFeed
	err := xml.Unmarshal([]byte(doc), &f)
	assert.Nil(t, err, "rendered feed must be well-formed XML")
	return f
}

func linkByRel(links []parsedLink, rel string) *parsedLink {
	for i := range links {
		if links[i].Rel == rel {
			return &links[i]
		}
	}
	return nil
}

func sampleRecords() []model.BookRecord {
	return []model.BookRecord{
		{
			Title:         "Deep Learning",
			Author:        "Ian Goodfellow",
			Publisher:     "MIT Press",
			RemoteID:      "1177363",
			DownloadPath:  "/dl/1177363/f36c8a",
			CoverUrl:      "https://covers.test.com/books/1177363.jpg",
			Extension:     "pdf",
			FilesizeLabel: "23.85 MB",
			Year:          "2016",
		},
		{
			Title:         "Deep Learning with Python",
			Author:        "Francois Chollet",
			Publisher:     "Manning",
			RemoteID:      "2929403",
			DownloadPath:  "/dl/2929403/a91c02",
			CoverUrl:      "https://covers.test.com/books/2929403.jpg",
			Extension:     "epub",
			FilesizeLabel: "4.21 MB",
			Year:          "2019",
		},
	}
}

func TestSearch_EntriesKeepDocumentOrder(t *testing.T) {
	doc := NewRenderer().Search("deep learning", sampleRecords(), model.PaginationCursor{CurrentPage: 1, HasNext: true, NextPage: 2})

	f := parseFeed(t, doc)
	assert.Len(t, f.Entries, 2)
	assert.Equal(t, "Deep Learning", f.Entries[0].Title)
	assert.Equal(t, "Deep Learning with Python", f.Entries[1].Title)
}

func TestSearch_FeedMetadata(t *testing.T) {
	doc := NewRenderer().Search("  deep   learning ", nil, model.PaginationCursor{CurrentPage: 1})

	f := parseFeed(t, doc)
	assert.Equal(t, "Search: deep learning", f.Title)
	assert.Equal(t, "urn:zlib:opds:search:deep-learning", f.ID)
}

func TestSearch_NextLinkFollowsCursor(t *testing.T) {
	r := NewRenderer()

	withNext := parseFeed(t, r.Search("deep learning", nil, model.PaginationCursor{CurrentPage: 1, HasNext: true, NextPage: 2}))
	next := linkByRel(withNext.Links, "next")
	assert.NotNil(t, next)
	assert.Equal(t, "/opds/search?q=deep+learning&page=2", next.Href)

	withoutNext := parseFeed(t, r.Search("deep learning", nil, model.PaginationCursor{CurrentPage: 1}))
	assert.Nil(t, linkByRel(withoutNext.Links, "next"))
}

func TestSearch_PreviousAndFirstOnlyPastPageOne(t *testing.T) {
	r := NewRenderer()

	pageOne := parseFeed(t, r.Search("go", nil, model.PaginationCursor{CurrentPage: 1, HasNext: true, NextPage: 2}))
	assert.Nil(t, linkByRel(pageOne.Links, "previous"))
	assert.Nil(t, linkByRel(pageOne.Links, "first"))

	// present regardless of hasNext on any later page
	pageThree := parseFeed(t, r.Search("go", nil, model.PaginationCursor{CurrentPage: 3}))
	prev := linkByRel(pageThree.Links, "previous")
	first := linkByRel(pageThree.Links, "first")
	assert.NotNil(t, prev)
	assert.NotNil(t, first)
	assert.Equal(t, "/opds/search?q=go&page=2", prev.Href)
	assert.Equal(t, "/opds/search?q=go&page=1", first.Href)
}

func TestSearch_SelfAndNextShareQueryEscaping(t *testing.T) {
	doc := parseFeed(t, NewRenderer().Search("deep learning", nil, model.PaginationCursor{CurrentPage: 1, HasNext: true, NextPage: 2}))

	self := linkByRel(doc.Links, "self")
	next := linkByRel(doc.Links, "next")
	assert.NotNil(t, self)
	assert.NotNil(t, next)
	assert.Contains(t, self.Href, "q=deep+learning")
	assert.Contains(t, next.Href, "q=deep+learning")
}

func TestSearch_EscapesUntrustedText(t *testing.T) {
	records := []model.BookRecord{{
		Title:     `Tom & "Jerry" <Deluxe>`,
		Author:    `A < B & C`,
		Extension: "pdf",
	}}

	doc := NewRenderer().Search("cartoons", records, model.PaginationCursor{CurrentPage: 1})

	f := parseFeed(t, doc)
	assert.Len(t, f.Entries, 1)
	assert.Equal(t, `Tom & "Jerry" <Deluxe>`, f.Entries[0].Title)
	assert.True(t, strings.HasPrefix(f.Entries[0].Author.Name, "A < B & C"))
}

func TestSearch_AcquisitionLinkRoundTripsThroughCodec(t *testing.T) {
	doc := parseFeed(t, NewRenderer().Search("deep learning", sampleRecords(), model.PaginationCursor{CurrentPage: 1}))

	for i, rec := range sampleRecords() {
		acq := linkByRel(doc.Entries[i].Links, "http://opds-spec.org/acquisition")
		assert.NotNil(t, acq)
		assert.True(t, strings.HasPrefix(acq.Href, "/download?token="))

		id, path, err := token.Decode(strings.TrimPrefix(acq.Href, "/download?token="))
		assert.Nil(t, err)
		assert.Equal(t, rec.RemoteID, id)
		assert.Equal(t, rec.DownloadPath, path)
	}
}

func TestSearch_AuthorDecoratedWithExtensionSymbol(t *testing.T) {
	records := []model.BookRecord{
		{Author: "Jane Roe", Extension: "epub"},
		{Author: "John Doe", Extension: "weird"},
	}

	doc := parseFeed(t, NewRenderer().Search("q", records, model.PaginationCursor{CurrentPage: 1}))

	assert.Equal(t, "Jane Roe 📖", doc.Entries[0].Author.Name)
	assert.Equal(t, "John Doe 📁", doc.Entries[1].Author.Name)
}

func TestSearch_MissingFieldsRenderEmptyValues(t *testing.T) {
	records := []model.BookRecord{{
		Title:        "Coverless",
		RemoteID:     "9",
		DownloadPath: "/dl/9/x",
		Extension:    "pdf",
	}}

	doc := NewRenderer().Search("coverless", records, model.PaginationCursor{CurrentPage: 1})

	f := parseFeed(t, doc)
	image := linkByRel(f.Entries[0].Links, "http://opds-spec.org/image")
	assert.NotNil(t, image)
	assert.Equal(t, "", image.Href)
	assert.Contains(t, doc, "<dc:publisher></dc:publisher>")
}

func TestBestsellers_MapsEntries(t *testing.T) {
	entries := []model.BestsellerEntry{
		{Title: "First Book", Author: "A. Author", Description: "desc", ProductUrl: "https://shop.test/1", ImageUrl: "https://img.test/1.jpg"},
		{Title: "Second Book", Author: "B. Author", Description: "other", ProductUrl: "https://shop.test/2", ImageUrl: "https://img.test/2.jpg"},
	}

	doc := parseFeed(t, NewRenderer().Bestsellers(entries))

	assert.Equal(t, "Bestsellers", doc.Title)
	assert.Len(t, doc.Entries, 2)
	assert.Equal(t, "First Book", doc.Entries[0].Title)
	alt := linkByRel(doc.Entries[0].Links, "alternate")
	assert.NotNil(t, alt)
	assert.Equal(t, "https://shop.test/1", alt.Href)
}

func TestStaticDocuments_AreWellFormed(t *testing.T) {
	r := NewRenderer()

	parseFeed(t, r.Index())
	parseFeed(t, r.Root())

	var osd struct {
		XMLName xml.Name `xml:"OpenSearchDescription"`
		Url     struct {
			Template string `xml:"template,attr"`
		} `xml:"Url"`
	}
	err := xml.Unmarshal([]byte(r.OpenSearch("http://localhost:8080")), &osd)
	assert.Nil(t, err)
	assert.Equal(t, "http://localhost:8080/opds/search?q={searchTerms}", osd.Url.Template)
}
