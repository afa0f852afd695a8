package model

// BookRecord is one catalog card extracted from a search results page.
// Every field is text taken from the markup as-is (trimmed), any of them may
// be empty when the source omits the corresponding element.
type BookRecord struct {
	Title         string
	Author        string
	Publisher     string
	RemoteID      string
	DownloadPath  string
	CoverUrl      string
	Extension     string
	FilesizeLabel string
	Year          string
}

// PaginationCursor describes where a search results page sits in the remote
// site's pagination. HasNext is true only when the page carried a "next page"
// anchor, in which case NextPage holds that anchor's target page number.
type PaginationCursor struct {
	CurrentPage int
	HasNext     bool
	NextPage    int
}
