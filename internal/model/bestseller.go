package model

// BestsellerEntry is one item mapped from the bestseller-list API response.
type BestsellerEntry struct {
	Title       string
	Author      string
	Description string
	ProductUrl  string
	ImageUrl    string
}
