package domain

// Listing represents a single product listing scraped from a marketplace
type Listing struct {
	Title string `json:"title"`
	Price int    `json:"price"` // integer rupees; 0 means the price failed to parse
	URL   string `json:"url"`
	Image string `json:"image,omitempty"`
	Site  string `json:"site"` // e.g. "PriceOye", "Mega", "Daraz"
}

// CompareRequest represents an incoming price comparison request
type CompareRequest struct {
	Title        string `json:"title" binding:"required"`
	CurrentPrice int    `json:"current_price"`
	CurrentSite  string `json:"current_site,omitempty"` // defaults to "daraz"
}

// Comparison is the full outcome of one price comparison run
type Comparison struct {
	Success        bool      `json:"success"`
	OriginalTitle  string    `json:"original_title"`
	CleanedTitle   string    `json:"cleaned_title"`
	CurrentPrice   int       `json:"current_price"`
	CurrentSite    string    `json:"current_site"`
	FoundCheaper   bool      `json:"found_cheaper"`
	CheaperOptions []Listing `json:"cheaper_options"`
	BestDeal       *Listing  `json:"best_deal"`
	Savings        int       `json:"savings"`
	TotalResults   int       `json:"total_results"`   // all candidates scraped, pre-filter
	MatchedResults int       `json:"matched_results"` // candidates passing similarity
	SearchTimeMS   int64     `json:"search_time_ms"`
}
