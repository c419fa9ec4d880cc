package domain

import "time"

// ResultRecord is one persisted quiz outcome, owned by the result store
// after a successful write.
type ResultRecord struct {
	UserAddress       string
	Match             Coin
	Scores            Tally
	Timestamp         time.Time
	AnimalRestriction string
	ChainRestriction  string
}

// RelayResult is the relay's ephemeral stamped copy of a submitted result.
// Field names mirror the websocket payloads consumed by the dashboard.
type RelayResult struct {
	ID                string    `json:"id"`
	Match             string    `json:"memecoin_match"`
	Scores            Tally     `json:"scores,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	AnimalRestriction string    `json:"animal_restriction,omitempty"`
	ChainRestriction  string    `json:"blockchain_restriction,omitempty"`
}

// RelayStats summarizes the relay's in-memory cache for the stats widget.
type RelayStats struct {
	TotalResults    int       `json:"totalResults"`
	RecentCount     int       `json:"recentCount"`
	PopularMemecoin *string   `json:"popularMemecoin"`
	Timestamp       time.Time `json:"timestamp"`
}

// ResultFilter narrows an analytics query. Period is "all" or a number of
// days; Animal and Chain are "all" or exact facet values.
type ResultFilter struct {
	Period string
	Animal string
	Chain  string
}

// Normalize maps empty fields to "all".
func (f ResultFilter) Normalize() ResultFilter {
	if f.Period == "" {
		f.Period = "all"
	}
	if f.Animal == "" {
		f.Animal = "all"
	}
	if f.Chain == "" {
		f.Chain = "all"
	}
	return f
}

// Key returns a stable cache key for the normalized filter.
func (f ResultFilter) Key() string {
	f = f.Normalize()
	return f.Period + "|" + f.Animal + "|" + f.Chain
}

// Bucket is one coin's share of a queried result set.
type Bucket struct {
	Match      Coin    `json:"memecoin_match"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// FilterEcho repeats the facet filters applied to a summary.
type FilterEcho struct {
	Animal     string `json:"animal"`
	Blockchain string `json:"blockchain"`
}

// Summary is the aggregated view of a filtered result set, sorted by count
// descending.
type Summary struct {
	Results []Bucket   `json:"results"`
	Total   int        `json:"total"`
	Period  string     `json:"period"`
	Filters FilterEcho `json:"filters"`
}

// Donation is one persisted developer donation.
type Donation struct {
	UserAddress string
	Amount      string
	Currency    string
	ToAddress   string
	DevDonation string
	TxHash      string
	CreatedAt   time.Time
}

// DonationQuote is the destination and wei-converted amount returned to the
// caller once a donation command validates.
type DonationQuote struct {
	ToAddress string `json:"toAddress"`
	AmountWei string `json:"amountInWei"`
	Currency  string `json:"currency"`
}
