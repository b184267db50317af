package newsapi

import "time"

// tombstoneTitle marks provider entries whose content was taken down.
const tombstoneTitle = "[Removed]"

// Article is one provider result, normalized. Optional fields decode to
// empty strings rather than failing.
type Article struct {
	Title       string
	Description string
	Content     string
	URL         string
	ImageURL    string
	PublishedAt time.Time
	SourceID    string
	SourceName  string
}

// Tombstone reports whether the provider returned a removed-content stub.
func (a Article) Tombstone() bool {
	return a.Title == "" || a.Title == tombstoneTitle
}

// response is the provider's JSON envelope.
type response struct {
	Status   string `json:"status"`
	Code     string `json:"code,omitempty"`
	Message  string `json:"message,omitempty"`
	Total    int    `json:"totalResults"`
	Articles []struct {
		Source struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		URLToImage  string `json:"urlToImage"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}
