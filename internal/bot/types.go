// Package bot defines core types shared across subsystems.
package bot

import "time"

// Post is a single submission on the federated feed. ID is the instance-local
// numeric id; ApID is the global activity-pub identifier.
type Post struct {
	ID      int64  `json:"id"`
	ApID    string `json:"ap_id"`
	URL     string `json:"url,omitempty"`
	Deleted bool   `json:"deleted"`
}

// PostView pairs a post with the viewer-specific flags returned by the
// listing endpoint.
type PostView struct {
	Post  Post `json:"post"`
	Saved bool `json:"saved"`
}

// ListQuery captures the parameters of one feed listing call.
type ListQuery struct {
	Community string
	Sort      string
	Listing   string
	Page      int
}

// Article is the result of extracting readable content from a page.
type Article struct {
	Title     string
	Published time.Time
	Body      string
}

// Summary is produced per article by the summarizer. Reduction is the percent
// of the original text removed; sentences and words keep their rank order.
type Summary struct {
	Reduction    int
	TopSentences []string
	TopWords     []string
}

// FetchResult is returned by an ArticleFetcher for a successfully completed
// request. SkippedMedia marks responses whose content type can never hold an
// article; Body is empty in that case.
type FetchResult struct {
	SkippedMedia bool
	ContentType  string
	Body         string
}
