package pipeline

// Outcome is the closed set of terminal results for one evaluated post.
// Every outcome marks the post processed; the pipeline branches on the
// value only for logging and metrics.
type Outcome string

const (
	// OutcomePublished means a summary comment was created.
	OutcomePublished Outcome = "published"
	// OutcomeBlocklisted means the link domain is on the blocklist.
	OutcomeBlocklisted Outcome = "blocklisted"
	// OutcomeMediaSkip means the link served a non-article content type.
	OutcomeMediaSkip Outcome = "media_skip"
	// OutcomeFetchFailed covers download, scrape, and summarize failures.
	// They are permanent for the post: it is never retried in a later cycle.
	OutcomeFetchFailed Outcome = "fetch_failed"
	// OutcomeGatedOut means the reduction fell outside the accepted band.
	OutcomeGatedOut Outcome = "gated_out"
	// OutcomePublishFailed means the summary was ready but the comment
	// call failed even after retries.
	OutcomePublishFailed Outcome = "publish_failed"
)
