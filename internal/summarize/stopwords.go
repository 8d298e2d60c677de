package summarize

// stopwords are common English function words excluded from frequency
// scoring so they never dominate the ranked word list.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "any": {}, "can": {}, "had": {}, "her": {},
	"was": {}, "one": {}, "our": {}, "out": {}, "has": {}, "him": {},
	"his": {}, "how": {}, "its": {}, "may": {}, "new": {}, "now": {},
	"old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "did": {},
	"get": {}, "she": {}, "too": {}, "use": {}, "that": {}, "with": {},
	"have": {}, "this": {}, "will": {}, "your": {}, "from": {}, "they": {},
	"been": {}, "were": {}, "said": {}, "each": {}, "which": {}, "their": {},
	"would": {}, "there": {}, "what": {}, "about": {}, "when": {}, "then": {},
	"them": {}, "these": {}, "some": {}, "into": {}, "only": {}, "other": {},
	"more": {}, "very": {}, "also": {}, "after": {}, "over": {}, "such": {},
	"most": {}, "than": {}, "where": {}, "while": {}, "because": {},
	"could": {}, "should": {}, "does": {}, "just": {}, "being": {},
	"before": {}, "between": {}, "both": {}, "during": {}, "under": {},
	"still": {}, "here": {}, "many": {}, "much": {}, "those": {},
}
