package result

// Result is a single search hit.
type Result struct {
	doc   int
	text  string
	label string
	score float64
}

// New creates a search result. For lexical search score is the BM25 score
// (higher is better); for semantic search it is the squared L2 distance
// (lower is better).
func New(doc int, text, label string, score float64) Result {
	return Result{doc: doc, text: text, label: label, score: score}
}

// Doc returns the document index in the corpus.
func (r *Result) Doc() int { return r.doc }

// Text returns the record text.
func (r *Result) Text() string { return r.text }

// Label returns the record category.
func (r *Result) Label() string { return r.label }

// Score returns the ranking score.
func (r *Result) Score() float64 { return r.score }

// List is an ordered result page.
type List struct {
	items     []Result
	requested int
	window    int
}

// NewList creates a result list. requested is the caller's topK and window the
// number of ranked candidates that were scanned.
func NewList(items []Result, requested, window int) List {
	return List{items: items, requested: requested, window: window}
}

// Items returns the results in rank order.
func (l *List) Items() []Result { return l.items }

// Requested returns the requested result count.
func (l *List) Requested() int { return l.requested }

// Delivered returns the number of results actually returned.
func (l *List) Delivered() int { return len(l.items) }

// Window returns the candidate window size.
func (l *List) Window() int { return l.window }

// Shortfall reports whether fewer results than requested were returned.
func (l *List) Shortfall() bool { return l.Delivered() < l.requested }
