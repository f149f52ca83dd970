// Package review defines the structured review records the pipeline produces.
package review

// Record is a single product review transcribed from page screenshots.
//
// Fields mirror what review widgets commonly show. Any of them may be
// absent when the page does not display it; no range or length validation
// is applied to what the model returns.
type Record struct {
	// Title is the review headline, empty if the page shows none.
	Title string `json:"title"`

	// Body is the review text. When the visible text is cut off in the
	// screenshot the model is instructed to append a truncation marker
	// rather than invent the remainder.
	Body string `json:"body"`

	// Rating is the star rating as displayed, nominally 1-5.
	Rating float64 `json:"rating"`

	// Reviewer is the display name of the review author, empty if absent.
	Reviewer string `json:"reviewer"`
}

// Result is the outcome of one extraction run.
//
// Reviews is never nil. ErrorDetails is set only when the vision-model
// call failed after the page itself rendered fine; the run still counts
// as a (degraded) success and Reviews holds whatever was recovered.
type Result struct {
	Reviews      []Record `json:"reviews"`
	ErrorDetails string   `json:"errorDetails,omitempty"`
}

// NewResult returns an empty, non-nil result.
func NewResult() *Result {
	return &Result{Reviews: []Record{}}
}
