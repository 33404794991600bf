package result

import "time"

// Result is a single nearest-neighbor hit. Lower distance means more similar.
type Result struct {
	documentID string
	fileName   string
	summary    string
	topics     []string
	keyPhrases []string
	createdAt  time.Time
	distance   float64
}

// New creates a similarity result.
func New(
	documentID, fileName, summary string,
	topics, keyPhrases []string,
	createdAt time.Time, distance float64,
) Result {
	return Result{
		documentID: documentID, fileName: fileName, summary: summary,
		topics: topics, keyPhrases: keyPhrases,
		createdAt: createdAt, distance: distance,
	}
}

// DocumentID returns the document identifier.
func (r *Result) DocumentID() string { return r.documentID }

// FileName returns the original file name.
func (r *Result) FileName() string { return r.fileName }

// Summary returns the document summary.
func (r *Result) Summary() string { return r.summary }

// Topics returns the document topics.
func (r *Result) Topics() []string { return r.topics }

// KeyPhrases returns the document key phrases.
func (r *Result) KeyPhrases() []string { return r.keyPhrases }

// CreatedAt returns the document creation time.
func (r *Result) CreatedAt() time.Time { return r.createdAt }

// Distance returns the vector distance to the query.
func (r *Result) Distance() float64 { return r.distance }
