package report

// WalkInKey is the identity sentinel for customers with neither an ID nor a
// phone number on the record.
const WalkInKey = "walk-in"

// CustomerKey derives the customer identity used for new/repeat bucketing:
// numeric ID when present, else phone number, else the walk-in sentinel.
func CustomerKey(id, phone string) string {
	if id != "" && id != "0" {
		return id
	}
	if phone != "" {
		return phone
	}
	return WalkInKey
}

// VisitClassifier decides new vs repeat within one aggregation pass. A
// customer is new when the server-supplied lifetime visit count equals 1,
// or - when no count was supplied - when their key has not appeared earlier
// in this pass. Records must be fed in chronological order.
//
// Without a server-side visit count this is only window-relative: a long-time
// customer whose first visit inside the fetched range falls on day one of the
// window will be counted as new.
type VisitClassifier struct {
	seen map[string]struct{}
}

func NewVisitClassifier() *VisitClassifier {
	return &VisitClassifier{seen: make(map[string]struct{})}
}

// Classify reports whether this visit counts as a new customer and records
// the key as seen. Once seen, a key is never new again within the pass.
func (c *VisitClassifier) Classify(key string, visitCount int) bool {
	_, repeat := c.seen[key]
	c.seen[key] = struct{}{}

	if visitCount > 0 {
		return visitCount == 1
	}
	return !repeat
}
