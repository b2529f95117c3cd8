package domain

// AgingBucket groups receivables by how many days past due they are.
type AgingBucket string

const (
	BucketCurrent AgingBucket = "current"
	Bucket1To30   AgingBucket = "1-30"
	Bucket31To60  AgingBucket = "31-60"
	Bucket61To90  AgingBucket = "61-90"
	BucketOver90  AgingBucket = "90+"
)

// AgingBuckets lists the buckets in display order.
var AgingBuckets = []AgingBucket{BucketCurrent, Bucket1To30, Bucket31To60, Bucket61To90, BucketOver90}

// Aging is the age classification of one receivable. DaysPastDue is never negative.
type Aging struct {
	DaysPastDue int         `json:"daysPastDue"`
	Bucket      AgingBucket `json:"agingBucket"`
	IsOverdue   bool        `json:"isOverdue"`
}
