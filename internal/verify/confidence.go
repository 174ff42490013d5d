package verify

import "github.com/castlemilk/taxdoc/internal/document"

const (
	classificationFloor = 0.8
	verificationFloor   = 0.7
)

// Review is the combined trust decision for a processed document.
type Review struct {
	CombinedConfidence float64 `json:"combined_confidence"`
	NeedsReview        bool    `json:"needs_review"`
}

// Combine merges the classifier's confidence with the verifier's result.
// The combined score is their mean; a document needs manual review when the
// classifier was unsure, the type is unknown, or verification failed or
// scored low.
func Combine(classificationConfidence float64, docType document.Type, verification *document.VerificationResult) Review {
	verificationConfidence := 1.0
	verified := true
	if verification != nil {
		verificationConfidence = verification.Confidence
		verified = verification.Verified
	}
	return Review{
		CombinedConfidence: (classificationConfidence + verificationConfidence) / 2,
		NeedsReview: classificationConfidence < classificationFloor ||
			docType == document.TypeUnknown ||
			!verified ||
			verificationConfidence < verificationFloor,
	}
}
