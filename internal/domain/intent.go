package domain

import "time"

// IntentKind вид внешнего действия, которое должен выполнить соседний сервис
type IntentKind string

const (
	IntentChargeDeposit     IntentKind = "charge_deposit"
	IntentPurchaseInsurance IntentKind = "purchase_insurance"
	IntentIssueRefund       IntentKind = "issue_refund"
	IntentReturnDeposit     IntentKind = "return_deposit"
	IntentOpenClaim         IntentKind = "open_claim"
	IntentResolveClaim      IntentKind = "resolve_claim"
	IntentPublishReview     IntentKind = "publish_review"
)

// Intent описание побочного эффекта принятого события
type Intent struct {
	ID               string           `json:"id"`
	Kind             IntentKind       `json:"kind"`
	SessionID        string           `json:"sessionId"`
	ListingID        int64            `json:"listingId"`
	UserID           *int64           `json:"userId,omitempty"`
	StartDate        string           `json:"startDate,omitempty"`
	EndDate          string           `json:"endDate,omitempty"`
	ProtectionChoice ProtectionChoice `json:"protectionChoice"`
	ClaimStatus      ClaimStatus      `json:"claimStatus"`
	Quote            *Quote           `json:"quote,omitempty"`
	OccurredAt       time.Time        `json:"occurredAt"`
}
