package sessions

import (
	"github.com/m04kA/SMC-GearBookingService/internal/domain"
)

// intentKinds какие внешние действия требует принятый переход prev -> next
func intentKinds(prev, next domain.BookingSession, event domain.Event) []domain.IntentKind {
	var kinds []domain.IntentKind

	switch event.Type {
	case domain.EventPayDeposit:
		kinds = append(kinds, domain.IntentChargeDeposit)
	case domain.EventBuyInsurance:
		kinds = append(kinds, domain.IntentPurchaseInsurance)
	case domain.EventCancelBooking:
		kinds = append(kinds, domain.IntentIssueRefund)
	case domain.EventOpenClaim:
		kinds = append(kinds, domain.IntentOpenClaim)
	case domain.EventResolveClaim:
		kinds = append(kinds, domain.IntentResolveClaim)
	case domain.EventReturnDeposit:
		if prev.ClaimStatus == domain.ClaimPending && next.ClaimStatus != domain.ClaimPending {
			kinds = append(kinds, domain.IntentResolveClaim)
		}
	case domain.EventWriteReview:
		kinds = append(kinds, domain.IntentPublishReview)
	}

	if next.DepositReturned && !prev.DepositReturned {
		kinds = append(kinds, domain.IntentReturnDeposit)
	}

	return kinds
}
