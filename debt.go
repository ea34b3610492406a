package ledger

// DebtStatus is the point-in-time derivation of an informal debt's progress
// from its payment list.
type DebtStatus struct {
	PaidTillDate     Money
	RemainingBalance Money
	Progress         Percent
	IsCompleted      bool
}

// NewDebtStatus derives the status of a BorrowedMoney record. The TotalPaid
// cache is ignored on purpose: the payment list is the source of truth.
func NewDebtStatus(b BorrowedMoney) DebtStatus {
	paid := sumPayments(b.Payments)
	remaining := maxZero(b.TotalAmount.Sub(paid))
	return DebtStatus{
		PaidTillDate:     paid,
		RemainingBalance: remaining,
		Progress:         paid.ratio(b.TotalAmount).capped(),
		IsCompleted:      remaining.IsZero() && b.TotalAmount.IsPositive(),
	}
}

// recordDebtPayment appends a repayment, guarding against overpaying the
// total owed. Exact completion is accepted; one unit beyond is not.
func recordDebtPayment(b *BorrowedMoney, p Payment) error {
	if err := requireAmount("payment amount", p.Amount); err != nil {
		return err
	}
	existing := sumPayments(b.Payments)
	if existing.Add(p.Amount).GreaterThan(b.TotalAmount) {
		return invalidf("payment of %s would exceed the total owed of %s (already paid %s)",
			p.Amount, b.TotalAmount, existing)
	}
	b.Payments = append(b.Payments, p)
	b.TotalPaid = sumPayments(b.Payments)
	return nil
}
