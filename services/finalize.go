package services

import "math"

// discountNoise is the magnitude below which a derived discount is treated as
// floating-point rounding rather than a real discount.
const discountNoise = 0.001

// FinalizeSummary reconciles the raw Summary-sheet scan into a consistent
// financial view. A subtotal with no row breakdown gets a single synthetic
// "Total" row so renderers always have a totals basis; a missing discount is
// derived from subtotal and total payable when both are known. Total payable
// is never derived the other way: the source workbook has to state it.
func FinalizeSummary(raw QuoteSummary) *QuoteSummary {
	if len(raw.Rows) == 0 && raw.Subtotal == nil && raw.Discount == nil && raw.TotalPayable == nil {
		return nil
	}

	final := raw

	if final.Subtotal != nil && len(final.Rows) == 0 {
		final.Rows = []SummaryRow{{
			Room:    "Total",
			Modules: *final.Subtotal,
			Total:   final.Subtotal,
		}}
	}

	if final.Discount == nil && final.Subtotal != nil && final.TotalPayable != nil {
		discount := *final.Subtotal - *final.TotalPayable
		if math.Abs(discount) > discountNoise {
			final.Discount = &discount
		}
	}

	return &final
}
