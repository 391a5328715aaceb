package service

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// ReportService renders the transaction history as a printable table.
type ReportService struct {
	ledger *LedgerService
}

func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{ledger: ledger}
}

// GenerateReport writes the full ledger, newest first, to w. Absent account
// references render as "-".
func (s *ReportService) GenerateReport(w io.Writer) error {
	transactions, err := s.ledger.ListTransactions()
	if err != nil {
		return fmt.Errorf("could not load transactions for report: %w", err)
	}

	fmt.Fprintln(w, "\nTransaction History Report")
	if len(transactions) == 0 {
		fmt.Fprintln(w, "No transactions found yet.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTYPE\tFROM_ACC\tTO_ACC\tAMOUNT\tTIMESTAMP\tNOTE")
	for _, t := range transactions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.Type,
			formatAccountRef(t.FromAccountID),
			formatAccountRef(t.ToAccountID),
			t.Amount.StringFixed(2),
			t.CreatedAt.Format("2006-01-02 15:04:05"),
			t.Note,
		)
	}
	return tw.Flush()
}

func formatAccountRef(accountID *int64) string {
	if accountID == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *accountID)
}
