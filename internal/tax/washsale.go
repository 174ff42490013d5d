package tax

import (
	"strings"
	"time"

	"github.com/castlemilk/taxdoc/internal/document"
)

const washSaleWindowDays = 30

// WashSaleMatch records a loss sale with a replacement purchase inside the
// wash sale window.
type WashSaleMatch struct {
	Security       string  `json:"security"`
	SaleDate       string  `json:"sale_date"`
	SaleLoss       float64 `json:"sale_loss"`
	PurchaseDate   string  `json:"purchase_date"`
	DaysApart      int     `json:"days_apart"`
	DisallowedLoss float64 `json:"disallowed_loss"`
	// WashSaleFreeDate is the first date a repurchase would no longer
	// trigger the rule for this sale.
	WashSaleFreeDate string `json:"wash_sale_free_date"`
}

// SkippedTransaction records a row excluded from analysis, with the reason.
type SkippedTransaction struct {
	Description string `json:"description"`
	Date        string `json:"date"`
	Reason      string `json:"reason"`
}

// WashSaleReport is the result of scanning one year's brokerage transactions.
type WashSaleReport struct {
	Matches              []WashSaleMatch      `json:"wash_sales"`
	TotalDisallowedLoss  float64              `json:"total_disallowed_loss"`
	TransactionsAnalyzed int                  `json:"transactions_analyzed"`
	Skipped              []SkippedTransaction `json:"skipped,omitempty"`
}

// DetectWashSales scans transactions for sales at a loss with a purchase of
// the same security within 30 days before or after the sale (inclusive).
//
// Security identity is a case-insensitive substring test: the sale's
// description must appear within the purchase's description, so "VTI"
// matches "VTI - Vanguard Total Stock Market ETF". Each loss sale matches at
// most one purchase and its full loss is disallowed. Rows whose dates fail
// to parse are skipped and reported rather than failing the scan.
func DetectWashSales(transactions []document.Transaction) WashSaleReport {
	report := WashSaleReport{
		Matches:              []WashSaleMatch{},
		TransactionsAnalyzed: len(transactions),
	}

	type purchase struct {
		tx   document.Transaction
		date time.Time
	}
	var purchases []purchase
	for _, tx := range transactions {
		if !tx.IsPurchase() {
			continue
		}
		date, err := time.Parse("2006-01-02", tx.DateAcquired)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedTransaction{
				Description: tx.Description,
				Date:        tx.DateAcquired,
				Reason:      "unparseable acquisition date",
			})
			continue
		}
		purchases = append(purchases, purchase{tx: tx, date: date})
	}

	for _, tx := range transactions {
		if !tx.IsSale() || document.Float(tx.GainLoss) >= 0 {
			continue
		}
		saleDate, err := time.Parse("2006-01-02", tx.DateSold)
		if err != nil {
			report.Skipped = append(report.Skipped, SkippedTransaction{
				Description: tx.Description,
				Date:        tx.DateSold,
				Reason:      "unparseable sale date",
			})
			continue
		}
		security := strings.ToLower(strings.TrimSpace(tx.Description))
		loss := -document.Float(tx.GainLoss)

		for _, p := range purchases {
			if security == "" || !strings.Contains(strings.ToLower(p.tx.Description), security) {
				continue
			}
			days := int(saleDate.Sub(p.date).Hours() / 24)
			if days < 0 {
				days = -days
			}
			if days > washSaleWindowDays {
				continue
			}
			report.Matches = append(report.Matches, WashSaleMatch{
				Security:         tx.Description,
				SaleDate:         tx.DateSold,
				SaleLoss:         loss,
				PurchaseDate:     p.tx.DateAcquired,
				DaysApart:        days,
				DisallowedLoss:   loss,
				WashSaleFreeDate: saleDate.AddDate(0, 0, washSaleWindowDays+1).Format("2006-01-02"),
			})
			report.TotalDisallowedLoss += loss
			break // one match per sale
		}
	}

	return report
}
