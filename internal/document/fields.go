package document

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Fields is the tagged per-form variant of a document's extracted field map.
// The document-understanding service emits loosely-typed JSON keyed by box
// number; ParseFields validates it into one of these variants at the boundary
// so the calculators never touch raw maps.
type Fields interface {
	// DocumentType returns the form this variant belongs to.
	DocumentType() Type
	// NumericFields lists every non-nil numeric field with its wire name,
	// in a stable order.
	NumericFields() []NumericField
	// NonNullCount is the number of non-nil fields of any kind.
	NonNullCount() int
}

// NumericField pairs a wire field name with its extracted value.
type NumericField struct {
	Name  string
	Value float64
}

// Float dereferences an optional amount, treating nil as zero. Missing boxes
// on a form contribute nothing to any total.
func Float(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

type numericSpec struct {
	name  string
	value *float64
}

func collectNumeric(specs []numericSpec) []NumericField {
	out := make([]NumericField, 0, len(specs))
	for _, s := range specs {
		if s.value != nil {
			out = append(out, NumericField{Name: s.name, Value: *s.value})
		}
	}
	return out
}

func countNonNull(numeric []numericSpec, strs []*string) int {
	n := 0
	for _, s := range numeric {
		if s.value != nil {
			n++
		}
	}
	for _, s := range strs {
		if s != nil {
			n++
		}
	}
	return n
}

// W2Fields holds the boxes extracted from a W-2 wage statement.
type W2Fields struct {
	Wages                 *float64 `json:"box_1"`
	FederalTaxWithheld    *float64 `json:"box_2"`
	SocialSecurityWages   *float64 `json:"box_3"`
	SocialSecurityTax     *float64 `json:"box_4"`
	MedicareWages         *float64 `json:"box_5"`
	MedicareTax           *float64 `json:"box_6"`
	SocialSecurityTips    *float64 `json:"box_7"`
	AllocatedTips         *float64 `json:"box_8"`
	DependentCareBenefits *float64 `json:"box_10"`
	NonqualifiedPlans     *float64 `json:"box_11"`
	State                 *string  `json:"box_15"`
	StateWages            *float64 `json:"box_16"`
	StateIncomeTax        *float64 `json:"box_17"`
	LocalWages            *float64 `json:"box_18"`
	LocalIncomeTax        *float64 `json:"box_19"`
}

func (f *W2Fields) DocumentType() Type { return TypeW2 }

func (f *W2Fields) numericSpecs() []numericSpec {
	return []numericSpec{
		{"box_1", f.Wages},
		{"box_2", f.FederalTaxWithheld},
		{"box_3", f.SocialSecurityWages},
		{"box_4", f.SocialSecurityTax},
		{"box_5", f.MedicareWages},
		{"box_6", f.MedicareTax},
		{"box_7", f.SocialSecurityTips},
		{"box_8", f.AllocatedTips},
		{"box_10", f.DependentCareBenefits},
		{"box_11", f.NonqualifiedPlans},
		{"box_16", f.StateWages},
		{"box_17", f.StateIncomeTax},
		{"box_18", f.LocalWages},
		{"box_19", f.LocalIncomeTax},
	}
}

func (f *W2Fields) NumericFields() []NumericField {
	return collectNumeric(f.numericSpecs())
}

func (f *W2Fields) NonNullCount() int {
	return countNonNull(f.numericSpecs(), []*string{f.State})
}

// InterestFields holds the boxes extracted from a 1099-INT interest statement.
type InterestFields struct {
	InterestIncome         *float64 `json:"box_1"`
	EarlyWithdrawalPenalty *float64 `json:"box_2"`
	USSavingsBondInterest  *float64 `json:"box_3"`
	FederalTaxWithheld     *float64 `json:"box_4"`
	InvestmentExpenses     *float64 `json:"box_5"`
	ForeignTaxPaid         *float64 `json:"box_6"`
	TaxExemptInterest      *float64 `json:"box_8"`
	State                  *string  `json:"state"`
	StateTaxWithheld       *float64 `json:"state_tax_withheld"`
}

func (f *InterestFields) DocumentType() Type { return Type1099INT }

func (f *InterestFields) numericSpecs() []numericSpec {
	return []numericSpec{
		{"box_1", f.InterestIncome},
		{"box_2", f.EarlyWithdrawalPenalty},
		{"box_3", f.USSavingsBondInterest},
		{"box_4", f.FederalTaxWithheld},
		{"box_5", f.InvestmentExpenses},
		{"box_6", f.ForeignTaxPaid},
		{"box_8", f.TaxExemptInterest},
		{"state_tax_withheld", f.StateTaxWithheld},
	}
}

func (f *InterestFields) NumericFields() []NumericField {
	return collectNumeric(f.numericSpecs())
}

func (f *InterestFields) NonNullCount() int {
	return countNonNull(f.numericSpecs(), []*string{f.State})
}

// DividendFields holds the boxes extracted from a 1099-DIV dividend statement.
type DividendFields struct {
	OrdinaryDividends        *float64 `json:"box_1a"`
	QualifiedDividends       *float64 `json:"box_1b"`
	CapitalGainDistributions *float64 `json:"box_2a"`
	NondividendDistributions *float64 `json:"box_3"`
	FederalTaxWithheld       *float64 `json:"box_4"`
	ForeignTaxPaid           *float64 `json:"box_7"`
	ExemptInterestDividends  *float64 `json:"box_12"`
	State                    *string  `json:"state"`
	StateTaxWithheld         *float64 `json:"state_tax_withheld"`
}

func (f *DividendFields) DocumentType() Type { return Type1099DIV }

func (f *DividendFields) numericSpecs() []numericSpec {
	return []numericSpec{
		{"box_1a", f.OrdinaryDividends},
		{"box_1b", f.QualifiedDividends},
		{"box_2a", f.CapitalGainDistributions},
		{"box_3", f.NondividendDistributions},
		{"box_4", f.FederalTaxWithheld},
		{"box_7", f.ForeignTaxPaid},
		{"box_12", f.ExemptInterestDividends},
		{"state_tax_withheld", f.StateTaxWithheld},
	}
}

func (f *DividendFields) NumericFields() []NumericField {
	return collectNumeric(f.numericSpecs())
}

func (f *DividendFields) NonNullCount() int {
	return countNonNull(f.numericSpecs(), []*string{f.State})
}

// Term distinguishes short- from long-term holdings on a brokerage transaction.
type Term string

const (
	TermShort   Term = "short"
	TermLong    Term = "long"
	TermUnknown Term = "unknown"
)

// Transaction is one row from a brokerage statement. A sale has DateSold set;
// a purchase has DateAcquired set and no DateSold. Dates are the external
// service's YYYY-MM-DD strings and are parsed where they are consumed, so a
// malformed date skips one record instead of failing a whole document.
type Transaction struct {
	Description  string   `json:"description"`
	DateAcquired string   `json:"date_acquired,omitempty"`
	DateSold     string   `json:"date_sold,omitempty"`
	Proceeds     *float64 `json:"proceeds,omitempty"`
	CostBasis    *float64 `json:"cost_basis,omitempty"`
	GainLoss     *float64 `json:"gain_loss,omitempty"`
	Term         Term     `json:"term,omitempty"`
}

// IsSale reports whether the row records a completed sale.
func (t Transaction) IsSale() bool { return t.DateSold != "" }

// IsPurchase reports whether the row records a still-held purchase.
func (t Transaction) IsPurchase() bool { return t.DateAcquired != "" && t.DateSold == "" }

// BrokerageSummary is the declared totals block on a 1099-B.
type BrokerageSummary struct {
	TotalProceeds          *float64 `json:"total_proceeds"`
	TotalCostBasis         *float64 `json:"total_cost_basis"`
	ShortTermGainLoss      *float64 `json:"short_term_gain_loss"`
	LongTermGainLoss       *float64 `json:"long_term_gain_loss"`
	WashSaleLossDisallowed *float64 `json:"wash_sale_loss_disallowed"`
}

// BrokerageFields holds the transaction list and summary block from a 1099-B
// brokerage statement.
type BrokerageFields struct {
	Transactions       []Transaction    `json:"transactions"`
	Summary            BrokerageSummary `json:"summary"`
	FederalTaxWithheld *float64         `json:"federal_tax_withheld"`
}

func (f *BrokerageFields) DocumentType() Type { return Type1099B }

func (f *BrokerageFields) numericSpecs() []numericSpec {
	return []numericSpec{
		{"summary.total_proceeds", f.Summary.TotalProceeds},
		{"summary.total_cost_basis", f.Summary.TotalCostBasis},
		{"summary.short_term_gain_loss", f.Summary.ShortTermGainLoss},
		{"summary.long_term_gain_loss", f.Summary.LongTermGainLoss},
		{"summary.wash_sale_loss_disallowed", f.Summary.WashSaleLossDisallowed},
		{"federal_tax_withheld", f.FederalTaxWithheld},
	}
}

func (f *BrokerageFields) NumericFields() []NumericField {
	return collectNumeric(f.numericSpecs())
}

func (f *BrokerageFields) NonNullCount() int {
	n := countNonNull(f.numericSpecs(), nil)
	if len(f.Transactions) > 0 {
		n++
	}
	return n
}

// MiscIncomeFields covers 1099-NEC and 1099-MISC compensation forms.
type MiscIncomeFields struct {
	FormType           Type     `json:"-"`
	Compensation       *float64 `json:"box_1"`
	OtherIncome        *float64 `json:"box_7"`
	FederalTaxWithheld *float64 `json:"box_4"`
}

func (f *MiscIncomeFields) DocumentType() Type { return f.FormType }

func (f *MiscIncomeFields) numericSpecs() []numericSpec {
	return []numericSpec{
		{"box_1", f.Compensation},
		{"box_4", f.FederalTaxWithheld},
		{"box_7", f.OtherIncome},
	}
}

func (f *MiscIncomeFields) NumericFields() []NumericField {
	return collectNumeric(f.numericSpecs())
}

func (f *MiscIncomeFields) NonNullCount() int {
	return countNonNull(f.numericSpecs(), nil)
}

// GenericFields carries the numeric fields of any form without a dedicated
// schema, so presence checks still apply to it.
type GenericFields struct {
	FormType Type
	Values   map[string]float64
	nonNull  int
}

func (f *GenericFields) DocumentType() Type { return f.FormType }

func (f *GenericFields) NumericFields() []NumericField {
	names := make([]string, 0, len(f.Values))
	for name := range f.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]NumericField, 0, len(names))
	for _, name := range names {
		out = append(out, NumericField{Name: name, Value: f.Values[name]})
	}
	return out
}

func (f *GenericFields) NonNullCount() int { return f.nonNull }

// ParseFields validates the external service's raw field map into the typed
// variant for the given document type. Unknown document types yield nil
// fields (they contribute nothing downstream). This is the only place the
// loosely-typed payload is touched.
func ParseFields(t Type, raw json.RawMessage) (Fields, error) {
	if len(raw) == 0 || t == TypeUnknown {
		return nil, nil
	}

	switch t {
	case TypeW2:
		var f W2Fields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse W-2 fields: %w", err)
		}
		return &f, nil
	case Type1099INT:
		var f InterestFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse 1099-INT fields: %w", err)
		}
		return &f, nil
	case Type1099DIV:
		var f DividendFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse 1099-DIV fields: %w", err)
		}
		return &f, nil
	case Type1099B:
		var f BrokerageFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse 1099-B fields: %w", err)
		}
		return &f, nil
	case Type1099NEC, Type1099MISC:
		var f MiscIncomeFields
		if err := json.Unmarshal(raw, &f); err != nil {
			return nil, fmt.Errorf("parse %s fields: %w", t, err)
		}
		f.FormType = t
		return &f, nil
	default:
		var m map[string]json.RawMessage
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("parse %s fields: %w", t, err)
		}
		g := &GenericFields{FormType: t, Values: make(map[string]float64)}
		for name, v := range m {
			if string(v) == "null" {
				continue
			}
			g.nonNull++
			var num float64
			if err := json.Unmarshal(v, &num); err == nil {
				g.Values[name] = num
			}
		}
		return g, nil
	}
}
