package document

import (
	"encoding/json"
	"testing"
)

func TestParseFieldsW2(t *testing.T) {
	raw := json.RawMessage(`{
		"box_1": 85000.0,
		"box_2": 12000.0,
		"box_15": "CA",
		"box_17": 4000.0
	}`)
	fields, err := ParseFields(TypeW2, raw)
	if err != nil {
		t.Fatal(err)
	}
	w2, ok := fields.(*W2Fields)
	if !ok {
		t.Fatalf("got %T, want *W2Fields", fields)
	}
	if Float(w2.Wages) != 85000 || Float(w2.StateIncomeTax) != 4000 {
		t.Fatalf("unexpected values: %+v", w2)
	}
	if w2.State == nil || *w2.State != "CA" {
		t.Fatalf("State = %v, want CA", w2.State)
	}
	if w2.SocialSecurityWages != nil {
		t.Fatal("absent box should stay nil")
	}
	if w2.NonNullCount() != 4 {
		t.Fatalf("NonNullCount = %d, want 4", w2.NonNullCount())
	}
}

func TestParseFieldsBrokerage(t *testing.T) {
	raw := json.RawMessage(`{
		"transactions": [
			{"description": "VTI", "date_acquired": "2023-01-15", "date_sold": "2024-03-01",
			 "proceeds": 12000, "cost_basis": 10000, "gain_loss": 2000, "term": "long"},
			{"description": "VTI", "date_acquired": "2024-03-10"}
		],
		"summary": {"total_proceeds": 12000, "long_term_gain_loss": 2000}
	}`)
	fields, err := ParseFields(Type1099B, raw)
	if err != nil {
		t.Fatal(err)
	}
	b := fields.(*BrokerageFields)
	if len(b.Transactions) != 2 {
		t.Fatalf("transactions = %d, want 2", len(b.Transactions))
	}
	if !b.Transactions[0].IsSale() || b.Transactions[0].IsPurchase() {
		t.Fatal("first row should be a sale")
	}
	if !b.Transactions[1].IsPurchase() {
		t.Fatal("second row should be a purchase")
	}
	if b.Transactions[0].Term != TermLong {
		t.Fatalf("Term = %v, want long", b.Transactions[0].Term)
	}
	if Float(b.Summary.TotalProceeds) != 12000 {
		t.Fatalf("TotalProceeds = %v, want 12000", Float(b.Summary.TotalProceeds))
	}
}

func TestParseFieldsMiscCarriesFormType(t *testing.T) {
	raw := json.RawMessage(`{"box_1": 7000}`)
	fields, err := ParseFields(Type1099NEC, raw)
	if err != nil {
		t.Fatal(err)
	}
	if fields.DocumentType() != Type1099NEC {
		t.Fatalf("DocumentType = %v, want 1099_NEC", fields.DocumentType())
	}
}

func TestParseFieldsGenericFallback(t *testing.T) {
	raw := json.RawMessage(`{"box_1": 5000.25, "account_number": "12-345", "box_2": null}`)
	fields, err := ParseFields(Type1098, raw)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := fields.(*GenericFields)
	if !ok {
		t.Fatalf("got %T, want *GenericFields", fields)
	}
	numeric := g.NumericFields()
	if len(numeric) != 1 || numeric[0].Name != "box_1" || numeric[0].Value != 5000.25 {
		t.Fatalf("unexpected numeric fields: %v", numeric)
	}
	// box_1 numeric + account_number string; null excluded
	if g.NonNullCount() != 2 {
		t.Fatalf("NonNullCount = %d, want 2", g.NonNullCount())
	}
}

func TestParseFieldsEmptyAndUnknown(t *testing.T) {
	if f, err := ParseFields(TypeW2, nil); err != nil || f != nil {
		t.Fatalf("empty payload: fields=%v err=%v", f, err)
	}
	if f, err := ParseFields(TypeUnknown, json.RawMessage(`{"box_1": 1}`)); err != nil || f != nil {
		t.Fatalf("unknown type: fields=%v err=%v", f, err)
	}
}

func TestParseFieldsMalformedPayload(t *testing.T) {
	if _, err := ParseFields(TypeW2, json.RawMessage(`{"box_1": "not a number"}`)); err == nil {
		t.Fatal("expected error for non-numeric box")
	}
	if _, err := ParseFields(TypeW2, json.RawMessage(`[]`)); err == nil {
		t.Fatal("expected error for non-object payload")
	}
}

func TestFloat(t *testing.T) {
	if Float(nil) != 0 {
		t.Fatal("nil should read as zero")
	}
	v := 12.5
	if Float(&v) != 12.5 {
		t.Fatal("value lost")
	}
}
