package services

import "testing"

func TestExtractMetadata_LabelAdjacency(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary",
			[]string{"Reference", "", "PRJ-A402"},
			[]string{"Customer Name", "Asha Rao"},
			[]string{"Price Version", "v3.2"},
			[]string{"Quote Valid Till", "30/04/2024"},
			[]string{"Property Config", "3BHK"},
			[]string{"Total Built Up Area", "1450 sq.ft"},
			[]string{"Design Expert", "R. Menon"},
			[]string{"Address", "12 MG Road, Bengaluru"},
		),
	}}

	meta := ExtractMetadata(wb)

	checks := []struct {
		field, got, want string
	}{
		{"Reference", meta.Reference, "PRJ-A402"},
		{"Customer", meta.Customer, "Asha Rao"},
		{"PriceVersion", meta.PriceVersion, "v3.2"},
		{"QuoteValidTill", meta.QuoteValidTill, "30/04/2024"},
		{"PropertyConfig", meta.PropertyConfig, "3BHK"},
		{"TotalBuiltUpArea", meta.TotalBuiltUpArea, "1450 sq.ft"},
		{"DesignerName", meta.DesignerName, "R. Menon"},
		{"Address", meta.Address, "12 MG Road, Bengaluru"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.field, c.got, c.want)
		}
	}
}

func TestExtractMetadata_Shapes(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary",
			[]string{"Quote-10587", "12/03/2024"},
			[]string{"asha.rao@example.com"},
			[]string{"+91 98765 43210"},
		),
	}}

	meta := ExtractMetadata(wb)

	if meta.QuoteNumber != "Quote-10587" {
		t.Errorf("QuoteNumber = %q", meta.QuoteNumber)
	}
	if meta.QuoteDate != "12/03/2024" {
		t.Errorf("QuoteDate = %q", meta.QuoteDate)
	}
	if meta.DesignerEmail != "asha.rao@example.com" {
		t.Errorf("DesignerEmail = %q", meta.DesignerEmail)
	}
	if meta.DesignerPhone != "+91 98765 43210" {
		t.Errorf("DesignerPhone = %q", meta.DesignerPhone)
	}
}

func TestExtractMetadata_DateCellIsNotAPhone(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary",
			[]string{"2024-08-31"},
			[]string{"+91 98765 43210"},
		),
	}}

	meta := ExtractMetadata(wb)
	if meta.QuoteDate != "2024-08-31" {
		t.Errorf("QuoteDate = %q", meta.QuoteDate)
	}
	if meta.DesignerPhone != "+91 98765 43210" {
		t.Errorf("DesignerPhone = %q, want the real phone, not the date", meta.DesignerPhone)
	}
}

func TestExtractMetadata_PhoneNeedsEnoughDigits(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary", []string{"12-3456"}),
	}}
	if meta := ExtractMetadata(wb); meta.DesignerPhone != "" {
		t.Errorf("DesignerPhone = %q, want empty for a short match", meta.DesignerPhone)
	}
}

func TestExtractMetadata_FirstSightingWins(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary", []string{"Customer", "Asha Rao"}),
		sheetOf("Kitchen - Details", []string{"Customer", "Someone Else"}),
	}}
	if meta := ExtractMetadata(wb); meta.Customer != "Asha Rao" {
		t.Errorf("Customer = %q, want the first sheet's value", meta.Customer)
	}
}

func TestExtractMetadata_PropertyNameFallsBackToReference(t *testing.T) {
	wb := &Workbook{Sheets: []Sheet{
		sheetOf("Summary", []string{"Reference", "PRJ-A402"}),
	}}
	if meta := ExtractMetadata(wb); meta.PropertyName != "PRJ-A402" {
		t.Errorf("PropertyName = %q, want reference fallback", meta.PropertyName)
	}

	wb = &Workbook{Sheets: []Sheet{
		sheetOf("Summary",
			[]string{"Reference", "PRJ-A402"},
			[]string{"Property Name", "Prestige Lakeside"},
		),
	}}
	if meta := ExtractMetadata(wb); meta.PropertyName != "Prestige Lakeside" {
		t.Errorf("PropertyName = %q, want the explicit value", meta.PropertyName)
	}
}
