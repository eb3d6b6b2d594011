package services

import "testing"

func TestSettingsBootstrapDefaults(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewSettingsService(conn)

	settings, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.DefaultVATRate != 23 {
		t.Errorf("defaultVatRate = %f, want 23", settings.DefaultVATRate)
	}
	if settings.QuoteValidDays != 30 {
		t.Errorf("quoteValidDays = %d, want 30", settings.QuoteValidDays)
	}
	if settings.Currency != "PLN" {
		t.Errorf("currency = %q, want PLN", settings.Currency)
	}
}

func TestSettingsUpdate(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewSettingsService(conn)

	updated, err := svc.Update(SettingsInput{
		CompanyName:    "Usługi Remontowe Nowak",
		DefaultVATRate: 8,
		QuoteValidDays: 14,
		Currency:       "PLN",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DefaultVATRate != 8 || updated.QuoteValidDays != 14 {
		t.Errorf("update not applied: %+v", updated)
	}

	// the singleton row is reused, not duplicated
	again, err := svc.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if again.CompanyName != "Usługi Remontowe Nowak" {
		t.Errorf("companyName = %q", again.CompanyName)
	}

	if _, err := svc.Update(SettingsInput{DefaultVATRate: -1, QuoteValidDays: 14, Currency: "PLN"}); !IsValidation(err) {
		t.Errorf("expected validation error for negative VAT, got %v", err)
	}
	if _, err := svc.Update(SettingsInput{DefaultVATRate: 23, QuoteValidDays: 0, Currency: "PLN"}); !IsValidation(err) {
		t.Errorf("expected validation error for zero validity window, got %v", err)
	}
}

func TestReportsSummary(t *testing.T) {
	conn := setupTestDB(t)
	clients := NewClientService(conn)
	orders := NewOrderService(conn)
	costs := NewCostService(conn)
	reports := NewReportsService(conn)

	client, err := clients.Create(ClientInput{Name: "Jan Nowak", Phone: "600100200"})
	if err != nil {
		t.Fatalf("client: %v", err)
	}
	done, err := orders.Create(OrderInput{ClientID: client.ID, Title: "Remont", StartDate: startDate(), Value: 1000})
	if err != nil {
		t.Fatalf("order: %v", err)
	}
	if _, err := costs.AddOther(done.ID, OtherInput{Description: "Dojazd", Cost: 300}); err != nil {
		t.Fatalf("cost: %v", err)
	}
	if err := orders.UpdateStatus(done.ID, "ukończone"); err != nil {
		t.Fatalf("status: %v", err)
	}
	if _, err := orders.Create(OrderInput{ClientID: client.ID, Title: "Malowanie", StartDate: startDate(), Value: 400}); err != nil {
		t.Fatalf("order: %v", err)
	}

	sum, err := reports.Summary()
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.OrdersByStatus["ukończone"] != 1 || sum.OrdersByStatus["nowe"] != 1 {
		t.Errorf("ordersByStatus = %+v", sum.OrdersByStatus)
	}
	if sum.ClientCount != 1 {
		t.Errorf("clientCount = %d", sum.ClientCount)
	}
	if !almostEqual(sum.CompletedRevenue, 1000) || !almostEqual(sum.CompletedCosts, 300) || !almostEqual(sum.CompletedProfit, 700) {
		t.Errorf("completed revenue/costs/profit = %f/%f/%f", sum.CompletedRevenue, sum.CompletedCosts, sum.CompletedProfit)
	}
}
