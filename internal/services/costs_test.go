package services

import (
	"testing"

	"github.com/pkaczor/serwisapp/internal/models"
)

func TestAddMaterialComputesGrossTotal(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	id, err := svc.AddMaterial(order.ID, MaterialInput{
		Name: "Płytki", Quantity: 2, Unit: "m2", UnitPrice: 50, VATRate: 23,
	})
	if err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	var stored models.MaterialCost
	if err := conn.First(&stored, "id = ?", id).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if !almostEqual(stored.Total, 123) {
		t.Errorf("total = %f, want 123", stored.Total)
	}
}

func TestAddMaterialRejectsOutOfRangeValues(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	cases := []MaterialInput{
		{Name: "Fuga", Quantity: 0, UnitPrice: 10, VATRate: 23},
		{Name: "Fuga", Quantity: -1, UnitPrice: 10, VATRate: 23},
		{Name: "Fuga", Quantity: 1, UnitPrice: -10, VATRate: 23},
		{Name: "Fuga", Quantity: 1, UnitPrice: 10, VATRate: -5},
		{Name: "", Quantity: 1, UnitPrice: 10, VATRate: 23},
	}
	for i, in := range cases {
		if _, err := svc.AddMaterial(order.ID, in); !IsValidation(err) {
			t.Errorf("case %d: expected validation error, got %v", i, err)
		}
	}
	var count int64
	conn.Model(&models.MaterialCost{}).Count(&count)
	if count != 0 {
		t.Errorf("store written on validation failure: %d rows", count)
	}
}

func TestAddMaterialMissingOrder(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCostService(conn)
	_, err := svc.AddMaterial("no-such-order", MaterialInput{
		Name: "Płytki", Quantity: 1, UnitPrice: 10, VATRate: 23,
	})
	if !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestAddLaborTotalWithoutVAT(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	id, err := svc.AddLabor(order.ID, LaborInput{Description: "Montaż", Hours: 10, RatePerHour: 100})
	if err != nil {
		t.Fatalf("AddLabor: %v", err)
	}
	var stored models.LaborCost
	if err := conn.First(&stored, "id = ?", id).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	if stored.Total != 1000 {
		t.Errorf("total = %f, want 1000", stored.Total)
	}
}

func TestUpdateMaterialRecomputesTotal(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	id, err := svc.AddMaterial(order.ID, MaterialInput{Name: "Płytki", Quantity: 2, UnitPrice: 50, VATRate: 23})
	if err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	qty := 3.0
	if err := svc.UpdateMaterial(id, MaterialPatch{Quantity: &qty}); err != nil {
		t.Fatalf("UpdateMaterial: %v", err)
	}
	var stored models.MaterialCost
	if err := conn.First(&stored, "id = ?", id).Error; err != nil {
		t.Fatalf("load: %v", err)
	}
	// 3×50×1.23; the unpatched fields survive the merge
	if !almostEqual(stored.Total, 184.5) {
		t.Errorf("total = %f, want 184.5", stored.Total)
	}
	if stored.UnitPrice != 50 || stored.VATRate != 23 {
		t.Errorf("merge clobbered fields: %+v", stored)
	}
}

func TestUpdateLaborRecomputesTotal(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	id, err := svc.AddLabor(order.ID, LaborInput{Description: "Montaż", Hours: 8, RatePerHour: 120})
	if err != nil {
		t.Fatalf("AddLabor: %v", err)
	}
	rate := 150.0
	if err := svc.UpdateLabor(id, LaborPatch{RatePerHour: &rate}); err != nil {
		t.Fatalf("UpdateLabor: %v", err)
	}
	var stored models.LaborCost
	conn.First(&stored, "id = ?", id)
	if stored.Total != 1200 {
		t.Errorf("total = %f, want 1200", stored.Total)
	}
}

func TestDeleteCostIsIdempotent(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 1000)
	svc := NewCostService(conn)

	if _, err := svc.AddMaterial(order.ID, MaterialInput{Name: "Płytki", Quantity: 1, UnitPrice: 100, VATRate: 0}); err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	before, err := svc.Aggregate(order.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if err := svc.DeleteMaterial("never-existed"); err != nil {
		t.Fatalf("delete of absent id must not fail: %v", err)
	}
	after, err := svc.Aggregate(order.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if before != after {
		t.Errorf("aggregate changed by no-op delete: %+v vs %+v", before, after)
	}
}

func TestAggregateExample(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 1000)
	svc := NewCostService(conn)

	if _, err := svc.AddMaterial(order.ID, MaterialInput{Name: "Płytki", Quantity: 1, UnitPrice: 100, VATRate: 0}); err != nil {
		t.Fatalf("AddMaterial: %v", err)
	}
	if _, err := svc.AddLabor(order.ID, LaborInput{Description: "Montaż", Hours: 10, RatePerHour: 10}); err != nil {
		t.Fatalf("AddLabor: %v", err)
	}
	if _, err := svc.AddOther(order.ID, OtherInput{Description: "Dojazd", Cost: 100}); err != nil {
		t.Fatalf("AddOther: %v", err)
	}

	f, err := svc.Aggregate(order.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if !almostEqual(f.TotalCosts, 300) {
		t.Errorf("totalCosts = %f, want 300", f.TotalCosts)
	}
	if !almostEqual(f.Profit, 700) {
		t.Errorf("profit = %f, want 700", f.Profit)
	}
	if !almostEqual(f.Margin, 70) {
		t.Errorf("margin = %f, want 70", f.Margin)
	}
}

func TestAggregateZeroRevenue(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 0)
	svc := NewCostService(conn)

	if _, err := svc.AddOther(order.ID, OtherInput{Description: "Dojazd", Cost: 250}); err != nil {
		t.Fatalf("AddOther: %v", err)
	}
	f, err := svc.Aggregate(order.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if f.Margin != 0 {
		t.Errorf("margin = %f, want 0 when revenue is 0", f.Margin)
	}
	if !almostEqual(f.Profit, -250) {
		t.Errorf("profit = %f, want -250", f.Profit)
	}
}

func TestAggregateEmptyLedger(t *testing.T) {
	conn := setupTestDB(t)
	order := seedOrder(t, conn, "ZL/2025/0001", 500)
	svc := NewCostService(conn)

	f, err := svc.Aggregate(order.ID)
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if f.TotalCosts != 0 || f.Profit != 500 {
		t.Errorf("unexpected aggregate: %+v", f)
	}
	if f.Markup != 0 {
		t.Errorf("markup = %f, want 0 when costs are 0", f.Markup)
	}
}

func TestAggregateMissingOrder(t *testing.T) {
	conn := setupTestDB(t)
	svc := NewCostService(conn)
	if _, err := svc.Aggregate("no-such-order"); !IsNotFound(err) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
