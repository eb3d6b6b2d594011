package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pkaczor/serwisapp/internal/db"
	"github.com/pkaczor/serwisapp/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return conn
}

// seedOrder inserts a minimal order with a fixed number so the ledger and
// numbering tests have a parent to hang entries on.
func seedOrder(t *testing.T, conn *gorm.DB, number string, value float64) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber: number,
		ClientID:    uuid.NewString(),
		Title:       "Remont łazienki",
		Status:      models.OrderStatusNew,
		Value:       value,
		StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	if err := conn.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func seedClient(t *testing.T, conn *gorm.DB) models.Client {
	t.Helper()
	client := models.Client{Name: "Jan Nowak", Phone: "600100200"}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("seed client: %v", err)
	}
	return client
}

func almostEqual(a, b float64) bool {
	diff := a - b
	return diff < 0.001 && diff > -0.001
}
