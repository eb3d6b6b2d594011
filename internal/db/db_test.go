package db

import (
	"fmt"
	"testing"

	"github.com/pkaczor/serwisapp/internal/config"
	"github.com/pkaczor/serwisapp/internal/models"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBPath: fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()),
	}
}

func TestConnectBootstrapsSettings(t *testing.T) {
	conn, err := Connect(testConfig(t))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	var settings models.AppSettings
	if err := conn.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		t.Fatalf("settings row missing after connect: %v", err)
	}
	if settings.DefaultVATRate != 23 || settings.QuoteValidDays != 30 || settings.Currency != "PLN" {
		t.Errorf("unexpected defaults: %+v", settings)
	}
}

func TestConnectIsIdempotentOnExistingStore(t *testing.T) {
	cfg := testConfig(t)
	conn, err := Connect(cfg)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	custom := models.AppSettings{}
	if err := conn.First(&custom, "id = ?", models.SettingsID).Error; err != nil {
		t.Fatalf("load settings: %v", err)
	}
	custom.DefaultVATRate = 8
	if err := conn.Save(&custom).Error; err != nil {
		t.Fatalf("save: %v", err)
	}
	// a second connect must not clobber existing settings
	if _, err := Connect(cfg); err != nil {
		t.Fatalf("reconnect: %v", err)
	}
	var after models.AppSettings
	if err := conn.First(&after, "id = ?", models.SettingsID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if after.DefaultVATRate != 8 {
		t.Errorf("bootstrap clobbered settings: %+v", after)
	}
}

func TestResetWipesDataAndRebootstraps(t *testing.T) {
	conn, err := Connect(testConfig(t))
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	client := models.Client{Name: "Jan Nowak", Phone: "600100200"}
	if err := conn.Create(&client).Error; err != nil {
		t.Fatalf("create client: %v", err)
	}
	if err := Reset(conn); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	var clients int64
	conn.Model(&models.Client{}).Count(&clients)
	if clients != 0 {
		t.Errorf("clients survived reset: %d", clients)
	}
	var settings models.AppSettings
	if err := conn.First(&settings, "id = ?", models.SettingsID).Error; err != nil {
		t.Fatalf("settings missing after reset: %v", err)
	}
}

func TestNormalizeDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"postgres://u:p@localhost:5432/serwis", "postgres://u:p@localhost:5432/serwis"},
		{" 'host=localhost user=u dbname=serwis' ", "host=localhost user=u dbname=serwis sslmode=disable"},
		{"host=localhost  dbname=serwis sslmode=require", "host=localhost dbname=serwis sslmode=require"},
		{"not-a-dsn", "not-a-dsn"},
	}
	for _, tt := range tests {
		if got := NormalizeDSN(tt.in); got != tt.want {
			t.Errorf("NormalizeDSN(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
