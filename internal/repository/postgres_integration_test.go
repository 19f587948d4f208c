//go:build integration
// +build integration

package repository

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/parcel-next/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.TrackingEvent{},
		&models.Parcel{},
		&models.User{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Parcel{},
		&models.TrackingEvent{},
	); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		sqlDB, err := db.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func TestPostgresParcelQuery(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	repo := NewParcelRepository(db)

	seeds := []struct {
		TrackingID  string
		Status      models.ParcelStatus
		Type        models.ParcelType
		Description string
	}{
		{TrackingID: "TRK-20260101-000001", Status: models.ParcelStatusApproved, Type: models.ParcelTypeBox, Description: "ceramic dinner set"},
		{TrackingID: "TRK-20260101-000002", Status: models.ParcelStatusInTransit, Type: models.ParcelTypeBox, Description: "Rocket booster kit"},
		{TrackingID: "TRK-20260101-000003", Status: models.ParcelStatusDelivered, Type: models.ParcelTypeDocument, Description: "contract papers"},
	}
	for i, seed := range seeds {
		trackingID := seed.TrackingID
		parcel := &models.Parcel{
			SenderID:        1,
			ReceiverID:      2,
			PickupAddress:   fmt.Sprintf("Warehouse %d, Dhaka", i+1),
			DeliveryAddress: "House 5, Chattogram",
			ContactNumber:   "+8801711000000",
			Weight:          float64(i + 1),
			Cost:            models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			ParcelType:      seed.Type,
			Description:     seed.Description,
			Status:          seed.Status,
			TrackingID:      &trackingID,
		}
		if err := repo.Create(parcel); err != nil {
			t.Fatalf("create parcel failed: %v", err)
		}
	}

	// 大小写不敏感的多列检索
	rows, meta, err := repo.Query(map[string]string{"searchTerm": "rocket"})
	if err != nil {
		t.Fatalf("query search failed: %v", err)
	}
	if meta.Total != 1 || len(rows) != 1 {
		t.Fatalf("search want 1 got total=%d len=%d", meta.Total, len(rows))
	}
	if rows[0].Description != "Rocket booster kit" {
		t.Fatalf("search row want Rocket booster kit got %s", rows[0].Description)
	}

	// 等值过滤叠加分页
	rows, meta, err = repo.Query(map[string]string{
		"parcelType": "BOX",
		"page":       "1",
		"limit":      "1",
		"sort":       "weight",
	})
	if err != nil {
		t.Fatalf("query filter failed: %v", err)
	}
	if meta.Total != 2 || meta.TotalPage != 2 || len(rows) != 1 {
		t.Fatalf("filter want total=2 totalPage=2 len=1 got total=%d totalPage=%d len=%d", meta.Total, meta.TotalPage, len(rows))
	}
	if rows[0].Weight != 1 {
		t.Fatalf("ascending weight sort should return lightest first, got %f", rows[0].Weight)
	}
}
