package main

import (
	"fmt"
	"time"

	"github.com/parcel-next/internal/config"
	"github.com/parcel-next/internal/logger"
	"github.com/parcel-next/internal/models"
	"github.com/parcel-next/internal/service"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加演示账号
	users := []struct {
		Name     string
		Email    string
		Password string
		Phone    string
		Address  string
		Role     models.UserRole
	}{
		{Name: "Demo Admin", Email: "admin@parcel.local", Password: "admin123", Phone: "+8801711000001", Address: "HQ, Dhaka", Role: models.RoleAdmin},
		{Name: "Demo Vendor", Email: "vendor@parcel.local", Password: "vendor123", Phone: "+8801711000002", Address: "Shop 12, Mirpur, Dhaka", Role: models.RoleVendor},
		{Name: "Demo Customer", Email: "customer@parcel.local", Password: "customer123", Phone: "+8801711000003", Address: "House 5, Road 3, Chattogram", Role: models.RoleCustomer},
		{Name: "Second Customer", Email: "customer2@parcel.local", Password: "customer123", Phone: "+8801711000004", Address: "Flat 2B, Uttara, Dhaka", Role: models.RoleCustomer},
	}

	userIDs := map[string]uint{}
	for _, u := range users {
		var existing models.User
		if err := models.DB.Where("email = ?", u.Email).First(&existing).Error; err != nil {
			hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
			if err != nil {
				stdLog.Printf("Failed to hash password for %s: %v", u.Email, err)
				continue
			}
			user := models.User{
				Name:         u.Name,
				Email:        u.Email,
				PasswordHash: string(hash),
				Phone:        u.Phone,
				Address:      u.Address,
				Role:         u.Role,
				Status:       models.UserStatusActive,
				IsVerified:   true,
			}
			if err := models.DB.Create(&user).Error; err != nil {
				stdLog.Printf("Failed to create user %s: %v", u.Email, err)
				continue
			}
			stdLog.Printf("Created user: %s (%s)", u.Email, u.Role)
			userIDs[u.Email] = user.ID
		} else {
			stdLog.Printf("User already exists: %s", u.Email)
			userIDs[u.Email] = existing.ID
		}
	}

	vendorID := userIDs["vendor@parcel.local"]
	customerID := userIDs["customer@parcel.local"]
	customer2ID := userIDs["customer2@parcel.local"]
	if vendorID == 0 || customerID == 0 || customer2ID == 0 {
		stdLog.Fatalf("Seed users missing, cannot create parcels")
	}

	// 添加演示包裹
	parcels := []struct {
		ReceiverID  uint
		Pickup      string
		Delivery    string
		Contact     string
		Weight      float64
		Type        models.ParcelType
		Description string
		Status      models.ParcelStatus
		Tracked     bool
	}{
		{ReceiverID: customerID, Pickup: "Shop 12, Mirpur, Dhaka", Delivery: "House 5, Road 3, Chattogram", Contact: "+8801711000003", Weight: 1.2, Type: models.ParcelTypeDocument, Description: "Contract papers", Status: models.ParcelStatusPending},
		{ReceiverID: customerID, Pickup: "Shop 12, Mirpur, Dhaka", Delivery: "House 5, Road 3, Chattogram", Contact: "+8801711000003", Weight: 3.5, Type: models.ParcelTypeBox, Description: "Ceramic dinner set", Status: models.ParcelStatusApproved, Tracked: true},
		{ReceiverID: customer2ID, Pickup: "Shop 12, Mirpur, Dhaka", Delivery: "Flat 2B, Uttara, Dhaka", Contact: "+8801711000004", Weight: 0.8, Type: models.ParcelTypeFragile, Description: "Glass photo frame", Status: models.ParcelStatusInTransit, Tracked: true},
		{ReceiverID: customer2ID, Pickup: "Shop 12, Mirpur, Dhaka", Delivery: "Flat 2B, Uttara, Dhaka", Contact: "+8801711000004", Weight: 2.0, Type: models.ParcelTypeOther, Description: "Spare parts", Status: models.ParcelStatusDelivered, Tracked: true},
	}

	created := 0
	for _, p := range parcels {
		var count int64
		models.DB.Model(&models.Parcel{}).
			Where("sender_id = ? AND receiver_id = ? AND description = ?", vendorID, p.ReceiverID, p.Description).
			Count(&count)
		if count > 0 {
			stdLog.Printf("Parcel already exists: %s", p.Description)
			continue
		}

		cost, err := service.CalculateParcelCost(p.Type, p.Weight)
		if err != nil {
			stdLog.Printf("Failed to price parcel %s: %v", p.Description, err)
			continue
		}

		parcel := models.Parcel{
			SenderID:        vendorID,
			ReceiverID:      p.ReceiverID,
			PickupAddress:   p.Pickup,
			DeliveryAddress: p.Delivery,
			ContactNumber:   p.Contact,
			Weight:          p.Weight,
			Cost:            cost,
			ParcelType:      p.Type,
			Description:     p.Description,
			Status:          p.Status,
		}
		if p.Tracked {
			trackingID := service.GenerateTrackingID()
			parcel.TrackingID = &trackingID
		}
		if err := models.DB.Create(&parcel).Error; err != nil {
			stdLog.Printf("Failed to create parcel %s: %v", p.Description, err)
			continue
		}

		if p.Tracked {
			now := time.Now()
			events := []models.TrackingEvent{
				{ParcelID: parcel.ID, Location: p.Pickup, Status: models.ParcelStatusApproved, Timestamp: now, Note: "Parcel approved by admin"},
			}
			if p.Status == models.ParcelStatusInTransit {
				events = append(events, models.TrackingEvent{ParcelID: parcel.ID, Location: "Dhaka sorting hub", Status: models.ParcelStatusInTransit, Timestamp: now, Note: "Departed origin facility"})
			}
			if p.Status == models.ParcelStatusDelivered {
				events = append(events, models.TrackingEvent{ParcelID: parcel.ID, Location: p.Pickup, Status: models.ParcelStatusDelivered, Timestamp: now, Note: "Parcel delivered by admin"})
			}
			for _, event := range events {
				evt := event
				if err := models.DB.Create(&evt).Error; err != nil {
					stdLog.Printf("Failed to create tracking event for parcel %d: %v", parcel.ID, err)
				}
			}
		}

		stdLog.Printf("Created parcel: %s (%s)", p.Description, p.Status)
		created++
	}

	fmt.Println("\n✅ Demo data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Users (admin / vendor / 2 customers)")
	fmt.Printf("- %d Parcels with tracking history\n", created)
	fmt.Println("Login with vendor@parcel.local / vendor123 or customer@parcel.local / customer123")
}
