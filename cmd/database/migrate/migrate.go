package migration

import (
	"fmt"
	"log"
	"topup-backend/entities"
	"topup-backend/pkg/settings"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.WalletTopUpTransaction{}); err != nil {
		log.Fatalf("Error migrating wallet transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PointsTransaction{}); err != nil {
		log.Fatalf("Error migrating points transaction database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.PointsPurchaseRequest{}); err != nil {
		log.Fatalf("Error migrating points purchase request database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.DiamondPurchase{}); err != nil {
		log.Fatalf("Error migrating diamond purchase database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ConversionSettings{}); err != nil {
		log.Fatalf("Error migrating conversion settings database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Product{}); err != nil {
		log.Fatalf("Error migrating product database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.ProductOrder{}); err != nil {
		log.Fatalf("Error migrating product order database: %v", err)
		return err
	}

	if err := settings.Seed(db); err != nil {
		log.Fatalf("Error seeding conversion settings: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}
