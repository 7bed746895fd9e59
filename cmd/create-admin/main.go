package main

import (
	"flag"

	"go-warehouse-api/internal/model"
	"go-warehouse-api/pkg/database"
	"go-warehouse-api/pkg/logging"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
)

// Creates (or repairs) a super_admin account directly against the database.
// Useful when the bootstrap register window is closed or credentials are lost.
func main() {
	email := flag.String("email", "", "admin email (required)")
	password := flag.String("password", "", "admin password (required, min 6 chars)")
	firstName := flag.String("first-name", "Super", "admin first name")
	lastName := flag.String("last-name", "Admin", "admin last name")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("email and password are required")
	}
	if len(*password) < 6 {
		log.Fatal("password must be at least 6 characters")
	}

	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using process environment")
	}
	logging.Setup()

	db := database.ConnectDB()
	if err := db.AutoMigrate(&model.Sequence{}, &model.Admin{}, &model.Warehouse{}); err != nil {
		log.WithError(err).Fatal("Auto migration failed")
	}

	var existing model.Admin
	if err := db.First(&existing, "email = ?", *email).Error; err == nil {
		// Account exists: promote and reset credentials.
		if err := existing.SetPassword(*password); err != nil {
			log.WithError(err).Fatal("Failed to hash password")
		}
		existing.Role = model.RoleSuperAdmin
		existing.Permissions = datatypes.JSONSlice[string]{model.PermFullAccess}
		existing.IsActive = true
		existing.LoginAttempts = 0
		existing.LockUntil = nil

		if err := db.Save(&existing).Error; err != nil {
			log.WithError(err).Fatal("Failed to update admin")
		}
		log.WithField("email", *email).Info("Existing account promoted to super_admin and password reset")
		return
	}

	admin := &model.Admin{
		FirstName:   *firstName,
		LastName:    *lastName,
		Email:       *email,
		Role:        model.RoleSuperAdmin,
		Permissions: datatypes.JSONSlice[string]{model.PermFullAccess},
		IsActive:    true,
	}
	if err := admin.SetPassword(*password); err != nil {
		log.WithError(err).Fatal("Failed to hash password")
	}

	if err := db.Create(admin).Error; err != nil {
		log.WithError(err).Fatal("Failed to create admin")
	}
	log.WithFields(log.Fields{"email": *email, "admin_id": admin.AdminID}).Info("Super admin created")
}
