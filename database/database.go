package database

import (
	"fmt"
	"log"

	config "github.com/arnav2305/eduprime/configs"
	"github.com/arnav2305/eduprime/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func ConnectDB() {
	var err error
	dsn := config.Config("DATABASE_URL")

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		PrepareStmt:                              false,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		DisableNestedTransaction:                 true,
	})
	if err != nil {
		log.Fatalf("🔥 Failed to connect to database: %v", err)
	}

	fmt.Println("✅ Database connected successfully")
}

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Package{},
		&models.PaymentProof{},
		&models.Payment{},
	)
	if err != nil {
		log.Fatalf("🔥 Failed to migrate database: %v", err)
	}
	fmt.Println("✅ Database migration successful")
}

func SeedAdmin() {
	adminEmail := config.Config("ADMIN_EMAIL")
	adminPassword := config.Config("ADMIN_PASSWORD")

	var count int64
	err := DB.Model(&models.User{}).Where("email = ?", adminEmail).Count(&count).Error
	if err != nil {
		log.Fatalf("🔥 Failed to check for admin user: %v", err)
		return
	}

	if count > 0 {
		log.Println("Admin user already exists.")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("🔥 Failed to hash admin password: %v", err)
		return
	}

	adminUser := models.User{
		FullName: config.Config("ADMIN_FULL_NAME"),
		Email:    adminEmail,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}

	if err := DB.Create(&adminUser).Error; err != nil {
		log.Fatalf("🔥 Failed to seed admin user: %v", err)
		return
	}

	log.Println("✅ Admin user seeded successfully")
}

func SeedPackages() {
	var count int64
	if err := DB.Model(&models.Package{}).Count(&count).Error; err != nil {
		log.Fatalf("🔥 Failed to check for packages: %v", err)
		return
	}
	if count > 0 {
		log.Println("Packages already seeded.")
		return
	}

	packages := []models.Package{
		{Name: "SILVER", Price: 999, Courses: "HTML & CSS Fundamentals\nJavaScript Basics"},
		{Name: "GOLD", Price: 1999, Courses: "HTML & CSS Fundamentals\nJavaScript Basics\nReact Essentials\nGit & GitHub"},
		{Name: "PLATINUM", Price: 2999, Courses: "Everything in GOLD\nNode.js & Express\nMongoDB\nDeployment Bootcamp"},
		{Name: "DIAMOND", Price: 4999, Courses: "Everything in PLATINUM\nSystem Design Primer\nInterview Preparation\n1:1 Mentorship Sessions"},
	}

	for _, pkg := range packages {
		if err := DB.Create(&pkg).Error; err != nil {
			log.Fatalf("🔥 Failed to seed package %s: %v", pkg.Name, err)
			return
		}
	}

	log.Println("✅ Course packages seeded successfully")
}
