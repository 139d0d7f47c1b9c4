package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"crimewatch/backend/internal/models"
	"crimewatch/backend/internal/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	storageSvc := storage.NewStorageService(db, nil) // No redis needed for admin CLI

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "verify-authority":
		if len(os.Args) != 3 {
			fmt.Println("Usage: admin verify-authority <authority_id>")
			os.Exit(1)
		}
		id := mustUint(os.Args[2], "authority ID")
		if err := storageSvc.VerifyAuthority(id); err != nil {
			log.Fatalf("Error verifying authority: %v", err)
		}
		fmt.Printf("Authority %d has been verified.\n", id)

	case "activate", "deactivate":
		if len(os.Args) != 3 {
			fmt.Printf("Usage: admin %s <user_id>\n", os.Args[1])
			os.Exit(1)
		}
		id := mustUint(os.Args[2], "user ID")
		active := os.Args[1] == "activate"
		if err := storageSvc.SetUserActive(id, active); err != nil {
			log.Fatalf("Error updating user status: %v", err)
		}
		fmt.Printf("User %d active=%v.\n", id, active)

	case "create-admin":
		if len(os.Args) != 5 {
			fmt.Println("Usage: admin create-admin <username> <email> <password>")
			os.Exit(1)
		}
		if err := createAdmin(storageSvc, os.Args[2], os.Args[3], os.Args[4]); err != nil {
			log.Fatalf("Error creating admin: %v", err)
		}
		fmt.Printf("Admin %s created.\n", os.Args[2])

	case "stats":
		if err := printStats(storageSvc); err != nil {
			log.Fatalf("Error reading stats: %v", err)
		}

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <verify-authority|activate|deactivate|create-admin|stats> [args]")
	os.Exit(1)
}

func mustUint(raw, what string) uint {
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 {
		fmt.Printf("Invalid %s. Please provide a positive integer.\n", what)
		os.Exit(1)
	}
	return uint(v)
}

func createAdmin(s storage.Storage, username, email, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.SaveUser(&models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
		Role:     models.RoleAdmin,
		IsActive: true,
	})
}

func printStats(s storage.Storage) error {
	users, err := s.CountUsers()
	if err != nil {
		return err
	}
	authorities, err := s.CountAuthorities()
	if err != nil {
		return err
	}
	reports, err := s.CountReports()
	if err != nil {
		return err
	}
	recent, err := s.CountReportsSince(time.Now().AddDate(0, 0, -7))
	if err != nil {
		return err
	}

	fmt.Printf("users: %d\nauthorities: %d\nreports: %d\nreports (7d): %d\n", users, authorities, reports, recent)
	for _, status := range []string{
		models.ReportStatusPending,
		models.ReportStatusInvestigating,
		models.ReportStatusResolved,
		models.ReportStatusClosed,
	} {
		n, err := s.CountReportsByStatus(status)
		if err != nil {
			return err
		}
		fmt.Printf("  %s: %d\n", status, n)
	}
	return nil
}
