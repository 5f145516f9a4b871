package main

import (
	"task_system/internal/config" // Custom import path (Config)
	"task_system/internal/db"     // Custom import path (Database)
)

// Main entry point for migration
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Create or update the users and tasks tables
	db.Migrate(cfg.DSN())
}
