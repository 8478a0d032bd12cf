package main

import (
	"encoding/json"
	"flag"
	"foodgram/database"
	"foodgram/internal/repository"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Loads the ingredient catalog from a JSON file of
// {"name": ..., "measurement_unit": ...} objects. Existing (name, unit)
// pairs are skipped, so the command is safe to re-run.

type ingredientEntry struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func init() {
	// Load .env file from project root
	if err := godotenv.Load(); err != nil {
		// Try loading from parent directory (in case running from cmd/loadingredients/)
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found: %v", err)
		}
	}
}

func main() {
	filePath := flag.String("file", "data/ingredients.json", "Path to the ingredients JSON file")
	clearTable := flag.Bool("clear", false, "Clear the ingredients table before loading")
	flag.Parse()

	database.ConnectDatabase()
	if err := database.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	repo := repository.NewIngredientRepository(database.DB)

	if *clearTable {
		deleted, err := repo.DeleteAll()
		if err != nil {
			log.Fatalf("Failed to clear ingredients table: %v", err)
		}
		log.Printf("Deleted %d ingredients", deleted)
	}

	log.Printf("Reading %s...", *filePath)
	raw, err := os.ReadFile(*filePath)
	if err != nil {
		log.Fatalf("Failed to read %s: %v", *filePath, err)
	}

	var entries []ingredientEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		log.Fatalf("Failed to parse %s: the file must contain a JSON list of objects: %v", *filePath, err)
	}

	log.Println("Loading ingredients into the database...")
	created := 0
	skipped := 0
	failed := 0

	for _, entry := range entries {
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		unit := strings.TrimSpace(entry.MeasurementUnit)

		if name == "" || unit == "" {
			log.Printf("Skipped entry with missing name or measurement_unit: %+v", entry)
			skipped++
			continue
		}

		wasCreated, err := repo.FirstOrCreate(name, unit)
		if err != nil {
			log.Printf("Error while saving %q (%s): %v", name, unit, err)
			failed++
			continue
		}
		if wasCreated {
			created++
		} else {
			skipped++
		}
	}

	log.Printf("Load complete. Created: %d, skipped (already present or invalid): %d, errors: %d",
		created, skipped, failed)
	if failed > 0 {
		os.Exit(1)
	}
}
