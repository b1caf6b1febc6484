package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/teranga")
	}
	dbPath := filepath.Join(dataPath, "teranga.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=ro")
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	var providerCount, claimedCount, withPhone int
	if err := db.QueryRow(`SELECT COUNT(*), COUNT(owner_id), COUNT(encrypted_phone) FROM providers`).
		Scan(&providerCount, &claimedCount, &withPhone); err != nil {
		log.Fatalf("Failed to count providers: %v", err)
	}

	var recCount int
	if err := db.QueryRow(`SELECT COUNT(*) FROM recommendations`).Scan(&recCount); err != nil {
		log.Fatalf("Failed to count recommendations: %v", err)
	}

	var voteCount, likeCount int
	if err := db.QueryRow(`SELECT COUNT(*), COALESCE(SUM(CASE WHEN kind = 'like' THEN 1 ELSE 0 END), 0) FROM attribute_votes`).
		Scan(&voteCount, &likeCount); err != nil {
		log.Fatalf("Failed to count votes: %v", err)
	}

	fmt.Printf("Providers:       %d (%d claimed, %d with encrypted phone)\n", providerCount, claimedCount, withPhone)
	fmt.Printf("Recommendations: %d\n", recCount)
	fmt.Printf("Attribute votes: %d (%d likes)\n", voteCount, likeCount)
	fmt.Println()

	fmt.Println("Providers by category and city:")
	rows, err := db.Query(`
		SELECT category, city, COUNT(*) AS n
		FROM providers
		GROUP BY category, city
		ORDER BY n DESC, category, city`)
	if err != nil {
		log.Fatalf("Failed to group providers: %v", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category, city string
		var n int
		if err := rows.Scan(&category, &city, &n); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		fmt.Printf("  %-16s %-14s %d\n", category, city, n)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}

	fmt.Println()
	fmt.Println("Most recommended:")
	rows2, err := db.Query(`
		SELECT p.name, p.category, COUNT(r.id) AS n
		FROM providers p
		JOIN recommendations r ON r.provider_id = p.id
		GROUP BY p.id
		ORDER BY n DESC
		LIMIT 10`)
	if err != nil {
		log.Fatalf("Failed to rank providers: %v", err)
	}
	defer rows2.Close()

	for rows2.Next() {
		var name, category string
		var n int
		if err := rows2.Scan(&name, &category, &n); err != nil {
			log.Fatalf("Failed to scan row: %v", err)
		}
		fmt.Printf("  %-24s %-16s %d\n", name, category, n)
	}
	if err := rows2.Err(); err != nil {
		log.Fatalf("Row iteration failed: %v", err)
	}
}
