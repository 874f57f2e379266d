package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/tacticbot/tacticbot/internal/catalog"
	"github.com/tacticbot/tacticbot/internal/database/postgres"
	"github.com/tacticbot/tacticbot/internal/database/schema"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	host := getenv("DB_HOST", "localhost")
	port := getenv("DB_PORT", "5432")
	user := getenv("DB_USER", "postgres")
	password := getenv("DB_PASSWORD", "postgres")
	dbname := getenv("DB_NAME", "tacticbot")

	ctx := context.Background()

	// 1. Connect to the default 'postgres' database to create the target database
	defaultConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/postgres?sslmode=disable", user, password, host, port)
	conn, err := pgx.Connect(ctx, defaultConnString)
	if err != nil {
		log.Fatalf("Unable to connect to postgres database: %v", err)
	}

	var exists bool
	err = conn.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", dbname).Scan(&exists)
	if err != nil {
		log.Fatalf("Failed to check if database exists: %v", err)
	}

	if !exists {
		fmt.Printf("Creating database %s...\n", dbname)
		if _, err = conn.Exec(ctx, fmt.Sprintf("CREATE DATABASE %s", dbname)); err != nil {
			log.Fatalf("Failed to create database: %v", err)
		}
		fmt.Println("Database created successfully.")
	} else {
		fmt.Printf("Database %s already exists.\n", dbname)
	}

	conn.Close(ctx)

	// 2. Connect to the target database and apply the schema
	targetConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", user, password, host, port, dbname)
	pool, err := pgxpool.New(ctx, targetConnString)
	if err != nil {
		log.Fatalf("Unable to connect to %s database: %v", dbname, err)
	}
	defer pool.Close()

	fmt.Println("Applying schema...")
	if _, err = pool.Exec(ctx, schema.SchemaSQL); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}
	fmt.Println("Schema applied successfully.")

	// 3. Seed the built-in unit roster. Existing rows are left untouched so
	// rerunning setup never clobbers tuned templates.
	fmt.Println("Seeding unit templates...")
	templates := postgres.NewTemplateRepository(pool)
	if err = templates.SeedTemplates(ctx, catalog.DefaultTemplates); err != nil {
		log.Fatalf("Failed to seed templates: %v", err)
	}
	fmt.Printf("Seeded %d templates.\n", len(catalog.DefaultTemplates))
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
