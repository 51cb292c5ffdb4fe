/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the payroll ledger engine server. Handles
  configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Initialize SQLite store
  3. Load compliance tables (YAML pack or built-in preset)
  4. Seed the default chart of accounts if the database is empty
  5. Create API handler with dependencies
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port    HTTP server port (default: 8080)
  -db      SQLite database path (default: ledger.db)
           Use ":memory:" for in-memory database
  -tables  Path to a YAML compliance pack. When empty, the built-in
           Mexico 2024 monthly tables are used.

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Close database connection
  4. Exit

EXAMPLES:
  # Run with file database and built-in tables
  ./server -db="./data/ledger.db"

  # Run with a custom compliance pack
  ./server -tables="./config/mx-2024.yaml"

  # Run on different port with in-memory database
  ./server -port=3000 -db=":memory:"

ENVIRONMENT:
  No environment variables currently. All config via flags.
  Future: DATABASE_URL, PORT, LOG_LEVEL

SEE ALSO:
  - api/server.go: Router configuration
  - api/handlers.go: HTTP handlers
  - store/sqlite/sqlite.go: Database implementation
  - factory/tables.go: Compliance pack loading
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/huntred/payroll-engine/api"
	"github.com/huntred/payroll-engine/factory"
	"github.com/huntred/payroll-engine/payroll"
	"github.com/huntred/payroll-engine/store/sqlite"
)

func main() {
	// Flags
	port := flag.Int("port", 8080, "HTTP server port")
	dbPath := flag.String("db", "ledger.db", "SQLite database path")
	tablesPath := flag.String("tables", "", "YAML compliance pack (empty = built-in Mexico 2024)")
	flag.Parse()

	// Initialize store
	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer store.Close()

	// Load compliance tables
	tables := factory.MexicoMonthly2024()
	if *tablesPath != "" {
		if tables, err = factory.LoadTablesFile(*tablesPath); err != nil {
			log.Fatalf("Failed to load compliance tables: %v", err)
		}
	}
	calc, err := payroll.NewCalculator(tables)
	if err != nil {
		log.Fatalf("Invalid compliance tables: %v", err)
	}

	// Seed the default chart of accounts if the database is empty
	if err := seedChart(context.Background(), store); err != nil {
		log.Fatalf("Failed to seed chart of accounts: %v", err)
	}

	// Initialize handler and router
	handler := api.NewHandler(store, calc, factory.DefaultPostingMap())
	router := api.NewRouter(handler)

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("🚀 Server starting on http://localhost:%d", *port)
		log.Printf("📊 API available at http://localhost:%d/api", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

// seedChart writes the default chart of accounts on first run. Existing
// accounts are left untouched.
func seedChart(ctx context.Context, store *sqlite.Store) error {
	existing, err := store.Accounts(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	chart, err := factory.DefaultChart()
	if err != nil {
		return err
	}
	for _, a := range chart.Accounts {
		if err := store.SaveAccount(ctx, *a); err != nil {
			return err
		}
	}
	log.Printf("Seeded default chart of accounts (%d accounts)", len(chart.Accounts))
	return nil
}
