package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/mbalaz/dennyzen/internal/keyring"
	"github.com/mbalaz/dennyzen/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	// Check 1: storage reachable
	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	// Check 2: API key resolvable
	if err := checkAPIKey(); err != nil {
		fmt.Printf("❌ API key: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ API key: OK\n")
	}

	// Check 3: keyring availability (warning only; env keys still work)
	if !keyring.IsAvailable() {
		fmt.Printf("⚠ OS keyring: WARNING\n")
		fmt.Printf("   Keyring unavailable, only GEMINI_API_KEY will be used\n")
	} else {
		fmt.Printf("✓ OS keyring: OK\n")
	}

	// Check 4: no competing session
	if err := checkSessionLock(ctx); err != nil {
		fmt.Printf("❌ Session lock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Session lock: OK\n")
	}

	// Check 5: clock/timezone sanity
	if err := checkClockTimezone(); err != nil {
		fmt.Printf("❌ Clock/timezone: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock/timezone: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}

	// For SQLite, also try a simple query
	if sqliteStore, ok := ctx.Store.(*storage.SQLiteStore); ok {
		db := sqliteStore.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}

	return nil
}

func checkAPIKey() error {
	key, err := ResolveAPIKey()
	if err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("no API key configured")
	}
	return nil
}

func checkSessionLock(ctx *Context) error {
	lock, err := storage.AcquireLock(ctx.Store.GetConfigPath())
	if err != nil {
		if errors.Is(err, storage.ErrLocked) {
			return err
		}
		return fmt.Errorf("failed to probe lockfile: %w", err)
	}
	return lock.Release()
}

func checkClockTimezone() error {
	now := time.Now()

	// The date key partitioning breaks down on an absurd clock
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	_, offset := now.Zone()
	if offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}

	return nil
}
