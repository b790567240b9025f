// Seeds the reference tables (districts, cities, barangays, clustered
// precincts) from CSV exports of the legacy database.
//
// Usage:
//
//	go run ./cmd/seed --kind barangays --csv barangays.csv --confirm
package main

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

var (
	kind    = flag.String("kind", "", "One of: districts, citymuns, barangays, precincts (required)")
	csvPath = flag.String("csv", "", "Path to the source CSV (required)")
	dsn     = flag.String("dsn", os.Getenv("DATABASE_URL"), "Postgres DSN (default: env DATABASE_URL)")
	dryRun  = flag.Bool("dry-run", false, "Parse + validate only; no DB writes")
	confirm = flag.Bool("confirm", false, "Required to perform the replace")
)

// target describes one seedable table: its CSV columns and the insert text.
type target struct {
	table   string
	columns []string
	insert  string
	numeric map[string]bool // columns parsed as integers
}

var targets = map[string]target{
	"districts": {
		table:   "voter_district",
		columns: []string{"code", "name", "status"},
		insert:  `INSERT INTO voter_district (code, name, status) VALUES ($1, $2, $3)`,
		numeric: map[string]bool{"status": true},
	},
	"citymuns": {
		table:   "voter_city",
		columns: []string{"code", "areacode", "name", "status"},
		insert:  `INSERT INTO voter_city (code, areacode, name, status) VALUES ($1, $2, $3, $4)`,
		numeric: map[string]bool{"status": true},
	},
	"barangays": {
		table:   "voter_barangay",
		columns: []string{"code", "areacode", "muncode", "name", "status"},
		insert:  `INSERT INTO voter_barangay (code, areacode, muncode, name, status) VALUES ($1, $2, $3, $4, $5)`,
		numeric: map[string]bool{"status": true},
	},
	"precincts": {
		table:   "brgy_clustered_precincts_prec",
		columns: []string{"brgy_code", "cluster_id", "precinct"},
		insert:  `INSERT INTO brgy_clustered_precincts_prec (brgy_code, cluster_id, precinct) VALUES ($1, $2, $3)`,
		numeric: map[string]bool{"cluster_id": true},
	},
}

func main() {
	_ = godotenv.Load(".env.local")
	flag.Parse()

	tgt, ok := targets[*kind]
	if !ok {
		fatalf("--kind must be one of districts, citymuns, barangays, precincts")
	}
	if *csvPath == "" {
		fatalf("--csv is required")
	}
	if *dsn == "" {
		fatalf("--dsn not provided and DATABASE_URL not set")
	}

	rows, err := loadCSV(*csvPath, tgt)
	if err != nil {
		fatalf("CSV error: %v", err)
	}
	fmt.Printf("Loaded %d %s rows from %s\n", len(rows), *kind, *csvPath)

	if *dryRun {
		fmt.Println("Dry run complete. No changes made.")
		return
	}
	if !*confirm {
		fatalf("Refusing to run without --confirm. Add --dry-run to preview.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	db, err := sql.Open("pgx", *dsn)
	if err != nil {
		fatalf("connect: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		fatalf("ping: %v", err)
	}

	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op if already committed
	}()

	// Replace, not merge: these are full exports of small static tables.
	if _, err := tx.ExecContext(ctx, "DELETE FROM "+tgt.table); err != nil {
		fatalf("wipe %s: %v", tgt.table, err)
	}

	for i, row := range rows {
		if _, err := tx.ExecContext(ctx, tgt.insert, row...); err != nil {
			fatalf("insert row %d: %v", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		fatalf("commit: %v", err)
	}
	fmt.Printf("Seeded %d rows into %s\n", len(rows), tgt.table)
}

func loadCSV(path string, tgt target) ([][]any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.TrimLeadingSpace = true

	headers, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	idx := map[string]int{}
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	for _, col := range tgt.columns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("missing required column: %s", col)
		}
	}

	var out [][]any
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}

		row := make([]any, 0, len(tgt.columns))
		for _, col := range tgt.columns {
			value := strings.TrimSpace(rec[idx[col]])
			if tgt.numeric[col] {
				n, err := strconv.Atoi(value)
				if err != nil {
					return nil, fmt.Errorf("row %d: column %s: %w", len(out)+1, col, err)
				}
				row = append(row, n)
				continue
			}
			row = append(row, value)
		}
		out = append(out, row)
	}
	return out, nil
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
