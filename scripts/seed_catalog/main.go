// Command seed_catalog loads a JSON export of showcase documents into the
// catalog tables. The export is an array of documents, each carrying a
// Sanity-style "_type" and "_id"; rows are upserted so the tool can be rerun
// against a refreshed export.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jmoiron/sqlx"

	"github.com/superstudio/showcase-api/pkg/config"
	"github.com/superstudio/showcase-api/pkg/database"
)

type document struct {
	ID   string `json:"_id"`
	Type string `json:"_type"`
}

func main() {
	var (
		exportPath string
		dryRun     bool
	)
	flag.StringVar(&exportPath, "export", "export.json", "Path to the JSON document export")
	flag.BoolVar(&dryRun, "dry-run", false, "Parse and report without writing")
	flag.Parse()

	docs, err := loadExport(exportPath)
	if err != nil {
		log.Fatalf("failed to load export: %v", err)
	}

	counts := map[string]int{}
	skipped := 0

	var db *sqlx.DB
	if !dryRun {
		cfg, err := config.Load()
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
		db, err = database.NewPostgres(cfg.Database)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer db.Close()
	}

	for _, raw := range docs {
		var meta document
		if err := json.Unmarshal(raw, &meta); err != nil || meta.ID == "" {
			skipped++
			continue
		}
		table := tableForType(meta.Type)
		if table == "" {
			skipped++
			continue
		}
		if !dryRun {
			if err := upsert(db, table, meta.ID, raw); err != nil {
				log.Fatalf("failed to upsert %s %s: %v", meta.Type, meta.ID, err)
			}
		}
		counts[table]++
	}

	for table, n := range counts {
		fmt.Printf("%-12s %d\n", table, n)
	}
	if skipped > 0 {
		fmt.Printf("skipped      %d\n", skipped)
	}
}

func loadExport(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var docs []json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return docs, nil
}

func tableForType(docType string) string {
	switch docType {
	case "studentSubmission":
		return "projects"
	case "studio":
		return "studios"
	case "school":
		return "schools"
	case "demand":
		return "demands"
	}
	return ""
}

func upsert(db *sqlx.DB, table, id string, doc json.RawMessage) error {
	query := fmt.Sprintf(`INSERT INTO %s (id, doc) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()`, table)
	_, err := db.Exec(query, id, []byte(doc))
	return err
}
