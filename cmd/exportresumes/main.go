// Command exportresumes is an offline batch job that reads every stored
// application and extracts the inline-encoded resumes to local files. It
// only consumes the persisted record format; it never touches the
// submission pipeline.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"go-applicant-intake/config"
	"go-applicant-intake/internal/repository/postgres"
	"go-applicant-intake/pkg/database"
	"go-applicant-intake/pkg/logger"
)

func main() {
	outDir := flag.String("dir", "resumes", "directory to write decoded resumes into")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Init()

	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	repo := postgres.NewSubmissionRepository(dbPool)

	records, err := repo.List(context.Background())
	if err != nil {
		logger.Log.Error("Failed to list applications", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Log.Error("Failed to create output directory", "dir", *outDir, "error", err)
		os.Exit(1)
	}

	exported := 0
	for _, rec := range records {
		if rec.Resume == nil {
			continue
		}

		data, err := rec.Resume.Decode()
		if err != nil {
			logger.Log.Error("Failed to decode resume", "record_id", rec.ID, "error", err)
			continue
		}

		ext := filepath.Ext(rec.Resume.Filename)
		if ext == "" {
			ext = ".pdf"
		}
		name := fmt.Sprintf("%s_%s_%d%s", rec.FirstName, rec.LastName, rec.CreatedAt.UnixMilli(), ext)

		path := filepath.Join(*outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			logger.Log.Error("Failed to write resume file", "path", path, "error", err)
			continue
		}
		exported++
	}

	logger.Log.Info("Resume export finished", "records", len(records), "exported", exported)
}
