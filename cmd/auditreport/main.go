// Command auditreport exports the onboarding and notification audit
// trails to a spreadsheet for the operations team.
//
// Usage:
//
//	auditreport -from 2026-08-01 -to 2026-09-01 -out audits.xlsx
package main

import (
	"flag"
	"os"

	"github.com/bancoriental/unipersonal-backend/config"
	"github.com/bancoriental/unipersonal-backend/internal/app/repository"
	"github.com/bancoriental/unipersonal-backend/internal/app/service"
	"github.com/bancoriental/unipersonal-backend/internal/db"
	"github.com/bancoriental/unipersonal-backend/pkg/logger"
)

func main() {
	from := flag.String("from", "", "start day, inclusive (YYYY-MM-DD)")
	to := flag.String("to", "", "end day, exclusive (YYYY-MM-DD)")
	out := flag.String("out", "audits.xlsx", "output file path")
	flag.Parse()

	logger.Initialize(logger.Config{
		Level:  "info",
		Format: "console",
	})

	if *from == "" || *to == "" {
		logger.Error("Both -from and -to are required", nil)
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	reports := service.NewReportService(repository.NewAuditRepository(db.GetDB()))
	if err := reports.ExportAudits(*from, *to, *out); err != nil {
		logger.Fatal("Failed to export audits", err)
	}
}
