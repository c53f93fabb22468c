package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/campusdash/course-api/internal/ingest"
	"github.com/campusdash/course-api/internal/repository"
	"github.com/campusdash/course-api/internal/service"
	"github.com/campusdash/course-api/pkg/config"
	"github.com/campusdash/course-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	catalogFlag := flag.String("catalog", "", "catalog workbook path (overrides config)")
	offeringsFlag := flag.String("offerings", "", "offerings workbook path (overrides config)")
	outputFlag := flag.String("output", "", "artifact path (overrides config)")
	flag.Parse()

	if *catalogFlag != "" {
		cfg.Data.CatalogFile = *catalogFlag
	}
	if *offeringsFlag != "" {
		cfg.Data.OfferingsFile = *offeringsFlag
	}
	if *outputFlag != "" {
		cfg.Data.ArtifactFile = *outputFlag
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}

	if err := run(cfg, logr); err != nil {
		logr.Sugar().Errorw("preprocessing failed", "error", err)
		_ = logr.Sync()
		os.Exit(1)
	}
	_ = logr.Sync()
}

func run(cfg *config.Config, logr *zap.Logger) error {
	snapshots, err := repository.NewSnapshotRepository(cfg.Data.ArtifactFile, logr)
	if err != nil {
		return fmt.Errorf("init snapshot repository: %w", err)
	}

	pipeline := service.NewPreprocessService(
		ingest.NewXLSXReader(),
		service.NewCatalogService(logr),
		service.NewOfferingsService(logr),
		service.NewPrereqService(),
		snapshots,
		logr,
		service.PreprocessConfig{CatalogFile: cfg.Data.CatalogFile, OfferingsFile: cfg.Data.OfferingsFile},
	)

	dataset, err := pipeline.Run(context.Background())
	if err != nil {
		return err
	}

	totalEnrollment, totalCapacity := 0, 0
	for _, course := range dataset.Courses {
		totalEnrollment += course.TotalActualEnrollment
		totalCapacity += course.TotalMaxEnrollment
	}

	utilization := "0.00"
	if totalCapacity > 0 {
		utilization = fmt.Sprintf("%.2f", float64(totalEnrollment)/float64(totalCapacity)*100)
	}

	logr.Sugar().Infow("summary",
		"total_courses", dataset.Metadata.TotalCourses,
		"total_sections", dataset.Metadata.TotalSections,
		"total_enrollment", totalEnrollment,
		"total_capacity", totalCapacity,
		"overall_utilization_pct", utilization,
	)
	return nil
}
