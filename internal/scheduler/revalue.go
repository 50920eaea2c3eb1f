package scheduler

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aristath/valuator/internal/database/repositories"
	"github.com/aristath/valuator/internal/modules/companies"
	"github.com/aristath/valuator/internal/modules/report"
)

// RevalueJobConfig holds dependencies for the revaluation job
type RevalueJobConfig struct {
	Loader     *companies.Loader
	Reports    *report.Service
	Valuations *repositories.ValuationRepository
	Log        zerolog.Logger
}

// RevalueJob regenerates and persists a valuation report for every
// company in the data directory.
type RevalueJob struct {
	loader     *companies.Loader
	reports    *report.Service
	valuations *repositories.ValuationRepository
	log        zerolog.Logger
}

// NewRevalueJob creates a new revaluation job
func NewRevalueJob(cfg RevalueJobConfig) *RevalueJob {
	return &RevalueJob{
		loader:     cfg.Loader,
		reports:    cfg.Reports,
		valuations: cfg.Valuations,
		log:        cfg.Log.With().Str("job", "revalue").Logger(),
	}
}

// Name returns the job name
func (j *RevalueJob) Name() string {
	return "revalue"
}

// Run values every loadable company and stores the resulting reports.
// Companies that fail to persist are logged and skipped so one bad
// record cannot block the rest of the cycle.
func (j *RevalueJob) Run() error {
	facts, err := j.loader.LoadAll()
	if err != nil {
		return fmt.Errorf("loading companies: %w", err)
	}

	if len(facts) == 0 {
		j.log.Warn().Msg("No companies to revalue")
		return nil
	}

	var succeeded, failed int

	for _, f := range facts {
		rep := j.reports.Generate(f)

		if err := j.valuations.Save(rep); err != nil {
			j.log.Error().
				Err(err).
				Str("ticker", f.Ticker).
				Msg("Failed to save valuation")
			failed++
			continue
		}

		succeeded++
	}

	j.log.Info().
		Int("succeeded", succeeded).
		Int("failed", failed).
		Msg("Revaluation cycle complete")

	if succeeded == 0 && failed > 0 {
		return fmt.Errorf("revaluation failed for all %d companies", failed)
	}

	return nil
}
