// File: internal/jobs/stale_verifications.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"bhoomi_backend/internal/config"
	"bhoomi_backend/internal/verification"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StaleVerificationJob reminds reviewers about verification requests that
// have sat in PENDING past the review window.
type StaleVerificationJob struct {
	verificationService verification.Service
	logger              *zap.Logger
	cfg                 *config.Config
	cronScheduler       *cron.Cron
}

// NewStaleVerificationJob creates a new StaleVerificationJob.
func NewStaleVerificationJob(
	verificationService verification.Service,
	logger *zap.Logger,
	cfg *config.Config,
) *StaleVerificationJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &StaleVerificationJob{
		verificationService: verificationService,
		logger:              logger.Named("StaleVerificationJob"),
		cfg:                 cfg,
		cronScheduler:       scheduler,
	}
}

// SetupAndStart schedules and starts the cron job.
func (j *StaleVerificationJob) SetupAndStart() error {
	jobSpec := j.cfg.StaleVerificationJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Stale verification job schedule not defined (STALE_VERIFICATION_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule stale verification job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Stale verification job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

func (j *StaleVerificationJob) runJob() {
	j.logger.Info("Starting stale verification job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	age := time.Duration(j.cfg.StaleVerificationAgeDays) * 24 * time.Hour
	staleCount, err := j.verificationService.RemindStalePending(ctx, age)
	if err != nil {
		j.logger.Error("Stale verification job run failed", zap.Error(err))
	} else {
		j.logger.Info("Stale verification job run completed", zap.Int("stale_pending", staleCount))
	}
}

// Stop gracefully stops the cron scheduler.
func (j *StaleVerificationJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping stale verification job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Stale verification job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Stale verification job scheduler stop timed out.")
		}
	}
}

// cronLogger adapts zap.Logger to the cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	cl.zl.Info(msg, cl.parseKeysAndValues(keysAndValues...)...)
}

func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
