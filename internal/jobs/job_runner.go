package jobs

import (
	"elira-backend/internal/config"
	"elira-backend/internal/logger"
	"elira-backend/internal/repository"
	"elira-backend/internal/service"
)

// JobRunner coordinates all scheduled jobs
type JobRunner struct {
	purchaseRepo     repository.PurchaseRepository
	eventRepo        repository.PurchaseEventRepository
	userRepo         repository.UserRepository
	orgRepo          repository.OrganizationRepository
	notificationRepo repository.NotificationRepository
	emailSvc         service.EmailService
	config           *config.Config
}

// NewJobRunner creates a new job runner with all dependencies
func NewJobRunner(
	purchaseRepo repository.PurchaseRepository,
	eventRepo repository.PurchaseEventRepository,
	userRepo repository.UserRepository,
	orgRepo repository.OrganizationRepository,
	notificationRepo repository.NotificationRepository,
	emailSvc service.EmailService,
	cfg *config.Config,
) *JobRunner {
	return &JobRunner{
		purchaseRepo:     purchaseRepo,
		eventRepo:        eventRepo,
		userRepo:         userRepo,
		orgRepo:          orgRepo,
		notificationRepo: notificationRepo,
		emailSvc:         emailSvc,
		config:           cfg,
	}
}

// Config exposes the loaded configuration to the scheduler
func (jr *JobRunner) Config() *config.Config {
	return jr.config
}

// runWithRecovery wraps job execution with panic recovery
func (jr *JobRunner) runWithRecovery(jobName string, jobFunc func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("Job panicked", "job", jobName, "panic", r)
		}
	}()

	logger.Info("Starting job", "job", jobName)
	jobFunc()
	logger.Info("Job completed", "job", jobName)
}
