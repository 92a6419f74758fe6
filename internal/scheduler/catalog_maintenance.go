package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/mkarpov/readshelf/internal/config"
	"github.com/mkarpov/readshelf/internal/database/catalog"
)

// CatalogMaintenanceScheduler periodically pings the read-only catalog
// database and logs its book count. A Calibre library can be replaced on
// disk underneath the service; the ping surfaces a broken handle early
// instead of on the next user request.
type CatalogMaintenanceScheduler struct {
	catalog *catalog.Catalog
	repo    *catalog.Repository
	cfg     config.Catalog

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.Mutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewCatalogMaintenanceScheduler(cat *catalog.Catalog, repo *catalog.Repository, cfg config.Catalog) *CatalogMaintenanceScheduler {
	return &CatalogMaintenanceScheduler{
		catalog: cat,
		repo:    repo,
		cfg:     cfg,
		cron:    cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the maintenance job if it is enabled.
func (s *CatalogMaintenanceScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if !s.cfg.MaintenanceEnabled {
		log.Printf("Catalog maintenance scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.cfg.MaintenanceSchedule, func() {
		s.runCheck()
	})
	if err != nil {
		return fmt.Errorf("failed to schedule catalog maintenance job: %w", err)
	}
	s.entryID = entryID

	var cancelCtx context.Context
	cancelCtx, s.cancelFunc = context.WithCancel(ctx)

	s.cron.Start()
	s.isRunning = true
	log.Printf("Catalog maintenance scheduler: started with schedule '%s'", s.cfg.MaintenanceSchedule)

	go func() {
		<-cancelCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop gracefully stops the scheduler, waiting for a running check.
func (s *CatalogMaintenanceScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()

	s.isRunning = false
	s.cancelFunc = nil

	log.Printf("Catalog maintenance scheduler: stopped")
}

func (s *CatalogMaintenanceScheduler) runCheck() {
	if err := s.catalog.Ping(); err != nil {
		log.Printf("ERROR: catalog maintenance: ping failed: %v", err)
		return
	}
	count, err := s.repo.Count()
	if err != nil {
		log.Printf("ERROR: catalog maintenance: book count failed: %v", err)
		return
	}
	log.Printf("Catalog maintenance: %d books in catalog", count)
}
