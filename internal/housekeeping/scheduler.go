package housekeeping

import (
	"rollcall/internal/housekeeping/interfaces"
	"rollcall/internal/providers"
	"rollcall/internal/services"
	"rollcall/internal/structures"
	"sync"

	"github.com/roylee0704/gron"
)

// Scheduler periodically drops roster sheets and scan sessions that
// nobody touched within the idle TTL.
type Scheduler struct {
	config     *structures.Config
	logger     providers.Logger
	attendance services.AttendanceServiceInterface
	scan       services.ScanServiceInterface
	cron       *gron.Cron
	opsMu      sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	s.cron.AddFunc(gron.Every(s.config.Sessions.SweepInterval), func() {
		s.Sweep()
	})
	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

// Sweep runs one pass over both registries and returns how many sessions
// were dropped.
func (s *Scheduler) Sweep() int {
	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	sheets := s.attendance.SweepIdle()
	scans := s.scan.SweepIdle()
	if sheets+scans > 0 {
		s.logger.Infof(providers.TypeApp, "Swept %d idle roster sheets and %d idle scan sessions", sheets, scans)
	} else {
		s.logger.Debugf(providers.TypeApp, "No idle sessions (%d sheets, %d scans open)", s.attendance.OpenSheets(), s.scan.OpenSessions())
	}
	return sheets + scans
}

func NewScheduler(config *structures.Config, logger providers.Logger, attendance services.AttendanceServiceInterface, scan services.ScanServiceInterface) interfaces.SchedulerInterface {
	return &Scheduler{
		config:     config,
		logger:     logger,
		attendance: attendance,
		scan:       scan,
	}
}
