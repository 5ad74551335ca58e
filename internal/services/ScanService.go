package services

import (
	"context"
	"rollcall/internal/backend"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/scanner"
	"rollcall/internal/sessions"
	"rollcall/internal/structures"
	"time"
)

const SessionKindScan = "scan"

// ScanSession is one open scanner for a track and day.
type ScanSession struct {
	Track string
	Day   int
	Dedup *scanner.Deduplicator
}

type ScanServiceInterface interface {
	Open(track string, day int) (string, *ScanSession, error)
	Get(id string) (*ScanSession, error)
	Detect(id string, detections []scanner.Detection) ([]scanner.Outcome, scanner.State, error)
	Feed(ctx context.Context, id string, in <-chan scanner.Detection, onOutcome func(scanner.Detection, scanner.Outcome)) error
	Pause(id string) (scanner.State, error)
	Resume(id string) (scanner.State, error)
	Toggle(id string) (scanner.State, error)
	Send(ctx context.Context, id string) (int, error)
	Close(id string) bool
	OpenSessions() int
	SweepIdle() int
}

type ScanService struct {
	client   backend.ClientInterface
	logger   providers.Logger
	metrics  providers.MetricsProviderInterface
	cooldown time.Duration
	clock    func() time.Time
	sessions *sessions.Registry[*ScanSession]
}

func NewScanService(conf *structures.Config, client backend.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) ScanServiceInterface {
	return newScanService(conf, client, logger, metrics, time.Now)
}

func newScanService(conf *structures.Config, client backend.ClientInterface, logger providers.Logger, metrics providers.MetricsProviderInterface, clock func() time.Time) *ScanService {
	return &ScanService{
		client:   client,
		logger:   logger,
		metrics:  metrics,
		cooldown: conf.Scanner.Cooldown,
		clock:    clock,
		sessions: sessions.NewRegistry[*ScanSession](conf.Sessions.IdleTTL).WithClock(clock),
	}
}

func (ss *ScanService) Open(track string, day int) (string, *ScanSession, error) {
	if err := validateSelection(track, day); err != nil {
		return "", nil, err
	}

	session := &ScanSession{
		Track: track,
		Day:   day,
		Dedup: scanner.NewDeduplicator(ss.cooldown, scanner.WithClock(ss.clock)),
	}
	id := ss.sessions.Add(session)
	ss.metrics.SetOpenSessions(SessionKindScan, ss.sessions.Len())
	ss.logger.Infof(providers.TypeScan, "Scan session %s opened for %s day %d", id, track, day)
	return id, session, nil
}

func (ss *ScanService) Get(id string) (*ScanSession, error) {
	session, ok := ss.sessions.Get(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (ss *ScanService) observe(id string) func(scanner.Detection, scanner.Outcome) {
	return func(det scanner.Detection, outcome scanner.Outcome) {
		ss.metrics.IncScans(outcome.String())
		switch {
		case outcome == scanner.Accepted:
			ss.logger.Infof(providers.TypeScan, "Scan session %s accepted %s", id, det.Text)
		case det.Err != nil:
			ss.logger.Debugf(providers.TypeScan, "Scan session %s decode failure: %s", id, det.Err)
		}
	}
}

// Detect offers detections in arrival order and reports each outcome.
func (ss *ScanService) Detect(id string, detections []scanner.Detection) ([]scanner.Outcome, scanner.State, error) {
	session, err := ss.Get(id)
	if err != nil {
		return nil, scanner.State{}, err
	}

	observe := ss.observe(id)
	outcomes := make([]scanner.Outcome, 0, len(detections))
	for _, det := range detections {
		outcome := session.Dedup.Offer(det)
		observe(det, outcome)
		outcomes = append(outcomes, outcome)
	}
	return outcomes, session.Dedup.Snapshot(), nil
}

// Feed consumes a scanning surface channel into the session until the
// channel closes or ctx is done.
func (ss *ScanService) Feed(ctx context.Context, id string, in <-chan scanner.Detection, onOutcome func(scanner.Detection, scanner.Outcome)) error {
	session, err := ss.Get(id)
	if err != nil {
		return err
	}

	observe := ss.observe(id)
	session.Dedup.Consume(ctx, in, func(det scanner.Detection, outcome scanner.Outcome) {
		observe(det, outcome)
		if onOutcome != nil {
			onOutcome(det, outcome)
		}
	})
	return ctx.Err()
}

func (ss *ScanService) Pause(id string) (scanner.State, error) {
	session, err := ss.Get(id)
	if err != nil {
		return scanner.State{}, err
	}
	session.Dedup.Pause()
	return session.Dedup.Snapshot(), nil
}

func (ss *ScanService) Resume(id string) (scanner.State, error) {
	session, err := ss.Get(id)
	if err != nil {
		return scanner.State{}, err
	}
	session.Dedup.Resume()
	return session.Dedup.Snapshot(), nil
}

func (ss *ScanService) Toggle(id string) (scanner.State, error) {
	session, err := ss.Get(id)
	if err != nil {
		return scanner.State{}, err
	}
	session.Dedup.Toggle()
	return session.Dedup.Snapshot(), nil
}

// Send posts the collected codes and discards the session. On failure the
// session stays open so the organizer can retry. Codes accepted while the
// post was in flight stay collected and keep the session open.
func (ss *ScanService) Send(ctx context.Context, id string) (int, error) {
	session, err := ss.Get(id)
	if err != nil {
		return 0, err
	}

	codes := session.Dedup.Collected()
	if len(codes) == 0 {
		return 0, ErrNothingScanned
	}

	err = ss.client.SendBarcodes(ctx, &models.BarcodeBatch{
		Bootcamp: session.Track,
		Day:      session.Day,
		Barcodes: codes,
	})
	if err != nil {
		ss.logger.Errorf(providers.TypeScan, "Scan session %s send failed: %s", id, err)
		return 0, err
	}

	if remaining := session.Dedup.Forget(codes); remaining > 0 {
		ss.logger.Infof(providers.TypeScan, "Scan session %s sent %d barcodes, %d arrived meanwhile", id, len(codes), remaining)
		return len(codes), nil
	}
	session.Dedup.Clear()
	ss.Close(id)
	ss.logger.Infof(providers.TypeScan, "Scan session %s sent %d barcodes", id, len(codes))
	return len(codes), nil
}

func (ss *ScanService) Close(id string) bool {
	_, ok := ss.sessions.Remove(id)
	ss.metrics.SetOpenSessions(SessionKindScan, ss.sessions.Len())
	return ok
}

func (ss *ScanService) OpenSessions() int {
	return ss.sessions.Len()
}

func (ss *ScanService) SweepIdle() int {
	n := ss.sessions.Sweep()
	ss.metrics.SetOpenSessions(SessionKindScan, ss.sessions.Len())
	return n
}
