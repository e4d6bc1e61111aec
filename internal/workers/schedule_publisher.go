package workers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tesseract-hub/storefront-service/internal/health"
	"github.com/tesseract-hub/storefront-service/internal/services"
)

const (
	// DefaultScanInterval is the default interval between due-draft scans
	DefaultScanInterval = 30 * time.Second

	// ScanBatchSize bounds how many due drafts one scan will publish
	ScanBatchSize = 50

	// ScanTimeout bounds a single scan pass
	ScanTimeout = 30 * time.Second
)

// SchedulePublisher periodically publishes scheduled drafts whose time
// has passed. Publication is backend-driven so a closed admin browser
// never delays a scheduled release.
type SchedulePublisher struct {
	drafts   *services.DraftService
	interval time.Duration
	log      *logrus.Logger
	stopChan chan struct{}
	doneChan chan struct{}
	mu       sync.Mutex
	running  bool
	lastScan time.Time
	lastErr  error
}

// NewSchedulePublisher creates a new schedule publisher
func NewSchedulePublisher(drafts *services.DraftService, interval time.Duration, log *logrus.Logger) *SchedulePublisher {
	if interval == 0 {
		interval = DefaultScanInterval
	}

	return &SchedulePublisher{
		drafts:   drafts,
		interval: interval,
		log:      log,
		stopChan: make(chan struct{}),
		doneChan: make(chan struct{}),
	}
}

// Start begins the scan loop
func (p *SchedulePublisher) Start() {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.mu.Unlock()

	go p.run()
	p.log.WithField("interval", p.interval).Info("Schedule publisher started")
}

// Stop stops the scan loop and waits for the current pass to finish
func (p *SchedulePublisher) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	p.mu.Unlock()

	close(p.stopChan)
	<-p.doneChan
	p.log.Info("Schedule publisher stopped")
}

// ForceScan triggers an immediate scan
func (p *SchedulePublisher) ForceScan() error {
	return p.scan()
}

// LastScan returns the time of the last completed scan
func (p *SchedulePublisher) LastScan() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastScan
}

// LastError returns the last error encountered during a scan
func (p *SchedulePublisher) LastError() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}

// IsRunning returns whether the publisher is running
func (p *SchedulePublisher) IsRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// run is the main scan loop
func (p *SchedulePublisher) run() {
	defer close(p.doneChan)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.scan(); err != nil {
				p.log.WithError(err).Error("Scheduled publish scan failed")
			}
		case <-p.stopChan:
			return
		}
	}
}

// scan publishes every due scheduled draft
func (p *SchedulePublisher) scan() error {
	ctx, cancel := context.WithTimeout(context.Background(), ScanTimeout)
	defer cancel()

	published, err := p.drafts.PublishDue(ctx, ScanBatchSize)

	p.mu.Lock()
	p.lastScan = time.Now()
	p.lastErr = err
	p.mu.Unlock()

	if err != nil {
		health.RecordScheduledPublish(false)
		return err
	}
	if published > 0 {
		health.RecordScheduledPublish(true)
		p.log.WithField("count", published).Info("Published scheduled drafts")
	}
	return nil
}
