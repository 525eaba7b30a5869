package services

import (
	"context"
	"log"
	"sync"
	"time"
)

// CronService periodically removes expired phone verification codes.
type CronService struct {
	otpService *OTPService
	interval   time.Duration

	ticker   *time.Ticker
	stopChan chan struct{}
	stopOnce sync.Once
}

func NewCronService(otpService *OTPService, interval time.Duration) *CronService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CronService{
		otpService: otpService,
		interval:   interval,
		stopChan:   make(chan struct{}),
	}
}

func (s *CronService) Start() {
	s.ticker = time.NewTicker(s.interval)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.RunOnce(context.Background())
			case <-s.stopChan:
				return
			}
		}
	}()

	log.Printf("Cron service started - expired verification cleanup every %s", s.interval)
}

func (s *CronService) Stop() {
	s.stopOnce.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.stopChan)
		log.Println("Cron service stopped")
	})
}

// RunOnce performs a single cleanup pass.
func (s *CronService) RunOnce(ctx context.Context) {
	if err := s.otpService.CleanupExpired(ctx); err != nil {
		log.Printf("Failed to clean up phone verifications: %v", err)
	}
}
