package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/vfg2006/ads-dashboard-api/infrastructure/cache"
	"github.com/vfg2006/ads-dashboard-api/internal/config"
)

// ExpiredPurger é o cache limpo pelo agendador
type ExpiredPurger interface {
	PurgeExpired() int
	Stats() cache.Stats
}

// CacheJanitorConfig representa a configuração da limpeza periódica do cache
type CacheJanitorConfig struct {
	IntervalSeconds int
	Enabled         bool
}

// CacheJanitorService remove periodicamente as respostas vencidas do cache.
// O Get já descarta entradas vencidas; a varredura só libera memória de chaves que não voltam a ser lidas.
type CacheJanitorService struct {
	scheduler *gocron.Scheduler
	config    CacheJanitorConfig
	cache     ExpiredPurger

	sweepRunning         bool
	sweepMutex           sync.Mutex
	lastSweepStartedAt   time.Time
	lastSweepCompletedAt time.Time
	lastSweepRemoved     int
	totalRemoved         int
}

func NewCacheJanitorService(responseCache ExpiredPurger, appConfig *config.Config) *CacheJanitorService {
	janitorConfig := CacheJanitorConfig{
		IntervalSeconds: appConfig.CacheJanitor.IntervalSeconds,
		Enabled:         appConfig.CacheJanitor.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"interval_seconds": janitorConfig.IntervalSeconds,
		"enabled":          janitorConfig.Enabled,
	}).Info("Configuração da limpeza do cache carregada")

	return &CacheJanitorService{
		scheduler: gocron.NewScheduler(time.UTC),
		config:    janitorConfig,
		cache:     responseCache,
	}
}

// Start agenda a varredura; o agendador para quando ctx é cancelado
func (s *CacheJanitorService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza periódica do cache desabilitada por configuração")
		return nil
	}

	if s.config.IntervalSeconds <= 0 {
		return fmt.Errorf("intervalo de limpeza do cache inválido: %d", s.config.IntervalSeconds)
	}

	_, err := s.scheduler.Every(s.config.IntervalSeconds).Seconds().Do(func() {
		s.sweep()
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza do cache: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza do cache")
		s.scheduler.Stop()
	}()

	return nil
}

func (s *CacheJanitorService) sweep() {
	s.sweepMutex.Lock()
	if s.sweepRunning {
		s.sweepMutex.Unlock()
		return
	}
	s.sweepRunning = true
	s.lastSweepStartedAt = time.Now()
	s.sweepMutex.Unlock()

	removed := s.cache.PurgeExpired()

	s.sweepMutex.Lock()
	s.sweepRunning = false
	s.lastSweepCompletedAt = time.Now()
	s.lastSweepRemoved = removed
	s.totalRemoved += removed
	s.sweepMutex.Unlock()

	if removed > 0 {
		logrus.WithFields(logrus.Fields{
			"removed": removed,
			"entries": s.cache.Stats().Entries,
		}).Debug("Entradas vencidas removidas do cache")
	}
}

// TriggerManualSync executa uma varredura fora do agendamento
func (s *CacheJanitorService) TriggerManualSync() {
	s.sweepMutex.Lock()
	running := s.sweepRunning
	s.sweepMutex.Unlock()

	if running {
		logrus.Info("Limpeza do cache já em andamento, ignorando solicitação manual")
		return
	}

	logrus.Info("Iniciando limpeza manual do cache")
	go s.sweep()
}

// GetStatus retorna o estado do agendador e as estatísticas do cache
func (s *CacheJanitorService) GetStatus() map[string]any {
	s.sweepMutex.Lock()
	defer s.sweepMutex.Unlock()

	return map[string]any{
		"sweep_enabled":           s.config.Enabled,
		"sweep_interval_seconds":  s.config.IntervalSeconds,
		"sweep_running":           s.sweepRunning,
		"last_sweep_started_at":   s.lastSweepStartedAt,
		"last_sweep_completed_at": s.lastSweepCompletedAt,
		"last_sweep_removed":      s.lastSweepRemoved,
		"total_removed":           s.totalRemoved,
		"cache":                   s.cache.Stats(),
	}
}
