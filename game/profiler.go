package game

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrProfilerDisabled = errors.New("profiler disabled")
	ErrCaptureCooldown  = errors.New("capture on cooldown")
	ErrAlreadyProfiling = errors.New("already profiling")
)

// StallProfiler captures a CPU profile and trace when a frame stalls
type StallProfiler struct {
	mu              sync.Mutex
	wg              sync.WaitGroup
	isProfiling     bool
	lastCaptureTime time.Time
	captureCooldown time.Duration
	captureDuration time.Duration
	stallThreshold  float64
	profilesDir     string
	logger          zerolog.Logger
}

// NewStallProfiler creates a profiler. An empty cfg.Dir disables it.
func NewStallProfiler(cfg ProfilerConfig, logger zerolog.Logger) *StallProfiler {
	return &StallProfiler{
		captureCooldown: seconds(cfg.CooldownSeconds),
		captureDuration: seconds(cfg.CaptureSeconds),
		stallThreshold:  cfg.StallThreshold,
		profilesDir:     cfg.Dir,
		logger:          logger,
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Enabled reports whether captures will be written
func (p *StallProfiler) Enabled() bool {
	return p != nil && p.profilesDir != ""
}

// Observe checks a frame delta and starts a capture on a stall. It reports
// whether a capture was started.
func (p *StallProfiler) Observe(dt float64) bool {
	if !p.Enabled() || !(dt > p.stallThreshold) {
		return false
	}
	err := p.CaptureProfile("stall")
	if err != nil {
		if !errors.Is(err, ErrCaptureCooldown) && !errors.Is(err, ErrAlreadyProfiling) {
			p.logger.Warn().Err(err).Msg("Failed to start stall capture")
		}
		return false
	}
	p.logger.Info().Float64("dt", dt).Str("dir", p.profilesDir).Msg("Frame stall, capturing profile")
	return true
}

// CaptureProfile starts an asynchronous CPU profile and trace capture
func (p *StallProfiler) CaptureProfile(reason string) error {
	if !p.Enabled() {
		return ErrProfilerDisabled
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Check cooldown to avoid capturing too frequently
	if !p.lastCaptureTime.IsZero() && time.Since(p.lastCaptureTime) < p.captureCooldown {
		return fmt.Errorf("%w (last capture was %v ago)", ErrCaptureCooldown, time.Since(p.lastCaptureTime))
	}
	if p.isProfiling {
		return ErrAlreadyProfiling
	}
	if err := os.MkdirAll(p.profilesDir, 0o755); err != nil {
		return fmt.Errorf("failed to create profiles dir: %w", err)
	}

	p.isProfiling = true
	p.lastCaptureTime = time.Now()

	// Generate timestamped filename
	baseName := fmt.Sprintf("%s-%s", reason, time.Now().Format("20060102-150405.000"))

	// Capture in a goroutine to avoid blocking the game
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			p.mu.Lock()
			p.isProfiling = false
			p.mu.Unlock()
		}()

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			if err := p.captureCPUProfile(baseName); err != nil {
				p.logger.Warn().Err(err).Msg("Error capturing CPU profile")
			}
		}()
		go func() {
			defer wg.Done()
			if err := p.captureTrace(baseName); err != nil {
				p.logger.Warn().Err(err).Msg("Error capturing trace")
			}
		}()
		wg.Wait()

		p.logMemStats(baseName)
	}()

	return nil
}

// captureCPUProfile captures a CPU profile
func (p *StallProfiler) captureCPUProfile(baseName string) error {
	profilePath := filepath.Join(p.profilesDir, baseName+".cpu.prof")

	file, err := os.Create(profilePath)
	if err != nil {
		return fmt.Errorf("failed to create profile file: %w", err)
	}
	defer file.Close()

	if err := pprof.StartCPUProfile(file); err != nil {
		return fmt.Errorf("failed to start CPU profile: %w", err)
	}
	time.Sleep(p.captureDuration)
	pprof.StopCPUProfile()

	p.logger.Info().Str("path", profilePath).Msg("CPU profile saved")
	return nil
}

// captureTrace captures an execution trace
func (p *StallProfiler) captureTrace(baseName string) error {
	tracePath := filepath.Join(p.profilesDir, baseName+".trace")

	file, err := os.Create(tracePath)
	if err != nil {
		return fmt.Errorf("failed to create trace file: %w", err)
	}
	defer file.Close()

	if err := trace.Start(file); err != nil {
		return fmt.Errorf("failed to start trace: %w", err)
	}
	time.Sleep(p.captureDuration)
	trace.Stop()

	p.logger.Info().Str("path", tracePath).Msg("Trace saved")
	return nil
}

func (p *StallProfiler) logMemStats(baseName string) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	p.logger.Debug().
		Str("capture", baseName).
		Uint64("allocKB", m.Alloc/1024).
		Uint64("sysKB", m.Sys/1024).
		Uint32("numGC", m.NumGC).
		Uint64("heapObjects", m.HeapObjects).
		Msg("Memory stats at capture time")
}

// IsProfiling returns whether a profile capture is currently in progress
func (p *StallProfiler) IsProfiling() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isProfiling
}

// Wait blocks until any in-flight capture has finished
func (p *StallProfiler) Wait() {
	p.wg.Wait()
}
