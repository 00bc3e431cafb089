package logger

import (
	"strconv"
	"strings"
	"sync"
)

// ratioSampler admits numerator out of every denominator calls.
type ratioSampler struct {
	mu      sync.Mutex
	num     int
	den     int
	counter int
}

func newRatioSampler(numerator, denominator int) *ratioSampler {
	s := &ratioSampler{}
	s.Set(numerator, denominator)
	return s
}

// Set replaces the sampling ratio; zero/zero disables sampling entirely.
func (s *ratioSampler) Set(numerator, denominator int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if numerator < 0 || denominator <= 0 {
		numerator, denominator = 0, 1
	}
	if numerator > denominator {
		numerator = denominator
	}
	s.num = numerator
	s.den = denominator
	s.counter = 0
}

// Allow reports whether the current call falls inside the sampled window.
func (s *ratioSampler) Allow() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.num <= 0 {
		return false
	}
	if s.num >= s.den {
		return true
	}
	s.counter++
	if s.counter > s.den {
		s.counter = 1
	}
	return s.counter <= s.num
}

// parseRatioSpec parses strings like "1/50" or a bare number meaning 1/n.
func parseRatioSpec(spec string) (int, int) {
	spec = strings.TrimSpace(spec)
	if spec == "" || spec == "off" || spec == "0" {
		return 0, 0
	}
	if idx := strings.IndexByte(spec, '/'); idx >= 0 {
		num, err1 := strconv.Atoi(strings.TrimSpace(spec[:idx]))
		den, err2 := strconv.Atoi(strings.TrimSpace(spec[idx+1:]))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return num, den
	}
	den, err := strconv.Atoi(spec)
	if err != nil {
		return 0, 0
	}
	return 1, den
}
