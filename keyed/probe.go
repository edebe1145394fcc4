package keyed

import (
	"errors"
	"fmt"
	"math"
	"os"
	"sync"

	"go.uber.org/zap"

	"github.com/aglyzov/multikey/internal/log"
)

// EnvBackend names the environment variable that overrides the probe.
// Accepted values are "native", "tagged" and "auto".
const EnvBackend = "MULTIKEY_BACKEND"

// ErrProbe is wrapped by every capability probe failure.
var ErrProbe = errors.New("keyed: capability probe failed")

var (
	selectOnce sync.Once
	selected   Backend
)

// Selected returns the backend used by New. It is decided once per
// process: EnvBackend wins when set, otherwise Native is used if it passes
// Probe and Tagged if it does not.
func Selected() Backend {
	selectOnce.Do(func() {
		selected = selectBackend(os.Getenv(EnvBackend), Probe)
	})
	return selected
}

func selectBackend(env string, probe func() error) Backend {
	if env != "" {
		b, err := ParseBackend(env)
		if err != nil {
			log.Report(fmt.Errorf("%s: %w", EnvBackend, err))
		} else if b != Auto {
			log.Info("backend forced", zap.Stringer("backend", b), zap.String("env", EnvBackend))
			return b
		}
	}
	if err := probe(); err != nil {
		log.Report(err, zap.Stringer("fallback", Tagged))
		return Tagged
	}
	log.Debug("backend selected", zap.Stringer("backend", Native))
	return Native
}

// Probe checks that the Native backend honours SameValueZero: the untyped
// nil and a typed nil are distinct, -0 equals 0, and NaNs of different bit
// patterns are one key.
func Probe() error {
	return probe(newNative[int]())
}

func probe(t Table[int]) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProbe, r)
		}
	}()

	var (
		typedNil = (*struct{})(nil)
		negZero  = math.Copysign(0, -1)
		nan1     = math.NaN()
		nan2     = math.Float64frombits(0x7ff8000000000001)
	)

	for i, key := range []any{nil, typedNil, negZero, 0.0, nan1, nan2} {
		t.Set(key, i+1)
	}
	if n := t.Len(); n != 4 {
		return fmt.Errorf("%w: size is %d, expected 4", ErrProbe, n)
	}

	for _, c := range []struct {
		key any
		val int
	}{
		{nil, 1},
		{typedNil, 2},
		{negZero, 4},
		{0.0, 4},
		{nan1, 6},
		{nan2, 6},
	} {
		if val, ok := t.Get(c.key); !ok || val != c.val {
			return fmt.Errorf("%w: get(%v) is (%v, %v), expected %v", ErrProbe, c.key, val, ok, c.val)
		}
	}

	var visited int
	if !t.ForEach(func(any, int) bool { visited++; return true }) || visited != 4 {
		return fmt.Errorf("%w: iteration visited %d entries, expected 4", ErrProbe, visited)
	}

	if !t.Delete(nan1) || t.Has(nan2) || t.Len() != 3 {
		return fmt.Errorf("%w: NaN keys are not deleted as one", ErrProbe)
	}
	t.Clear()
	if t.Len() != 0 || t.Has(nil) {
		return fmt.Errorf("%w: clear left entries behind", ErrProbe)
	}
	return nil
}
