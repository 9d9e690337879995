package port_platform

import (
	"time"

	"github.com/google/uuid"
)

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewUUID() uuid.UUID { return uuid.New() }

// TimerScheduler schedules callbacks on the runtime timer wheel.
type TimerScheduler struct{}

func (TimerScheduler) Schedule(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
