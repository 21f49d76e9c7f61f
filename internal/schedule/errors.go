package schedule

import (
	"errors"
	"fmt"
)

var (
	ErrTrainerConflict    = errors.New("trainer already has a scheduled session in that time")
	ErrRoomConflict       = errors.New("room already booked for that time")
	ErrTrainerUnavailable = errors.New("trainer not available in that time window")
	ErrInvalidCapacity    = errors.New("capacity must be positive")
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrRoomNotFound       = errors.New("room not found")
	ErrSessionNotFound    = errors.New("session not found")

	// ErrStorageUnavailable marks infrastructure failures, as opposed to
	// feasibility rejections. The in-flight transaction is already rolled
	// back when it surfaces.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

func storageErr(err error) error {
	return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
}

// IsFeasibilityRejection reports whether err is a typed booking rejection
// the caller may resolve by resubmitting with different parameters.
func IsFeasibilityRejection(err error) bool {
	return errors.Is(err, ErrInvalidInterval) ||
		errors.Is(err, ErrTrainerConflict) ||
		errors.Is(err, ErrRoomConflict) ||
		errors.Is(err, ErrTrainerUnavailable)
}
