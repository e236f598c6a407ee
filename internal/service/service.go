package service

import (
	"errors"
	"sync"

	"society-app/internal/store"

	"go.uber.org/zap"
)

// Sentinel errors returned by the service. Handlers branch on these with
// errors.Is to pick a response status; validation failures wrap ErrInvalid.
var (
	ErrInvalid           = errors.New("invalid input")
	ErrNotFound          = errors.New("not found")
	ErrBadCredentials    = errors.New("wrong login or password")
	ErrLoginTaken        = errors.New("login already in use")
	ErrPhoneTaken        = errors.New("phone already in use")
	ErrScheduleConflict  = errors.New("venue is already booked for this time window")
	ErrAlreadyEnrolled   = errors.New("an active enrollment already exists for this match")
	ErrMatchFull         = errors.New("match has no seats left")
	ErrInvalidTransition = errors.New("enrollment status does not allow this transition")
	ErrAlreadyFollowing  = errors.New("already following this user")
	ErrAlreadyLiked      = errors.New("post already liked")
)

// Service implements the application core on top of a record store.
//
// Every operation is a full load, scan/mutate, full save of one or more
// collections, so a single mutex serializes all of them. Transitions that
// touch two collections (approval writes the enrollment status and the
// seat counter, match deletion cascades into enrollments and
// notifications) run inside one critical section and are applied
// all-or-nothing, with a compensating write when the second store update
// fails.
type Service struct {
	mu    sync.Mutex
	store store.Store
	log   *zap.Logger
}

func New(st store.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{store: st, log: log}
}
