package logic

import (
	"sync"

	"github.com/rs/zerolog/log"
)

type reservationState int

const (
	reservationPending reservationState = iota
	reservationCommitted
	reservationReleased
)

// Reservation is a reserved-but-not-yet-settled credit debit tied to one
// in-flight streaming call. The balance was already decremented at reserve
// time; a reservation must end up committed or released exactly once before
// the request finishes.
type Reservation struct {
	userID uint64
	amount int64

	mu    sync.Mutex
	state reservationState
}

// Resolved reports whether the reservation reached a terminal state.
func (r *Reservation) Resolved() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state != reservationPending
}

// CreditLedger tracks per-user credit balances. Reserve debits pessimistically
// with a single conditional statement, so concurrent messages cannot race a
// balance past zero.
type CreditLedger struct {
	userDAO UserStore
}

func NewCreditLedger(userDAO UserStore) *CreditLedger {
	return &CreditLedger{userDAO: userDAO}
}

// Reserve atomically checks the balance covers amount and decrements it,
// returning a handle to settle later. Fails with ErrInsufficientCredits when
// the balance does not cover amount.
func (l *CreditLedger) Reserve(userID uint64, amount int64) (*Reservation, error) {
	ok, err := l.userDAO.DebitCredits(userID, amount)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInsufficientCredits
	}
	return &Reservation{userID: userID, amount: amount}, nil
}

// Commit marks the reservation settled. The decrement already happened at
// reserve time, so there is no balance change; Release becomes a no-op.
func (l *CreditLedger) Commit(r *Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != reservationPending {
		log.Warn().Uint64("user_id", r.userID).Msg("commit on settled reservation ignored")
		return
	}
	r.state = reservationCommitted
}

// Release refunds the reserved amount exactly once. Calling it again, or
// after Commit, is a no-op.
func (l *CreditLedger) Release(r *Reservation) error {
	r.mu.Lock()
	if r.state != reservationPending {
		r.mu.Unlock()
		log.Warn().Uint64("user_id", r.userID).Msg("release on settled reservation ignored")
		return nil
	}
	r.state = reservationReleased
	r.mu.Unlock()

	if err := l.userDAO.AddCredits(r.userID, r.amount); err != nil {
		log.Error().Err(err).Uint64("user_id", r.userID).Int64("amount", r.amount).
			Msg("failed to refund released reservation")
		return err
	}
	return nil
}
