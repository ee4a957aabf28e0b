// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
)

// RequireError marks a failed operation precondition. Any operation that
// returns one has left the ledger state untouched.
type RequireError struct {
	message string
}

func newRequireError(message string) *RequireError {
	return &RequireError{message: message}
}

func (e *RequireError) Error() string {
	return e.message
}

// IsRequireErr reports whether err wraps a RequireError.
func IsRequireErr(err error) bool {
	if err == nil {
		return false
	}
	var re *RequireError
	return errors.As(err, &re)
}

var (
	// ErrUnauthorized is returned when the caller lacks the required role.
	ErrUnauthorized = newRequireError("unauthorized")
	// ErrNotRegistered is returned when the parachain has no registry entry.
	ErrNotRegistered = newRequireError("parachain not registered")
	// ErrInvalidState is returned when the ledger is not in a state that
	// permits the operation, e.g. governance unset or already set.
	ErrInvalidState = newRequireError("invalid state")
	// ErrInsufficientBalance is returned when the staked balance cannot
	// cover the operation.
	ErrInsufficientBalance = newRequireError("insufficient balance")
	// ErrLockPeriodActive is returned when the cooldown window has not
	// elapsed yet.
	ErrLockPeriodActive = newRequireError("lock period active")
	// ErrNothingLocked is returned when no withdrawal is pending.
	ErrNothingLocked = newRequireError("nothing locked for withdrawal")
	// ErrConfirmationMismatch is returned when the confirmed amount does not
	// exactly match the outstanding reservation.
	ErrConfirmationMismatch = newRequireError("confirmation does not match locked balance")
	// ErrTransferFailed is returned when the external funds movement was
	// rejected.
	ErrTransferFailed = newRequireError("token transfer failed")
)
