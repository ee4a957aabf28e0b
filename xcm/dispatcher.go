// Copyright (c) 2026 The Tellus developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package xcm

import (
	"math/big"

	"github.com/paralogue/tellus/log"
	"github.com/paralogue/tellus/metrics"
	"github.com/paralogue/tellus/tellus"
)

var (
	logger = log.WithContext("pkg", "xcm")

	metricDispatches = metrics.LazyLoad(func() metrics.CountVecMeter {
		return metrics.CounterVec("xcm_dispatch_total", []string{"call", "status"})
	})
)

// Location describes the destination of a notification in the relay
// topology: one hop up to the relay, then down to the parachain.
type Location struct {
	Parents   uint8
	Parachain tellus.ParachainID
}

// Weights is the resource budget attached to a remote transaction.
type Weights struct {
	MaxWeight     uint64
	Fee           *big.Int
	OverallWeight uint64
}

// DefaultWeights returns the budget used for destinations without an
// override configured.
func DefaultWeights() Weights {
	return Weights{
		MaxWeight:     5_000_000_000,
		Fee:           big.NewInt(10_000_000_000_000_000),
		OverallWeight: 9_000_000_000,
	}
}

// Transactor carries an encoded call to a remote chain. Implementations must
// not retry or block; the ledger treats delivery as best effort.
type Transactor interface {
	TransactThroughSigned(dest Location, maxWeight uint64, call []byte, fee *big.Int, overallWeight uint64) error
}

// Dispatcher encodes ledger notifications and hands them to the transport.
// Dispatch is fire-and-forget: transport failures are logged and counted but
// never surface to the caller, since remote execution is unobservable anyway.
type Dispatcher struct {
	transactor Transactor
}

// NewDispatcher creates a new instance.
func NewDispatcher(transactor Transactor) *Dispatcher {
	return &Dispatcher{transactor: transactor}
}

// Notify encodes and sends one notification to the given parachain. A nil
// weights argument selects the defaults.
func (d *Dispatcher) Notify(
	id tellus.ParachainID,
	moduleIndex []byte,
	call Call,
	staker tellus.Address,
	remoteAccount []byte,
	amount *big.Int,
	weights *Weights,
) {
	payload, err := EncodeNotify(moduleIndex, call, staker, remoteAccount, amount)
	if err != nil {
		logger.Error("failed to encode notification",
			"parachain", id, "call", call, "err", err)
		metricDispatches().AddWithLabel(1, map[string]string{"call": call.String(), "status": "encode_failed"})
		return
	}

	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	dest := Location{Parents: 1, Parachain: id}
	if err := d.transactor.TransactThroughSigned(dest, w.MaxWeight, payload, w.Fee, w.OverallWeight); err != nil {
		logger.Warn("notification dispatch failed",
			"parachain", id, "call", call, "staker", staker, "err", err)
		metricDispatches().AddWithLabel(1, map[string]string{"call": call.String(), "status": "failed"})
		return
	}

	logger.Debug("notification dispatched",
		"parachain", id, "call", call, "staker", staker, "amount", amount)
	metricDispatches().AddWithLabel(1, map[string]string{"call": call.String(), "status": "sent"})
}
