// Package simulation runs a prover/verifier exchange over a simulated
// network: the client commits to a sensor capture and proves its
// classification, the server verifies the serialized proof. Latency is
// injected per message so transfer cost shows up next to proving and
// verification cost in the logs.
package simulation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/svm"
)

// NetworkSimulation drives one full prove/transfer/verify round with real
// proofs.
type NetworkSimulation struct {
	model   *svm.Model
	axes    [][]int64
	latency time.Duration
	log     zerolog.Logger
}

// New builds a simulation over a capture and its public model.
func New(model *svm.Model, axes [][]int64, latency time.Duration, log zerolog.Logger) (*NetworkSimulation, error) {
	if err := validateCapture(model, axes); err != nil {
		return nil, err
	}
	return &NetworkSimulation{model: model, axes: axes, latency: latency, log: log}, nil
}

func validateCapture(model *svm.Model, axes [][]int64) error {
	if len(axes) == 0 {
		return fmt.Errorf("simulation: capture has no axes")
	}
	if model.Axes() != len(axes) {
		return fmt.Errorf("simulation: model covers %d axes, capture has %d", model.Axes(), len(axes))
	}
	return nil
}

// Run executes the exchange: parameter agreement, client-side proving,
// transfer, server-side verification, and a tamper check on the transferred
// bytes.
func (ns *NetworkSimulation) Run() error {
	ns.log.Info().
		Int("axes", len(ns.axes)).
		Int("samples", len(ns.axes[0])).
		Dur("latency", ns.latency).
		Msg("starting prover/verifier exchange")

	// Both sides derive the same parameters; nothing to trust or transfer
	// beyond the capacity.
	capacity := paddedLen(len(ns.axes[0]))
	start := time.Now()
	params, err := pedersen.Setup(capacity)
	if err != nil {
		return fmt.Errorf("simulation: setup: %w", err)
	}
	ns.log.Info().Int("capacity", capacity).Dur("took", time.Since(start)).Msg("parameters derived")

	start = time.Now()
	proof, err := svm.Prove(params, ns.model, ns.axes)
	if err != nil {
		return fmt.Errorf("simulation: proving: %w", err)
	}
	raw := proof.Bytes()
	ns.log.Info().Dur("took", time.Since(start)).Int("proof_bytes", len(raw)).Msg("client built classification proof")

	ns.log.Info().Msg("client -> server: sending proof")
	time.Sleep(ns.latency)

	start = time.Now()
	if !svm.VerifyBytes(params, ns.model, raw) {
		return fmt.Errorf("simulation: server rejected an honest proof")
	}
	ns.log.Info().Dur("took", time.Since(start)).Msg("server accepted the proof")

	positive, err := ns.model.Classify(&proof.Decision)
	if err != nil {
		return fmt.Errorf("simulation: decision decode: %w", err)
	}
	ns.log.Info().Bool("positive", positive).Msg("public classification")

	// A transfer that flips a single bit must fail verification.
	tampered := make([]byte, len(raw))
	copy(tampered, raw)
	tampered[len(tampered)/2] ^= 0x01
	ns.log.Info().Msg("client -> server: sending tampered proof")
	time.Sleep(ns.latency)
	if svm.VerifyBytes(params, ns.model, tampered) {
		return fmt.Errorf("simulation: server accepted a tampered proof")
	}
	ns.log.Info().Msg("server rejected the tampered proof")

	return nil
}

func paddedLen(n int) int {
	size := 1
	for size < n {
		size *= 2
	}
	return size
}
