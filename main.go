package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iquerejeta/zkSVM/lib"
	"github.com/iquerejeta/zkSVM/pedersen"
	"github.com/iquerejeta/zkSVM/svm"
	"github.com/iquerejeta/zkSVM/utils"
)

// End-to-end demo: derive parameters, prove the classification of a six-axis
// sensor capture, serialize the proof, verify it, and show that a tampered
// proof or a tampered model is rejected.
func main() {
	debug := flag.Bool("debug", false, "Log rejected verification stages")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()
	log.Info().Str("version", lib.Version).Msgf("%s classification proof demo", lib.Name)

	axes := [][]int64{
		{1, 3, 1, 3, 1, 3, 1, 3},
		{2, 6, 2, 6, 2, 6, 2, 6},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 5, 5, 5, 5, 5, 5, 5},
		{1, 7, 1, 7, 1, 7, 1, 7},
		{3, 9, 3, 9, 3, 9, 3, 9},
	}
	weights := make([]int64, 6*svm.FeaturesPerAxis)
	for i := range weights {
		weights[i] = 1
	}
	model := &svm.Model{Weights: weights, Threshold: 50}

	start := time.Now()
	params, err := pedersen.Setup(len(axes[0]))
	if err != nil {
		log.Fatal().Err(err).Msg("parameter setup failed")
	}
	log.Info().Dur("took", time.Since(start)).Msg("parameters derived")

	start = time.Now()
	proof, err := svm.Prove(params, model, axes)
	if err != nil {
		log.Fatal().Err(err).Msg("proving failed")
	}
	raw := proof.Bytes()
	log.Info().Dur("took", time.Since(start)).Int("proof_bytes", len(raw)).Msg("classification proof built")

	start = time.Now()
	if !svm.VerifyBytes(params, model, raw) {
		log.Fatal().Msg("honest proof rejected")
	}
	log.Info().Dur("took", time.Since(start)).Msg("proof verified")

	score, err := utils.DecodeSigned(&proof.Decision)
	if err != nil {
		log.Fatal().Err(err).Msg("decision decode failed")
	}
	positive, err := model.Classify(&proof.Decision)
	if err != nil {
		log.Fatal().Err(err).Msg("decision decode failed")
	}
	log.Info().Int64("score", score).Bool("positive", positive).Msg("public classification")

	// Flip one bit in the serialized proof.
	tampered := make([]byte, len(raw))
	copy(tampered, raw)
	tampered[len(tampered)/3] ^= 0x01
	if svm.VerifyBytes(params, model, tampered) {
		log.Fatal().Msg("tampered proof accepted")
	}
	log.Info().Msg("tampered proof rejected")

	// Verify against a model the proof was not built for.
	badModel := &svm.Model{Weights: weights, Threshold: model.Threshold + 1}
	if svm.VerifyBytes(params, badModel, raw) {
		log.Fatal().Msg("proof accepted under a different model")
	}
	log.Info().Msg("proof rejected under a different model")
}
