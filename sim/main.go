package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/iquerejeta/zkSVM/simulation"
	"github.com/iquerejeta/zkSVM/svm"
	"github.com/iquerejeta/zkSVM/utils"
)

func main() {
	latency := flag.Duration("latency", 100*time.Millisecond, "Simulated network latency per message")
	traceFile := flag.String("trace", "", "CSV sensor capture (one column per axis); built-in fixture when empty")
	modelFile := flag.String("model", "", "Model parameter file; built-in model when empty")
	debug := flag.Bool("debug", false, "Log rejected verification stages")
	flag.Parse()

	level := zerolog.InfoLevel
	if *debug {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	axes := fixtureAxes()
	model := fixtureModel()

	if *traceFile != "" {
		loaded, err := utils.LoadTrace(*traceFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load trace")
		}
		axes = loaded
	}
	if *modelFile != "" {
		weights, threshold, err := utils.LoadModelParameters(*modelFile)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load model")
		}
		model = &svm.Model{Weights: weights, Threshold: threshold}
	}

	sim, err := simulation.New(model, axes, *latency, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up simulation")
	}
	if err := sim.Run(); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

// fixtureAxes is a six-axis capture (three accelerometer, three gyroscope
// channels) with integer statistics, so every axis has an exact committed
// standard deviation.
func fixtureAxes() [][]int64 {
	return [][]int64{
		{1, 3, 1, 3, 1, 3, 1, 3},
		{2, 6, 2, 6, 2, 6, 2, 6},
		{0, 0, 0, 0, 0, 0, 0, 0},
		{5, 5, 5, 5, 5, 5, 5, 5},
		{1, 7, 1, 7, 1, 7, 1, 7},
		{3, 9, 3, 9, 3, 9, 3, 9},
	}
}

func fixtureModel() *svm.Model {
	weights := make([]int64, 6*svm.FeaturesPerAxis)
	for i := range weights {
		weights[i] = 1
	}
	return &svm.Model{Weights: weights, Threshold: 50}
}
