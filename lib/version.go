package lib

// Package lib holds project identity shared by the demo and simulation
// drivers.

// Name is the canonical project name.
const Name = "zkSVM"

// Version is the current semantic version of the library.
const Version = "0.1.0"
