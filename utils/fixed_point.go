package utils

// ScalingFactor converts float sensor readings to the signed fixed-point
// integers the proofs commit to. 16 fractional bits keeps squared deviations
// comfortably inside int64 for realistic accelerometer and gyroscope ranges.
const ScalingFactor = 1 << 16

func FloatToFixed(f float64) int64 {
	return int64(f * float64(ScalingFactor))
}

func FixedToFloat(i int64) float64 {
	return float64(i) / float64(ScalingFactor)
}
