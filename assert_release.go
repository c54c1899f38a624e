//go:build !vivaldi_debug

package vivaldi

func assertUnit(float64) {}
