package log

// SetExit swaps the exit function for the duration of a test.
func SetExit(f func(int)) (restore func()) {
	prev := exit
	exit = f
	return func() { exit = prev }
}
