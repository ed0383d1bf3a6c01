//go:build !linux && !windows

package affinity

// There is no portable thread id here; callers fall back to the engine.
func osThreadID() (int, bool) {
	return 0, false
}
