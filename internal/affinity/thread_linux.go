package affinity

import "golang.org/x/sys/unix"

func osThreadID() (int, bool) {
	return unix.Gettid(), true
}
