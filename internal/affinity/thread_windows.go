package affinity

import "golang.org/x/sys/windows"

func osThreadID() (int, bool) {
	return int(windows.GetCurrentThreadId()), true
}
