package types

import "fmt"

// AffinityTag names the thread an operation or callback must run on.
type AffinityTag uint8

const (
	// AnyThread marks operations the engine accepts from every thread.
	AnyThread AffinityTag = iota
	// UIThread is the main thread of the browser process.
	UIThread
	// RendererThread is the main thread of a renderer process.
	RendererThread
	// IOThread is the browser process IPC and network thread.
	IOThread
	// MainThread is the host thread that started the engine. Initialize
	// and Shutdown run there, whichever thread the message loop uses.
	MainThread
)

func (a AffinityTag) String() string {
	switch a {
	case AnyThread:
		return "any"
	case UIThread:
		return "ui"
	case RendererThread:
		return "renderer"
	case IOThread:
		return "io"
	case MainThread:
		return "main"
	default:
		return fmt.Sprintf("affinity(%d)", uint8(a))
	}
}

// ThreadID mirrors cef_thread_id_t.
type ThreadID int32

const (
	TIDUI                 ThreadID = 0
	TIDFileBackground     ThreadID = 1
	TIDFileUserVisible    ThreadID = 2
	TIDFileUserBlocking   ThreadID = 3
	TIDProcessLauncher    ThreadID = 4
	TIDIO                 ThreadID = 5
	TIDRenderer           ThreadID = 6
	invalidThreadID       ThreadID = -1
	threadIDMax                    = TIDRenderer
)

// ThreadID returns the engine thread backing the tag. AnyThread has none.
func (a AffinityTag) ThreadID() (ThreadID, bool) {
	switch a {
	case UIThread:
		return TIDUI, true
	case IOThread:
		return TIDIO, true
	case RendererThread:
		return TIDRenderer, true
	default:
		return invalidThreadID, false
	}
}

// Valid reports whether t is a thread id the engine knows.
func (t ThreadID) Valid() bool {
	return t >= TIDUI && t <= threadIDMax
}

// LifecycleState is the state of the process-global engine lifecycle.
type LifecycleState uint8

const (
	Uninitialized LifecycleState = iota
	Initializing
	Running
	ShuttingDown
	Terminated
)

func (s LifecycleState) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Running:
		return "running"
	case ShuttingDown:
		return "shutting down"
	case Terminated:
		return "terminated"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// ProcessID mirrors cef_process_id_t.
type ProcessID int32

const (
	PIDBrowser  ProcessID = 0
	PIDRenderer ProcessID = 1
)

// State mirrors cef_state_t, used by the tri-state browser settings.
type State int32

const (
	StateDefault  State = 0
	StateEnabled  State = 1
	StateDisabled State = 2
)

// LogSeverity mirrors cef_log_severity_t.
type LogSeverity int32

const (
	LogSeverityDefault LogSeverity = 0
	LogSeverityVerbose LogSeverity = 1
	LogSeverityInfo    LogSeverity = 2
	LogSeverityWarning LogSeverity = 3
	LogSeverityError   LogSeverity = 4
	LogSeverityFatal   LogSeverity = 5
	LogSeverityDisable LogSeverity = 99
)

// AxisAlignment mirrors cef_axis_alignment_t.
type AxisAlignment int32

const (
	AxisAlignmentStart AxisAlignment = iota
	AxisAlignmentCenter
	AxisAlignmentEnd
	AxisAlignmentStretch
)

// Rect is a rectangle in device independent pixels.
type Rect struct {
	X      int32 `yaml:"x"`
	Y      int32 `yaml:"y"`
	Width  int32 `yaml:"width"`
	Height int32 `yaml:"height"`
}

// Point is a position in device independent pixels.
type Point struct {
	X int32
	Y int32
}

// Size is a width and height in device independent pixels.
type Size struct {
	Width  int32
	Height int32
}

// Insets describes the border widths of a layout.
type Insets struct {
	Top    int32
	Left   int32
	Bottom int32
	Right  int32
}

// ErrorCode mirrors cef_errorcode_t for load failures.
type ErrorCode int32

// TransitionType mirrors cef_transition_type_t.
type TransitionType uint32

// ReferrerPolicy mirrors cef_referrer_policy_t.
type ReferrerPolicy int32

const (
	// ReferrerPolicyDefault drops the referrer going from https to http.
	ReferrerPolicyDefault    ReferrerPolicy = 0
	ReferrerPolicyNeverClear ReferrerPolicy = 3
	ReferrerPolicyOrigin     ReferrerPolicy = 4
	ReferrerPolicyNoReferrer ReferrerPolicy = 7
)

// RequestFlags mirrors cef_urlrequest_flags_t, a bit set.
type RequestFlags int32

const (
	RequestSkipCache              RequestFlags = 1 << 0
	RequestOnlyFromCache          RequestFlags = 1 << 1
	RequestDisableCache           RequestFlags = 1 << 2
	RequestAllowStoredCredentials RequestFlags = 1 << 3
	RequestStopOnRedirect         RequestFlags = 1 << 7
)

// V8PropertyAttribute mirrors cef_v8_propertyattribute_t, a bit set.
type V8PropertyAttribute uint32

const (
	V8PropertyNone       V8PropertyAttribute = 0
	V8PropertyReadOnly   V8PropertyAttribute = 1 << 0
	V8PropertyDontEnum   V8PropertyAttribute = 1 << 1
	V8PropertyDontDelete V8PropertyAttribute = 1 << 2
)
