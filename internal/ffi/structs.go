package ffi

import "github.com/gocef/cef/types"

// EncodeSettings lays out cef_settings_t.
func EncodeSettings(a *Arena, s types.Settings) uintptr {
	l := NewLayout(true).
		Bool(s.NoSandbox).
		String(a, s.BrowserSubprocessPath).
		String(a, s.FrameworkDirPath).
		String(a, s.MainBundlePath).
		Bool(s.MultiThreadedMessageLoop).
		Bool(s.ExternalMessagePump).
		Bool(s.WindowlessRenderingEnabled).
		Bool(s.CommandLineArgsDisabled).
		String(a, s.CachePath).
		String(a, s.RootCachePath).
		Bool(s.PersistSessionCookies).
		String(a, s.UserAgent).
		String(a, s.UserAgentProduct).
		String(a, s.Locale).
		String(a, s.LogFile).
		Int32(int32(s.LogSeverity)).
		Int32(s.LogItems).
		String(a, s.JavascriptFlags).
		String(a, s.ResourcesDirPath).
		String(a, s.LocalesDirPath).
		Int32(s.RemoteDebuggingPort).
		Int32(s.UncaughtExceptionStackSize).
		Uint32(s.BackgroundColor).
		String(a, s.AcceptLanguageList).
		String(a, s.CookieableSchemesList).
		Bool(s.CookieableSchemesExcludeDefaults).
		String(a, s.ChromePolicyID).
		Int32(s.ChromeAppIconID)
	if hasSignalHandlersField {
		l.Bool(s.DisableSignalHandlers)
	}
	return a.Struct(l)
}

// EncodeBrowserSettings lays out cef_browser_settings_t.
func EncodeBrowserSettings(a *Arena, s types.BrowserSettings) uintptr {
	l := NewLayout(true).
		Int32(s.WindowlessFrameRate).
		String(a, s.StandardFontFamily).
		String(a, s.FixedFontFamily).
		String(a, s.SerifFontFamily).
		String(a, s.SansSerifFontFamily).
		String(a, s.CursiveFontFamily).
		String(a, s.FantasyFontFamily).
		Int32(s.DefaultFontSize).
		Int32(s.DefaultFixedFontSize).
		Int32(s.MinimumFontSize).
		Int32(s.MinimumLogicalFontSize).
		String(a, s.DefaultEncoding).
		Int32(int32(s.RemoteFonts)).
		Int32(int32(s.Javascript)).
		Int32(int32(s.JavascriptCloseWindows)).
		Int32(int32(s.JavascriptAccessClipboard)).
		Int32(int32(s.JavascriptDomPaste)).
		Int32(int32(s.ImageLoading)).
		Int32(int32(s.ImageShrinkStandaloneToFit)).
		Int32(int32(s.TextAreaResize)).
		Int32(int32(s.TabToLinks)).
		Int32(int32(s.LocalStorage)).
		Int32(int32(s.Databases)).
		Int32(int32(s.WebGL)).
		Uint32(s.BackgroundColor).
		Int32(int32(s.ChromeZoomBubble)).
		Int32(int32(s.ChromeStatusBubble))
	return a.Struct(l)
}

// EncodeWindowInfo lays out the Linux cef_window_info_t.
func EncodeWindowInfo(a *Arena, w types.WindowInfo) uintptr {
	l := NewLayout(false).
		String(a, w.WindowName).
		Rect(w.Bounds).
		Word(w.ParentWindow).
		Bool(w.WindowlessRenderingEnabled).
		Bool(w.SharedTextureEnabled).
		Bool(w.ExternalBeginFrameEnabled).
		Word(0).
		Int32(0)
	return a.Struct(l)
}

// EncodeBoxLayoutSettings lays out cef_box_layout_settings_t.
func EncodeBoxLayoutSettings(a *Arena, s types.BoxLayoutSettings) uintptr {
	l := NewLayout(false).
		Bool(s.Horizontal).
		Int32(s.InsideBorderHorizontalSpacing).
		Int32(s.InsideBorderVerticalSpacing).
		Insets(s.InsideBorderInsets).
		Int32(s.BetweenChildSpacing).
		Int32(int32(s.MainAxisAlignment)).
		Int32(int32(s.CrossAxisAlignment)).
		Int32(s.MinimumCrossAxisSize).
		Int32(s.DefaultFlex)
	return a.Struct(l)
}

// EncodeRect stores a cef_rect_t for pointer arguments.
func EncodeRect(a *Arena, r types.Rect) uintptr {
	return a.Struct(NewLayout(false).Rect(r))
}

// EncodePoint stores a cef_point_t.
func EncodePoint(a *Arena, p types.Point) uintptr {
	return a.Struct(NewLayout(false).Int32(p.X).Int32(p.Y))
}

// EncodeSize stores a cef_size_t.
func EncodeSize(a *Arena, s types.Size) uintptr {
	return a.Struct(NewLayout(false).Int32(s.Width).Int32(s.Height))
}
