package types

// Settings mirrors cef_settings_t. The zero value is not usable directly,
// start from NewSettings.
type Settings struct {
	NoSandbox                        bool        `yaml:"no_sandbox"`
	BrowserSubprocessPath            string      `yaml:"browser_subprocess_path"`
	FrameworkDirPath                 string      `yaml:"framework_dir_path"`
	MainBundlePath                   string      `yaml:"main_bundle_path"`
	MultiThreadedMessageLoop         bool        `yaml:"multi_threaded_message_loop"`
	ExternalMessagePump              bool        `yaml:"external_message_pump"`
	WindowlessRenderingEnabled       bool        `yaml:"windowless_rendering_enabled"`
	CommandLineArgsDisabled          bool        `yaml:"command_line_args_disabled"`
	CachePath                        string      `yaml:"cache_path"`
	RootCachePath                    string      `yaml:"root_cache_path"`
	PersistSessionCookies            bool        `yaml:"persist_session_cookies"`
	UserAgent                        string      `yaml:"user_agent"`
	UserAgentProduct                 string      `yaml:"user_agent_product"`
	Locale                           string      `yaml:"locale"`
	LogFile                          string      `yaml:"log_file"`
	LogSeverity                      LogSeverity `yaml:"log_severity"`
	LogItems                         int32       `yaml:"log_items"`
	JavascriptFlags                  string      `yaml:"javascript_flags"`
	ResourcesDirPath                 string      `yaml:"resources_dir_path"`
	LocalesDirPath                   string      `yaml:"locales_dir_path"`
	RemoteDebuggingPort              int32       `yaml:"remote_debugging_port"`
	UncaughtExceptionStackSize       int32       `yaml:"uncaught_exception_stack_size"`
	BackgroundColor                  uint32      `yaml:"background_color"`
	AcceptLanguageList               string      `yaml:"accept_language_list"`
	CookieableSchemesList            string      `yaml:"cookieable_schemes_list"`
	CookieableSchemesExcludeDefaults bool        `yaml:"cookieable_schemes_exclude_defaults"`
	ChromePolicyID                   string      `yaml:"chrome_policy_id"`
	ChromeAppIconID                  int32       `yaml:"chrome_app_icon_id"`
	DisableSignalHandlers            bool        `yaml:"disable_signal_handlers"`
}

// NewSettings returns the settings the binding starts from: the sandbox is
// off and remote debugging listens on port 5566.
func NewSettings() Settings {
	return Settings{
		NoSandbox:           true,
		RemoteDebuggingPort: 5566,
	}
}

// BrowserSettings mirrors cef_browser_settings_t.
type BrowserSettings struct {
	WindowlessFrameRate         int32  `yaml:"windowless_frame_rate"`
	StandardFontFamily          string `yaml:"standard_font_family"`
	FixedFontFamily             string `yaml:"fixed_font_family"`
	SerifFontFamily             string `yaml:"serif_font_family"`
	SansSerifFontFamily         string `yaml:"sans_serif_font_family"`
	CursiveFontFamily           string `yaml:"cursive_font_family"`
	FantasyFontFamily           string `yaml:"fantasy_font_family"`
	DefaultFontSize             int32  `yaml:"default_font_size"`
	DefaultFixedFontSize        int32  `yaml:"default_fixed_font_size"`
	MinimumFontSize             int32  `yaml:"minimum_font_size"`
	MinimumLogicalFontSize      int32  `yaml:"minimum_logical_font_size"`
	DefaultEncoding             string `yaml:"default_encoding"`
	RemoteFonts                 State  `yaml:"remote_fonts"`
	Javascript                  State  `yaml:"javascript"`
	JavascriptCloseWindows      State  `yaml:"javascript_close_windows"`
	JavascriptAccessClipboard   State  `yaml:"javascript_access_clipboard"`
	JavascriptDomPaste          State  `yaml:"javascript_dom_paste"`
	ImageLoading                State  `yaml:"image_loading"`
	ImageShrinkStandaloneToFit  State  `yaml:"image_shrink_standalone_to_fit"`
	TextAreaResize              State  `yaml:"text_area_resize"`
	TabToLinks                  State  `yaml:"tab_to_links"`
	LocalStorage                State  `yaml:"local_storage"`
	Databases                   State  `yaml:"databases"`
	WebGL                       State  `yaml:"webgl"`
	BackgroundColor             uint32 `yaml:"background_color"`
	ChromeZoomBubble            State  `yaml:"chrome_zoom_bubble"`
	ChromeStatusBubble          State  `yaml:"chrome_status_bubble"`
}

// WindowInfo mirrors the platform independent part of cef_window_info_t.
type WindowInfo struct {
	WindowName                 string `yaml:"window_name"`
	Bounds                     Rect   `yaml:"bounds"`
	WindowlessRenderingEnabled bool   `yaml:"windowless_rendering_enabled"`
	SharedTextureEnabled       bool   `yaml:"shared_texture_enabled"`
	ExternalBeginFrameEnabled  bool   `yaml:"external_begin_frame_enabled"`
	// ParentWindow is the native parent handle; zero creates a top-level window.
	ParentWindow uintptr `yaml:"-"`
}

// BoxLayoutSettings mirrors cef_box_layout_settings_t.
type BoxLayoutSettings struct {
	Horizontal                    bool
	InsideBorderHorizontalSpacing int32
	InsideBorderVerticalSpacing   int32
	InsideBorderInsets            Insets
	BetweenChildSpacing           int32
	MainAxisAlignment             AxisAlignment
	CrossAxisAlignment            AxisAlignment
	MinimumCrossAxisSize          int32
	DefaultFlex                   int32
}
