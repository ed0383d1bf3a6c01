package descriptor

import "github.com/gocef/cef/types"

// ABIVersion is the engine API version the catalog slot layouts follow.
const ABIVersion = 126

// Family names used by the adapters.
const (
	BaseRefCounted      = "cef_base_ref_counted_t"
	App                 = "cef_app_t"
	BrowserProcess      = "cef_browser_process_handler_t"
	RenderProcess       = "cef_render_process_handler_t"
	Client              = "cef_client_t"
	LifeSpanHandler     = "cef_life_span_handler_t"
	LoadHandler         = "cef_load_handler_t"
	DisplayHandler      = "cef_display_handler_t"
	Browser             = "cef_browser_t"
	BrowserHost         = "cef_browser_host_t"
	Frame               = "cef_frame_t"
	CommandLine         = "cef_command_line_t"
	Task                = "cef_task_t"
	ProcessMessage      = "cef_process_message_t"
	ListValue           = "cef_list_value_t"
	BinaryValue         = "cef_binary_value_t"
	Request             = "cef_request_t"
	Response            = "cef_response_t"
	View                = "cef_view_t"
	ViewDelegate        = "cef_view_delegate_t"
	Panel               = "cef_panel_t"
	PanelDelegate       = "cef_panel_delegate_t"
	Window              = "cef_window_t"
	WindowDelegate      = "cef_window_delegate_t"
	BrowserView         = "cef_browser_view_t"
	BrowserViewDelegate = "cef_browser_view_delegate_t"
	Layout              = "cef_layout_t"
	BoxLayout           = "cef_box_layout_t"
	FillLayout          = "cef_fill_layout_t"
	Display             = "cef_display_t"
	V8Context           = "cef_v8context_t"
	V8Value             = "cef_v8value_t"
	V8Handler           = "cef_v8handler_t"
	V8Exception         = "cef_v8exception_t"
)

func def(name string, slots []Slot, opts ...Option) Definition {
	return Definition{Name: name, Version: ABIVersion, Slots: slots, Options: opts}
}

var (
	ui       = Affine(types.UIThread)
	renderer = Affine(types.RendererThread)
	shared   = ThreadSafe()
)

// Catalog returns every family the binding knows, parents before children.
// Slots follow the member order of the engine headers; members the binding
// never calls still occupy their word so later offsets stay right.
func Catalog() []Definition {
	const (
		v   = Void
		i   = Int
		b   = Bool
		i64 = Int64
		sz  = Size
		p   = Pointer
		s   = String
		us  = UserfreeString
		t   = Table
		st  = Struct
		fp  = Double
	)
	m := Method

	return []Definition{
		def(BaseRefCounted, nil, shared),

		def(App, []Slot{
			m("on_before_command_line_processing", v, s, t),
			m("on_register_custom_schemes", v, p),
			m("get_resource_bundle_handler", t),
			m("get_browser_process_handler", t),
			m("get_render_process_handler", t),
		}, shared),

		def(BrowserProcess, []Slot{
			m("on_register_custom_preferences", v, i, p),
			m("on_context_initialized", v),
			m("on_before_child_process_launch", v, t),
			m("on_already_running_app_relaunch", b, t, s),
			m("on_schedule_message_pump_work", v, i64),
			m("get_default_client", t),
			m("get_default_request_context_handler", t),
		}, ui),

		def(RenderProcess, []Slot{
			m("on_web_kit_initialized", v),
			m("on_browser_created", v, t, t),
			m("on_browser_destroyed", v, t),
			m("get_load_handler", t),
			m("on_context_created", v, t, t, t),
			m("on_context_released", v, t, t, t),
			m("on_uncaught_exception", v, t, t, t, t, t),
			m("on_focused_node_changed", v, t, t, t),
			m("on_process_message_received", b, t, t, i, t),
		}, renderer),

		def(Client, []Slot{
			m("get_audio_handler", t),
			m("get_command_handler", t),
			m("get_context_menu_handler", t),
			m("get_dialog_handler", t),
			m("get_display_handler", t),
			m("get_download_handler", t),
			m("get_drag_handler", t),
			m("get_find_handler", t),
			m("get_focus_handler", t),
			m("get_frame_handler", t),
			m("get_permission_handler", t),
			m("get_jsdialog_handler", t),
			m("get_keyboard_handler", t),
			m("get_life_span_handler", t),
			m("get_load_handler", t),
			m("get_print_handler", t),
			m("get_render_handler", t),
			m("get_request_handler", t),
			m("on_process_message_received", b, t, t, i, t),
		}, shared),

		def(LifeSpanHandler, []Slot{
			m("on_before_popup", b, t, t, s, s, i, b, p, p, p, p, p, p),
			m("on_before_dev_tools_popup", v, t, p, p, p, p, p),
			m("on_after_created", v, t),
			m("do_close", b, t),
			m("on_before_close", v, t),
		}, ui),

		def(LoadHandler, []Slot{
			m("on_loading_state_change", v, t, b, b, b),
			m("on_load_start", v, t, t, i),
			m("on_load_end", v, t, t, i),
			m("on_load_error", v, t, t, i, s, s),
		}, ui),

		def(DisplayHandler, []Slot{
			m("on_address_change", v, t, t, s),
			m("on_title_change", v, t, s),
			m("on_favicon_urlchange", v, t, p),
			m("on_fullscreen_mode_change", v, t, b),
			m("on_tooltip", b, t, p),
			m("on_status_message", v, t, s),
			m("on_console_message", b, t, i, s, s, i),
			m("on_auto_resize", b, t, p),
			m("on_loading_progress_change", v, t, fp),
			m("on_cursor_change", b, t, p, i, p),
			m("on_media_access_change", v, t, b, b),
		}, ui),

		def(Browser, []Slot{
			m("is_valid", b),
			m("get_host", t),
			m("can_go_back", b),
			m("go_back", v),
			m("can_go_forward", b),
			m("go_forward", v),
			m("is_loading", b),
			m("reload", v),
			m("reload_ignore_cache", v),
			m("stop_load", v),
			m("get_identifier", i),
			m("is_same", b, t),
			m("is_popup", b),
			m("has_document", b),
			m("get_main_frame", t),
			m("get_focused_frame", t),
			m("get_frame_by_identifier", t, s),
			m("get_frame_by_name", t, s),
			m("get_frame_count", sz),
			m("get_frame_identifiers", v, p),
			m("get_frame_names", v, p),
		}, shared),

		def(BrowserHost, []Slot{
			m("get_browser", t),
			m("close_browser", v, b),
			m("try_close_browser", b),
			m("set_focus", v, b),
			m("get_window_handle", p),
			m("get_opener_window_handle", p),
			m("has_view", b),
			m("get_client", t),
			m("get_request_context", t),
			m("can_zoom", b, i),
			m("zoom", v, i),
			m("get_default_zoom_level", fp),
			m("get_zoom_level", fp),
			m("set_zoom_level", v, fp),
			m("run_file_dialog", v, i, s, s, p, t),
			m("start_download", v, s),
			m("download_image", v, s, b, i, b, t),
			m("print", v),
			m("print_to_pdf", v, s, p, t),
			m("find", v, s, b, b, b),
			m("stop_finding", v, b),
			m("show_dev_tools", v, p, t, p, p),
			m("close_dev_tools", v),
			m("has_dev_tools", b),
			m("send_dev_tools_message", b, p, sz),
			m("execute_dev_tools_method", i, i, s, t),
			m("add_dev_tools_message_observer", t, t),
			m("get_navigation_entries", v, t, b),
			m("replace_misspelling", v, s),
			m("add_word_to_dictionary", v, s),
			m("is_window_rendering_disabled", b),
			m("was_resized", v),
			m("was_hidden", v, b),
			m("notify_screen_info_changed", v),
			m("invalidate", v, i),
		}, shared),

		def(Frame, []Slot{
			m("is_valid", b),
			m("undo", v),
			m("redo", v),
			m("cut", v),
			m("copy", v),
			m("paste", v),
			m("paste_and_match_style", v),
			m("del", v),
			m("select_all", v),
			m("view_source", v),
			m("get_source", v, t),
			m("get_text", v, t),
			m("load_request", v, t),
			m("load_url", v, s),
			m("execute_java_script", v, s, s, i),
			m("is_main", b),
			m("is_focused", b),
			m("get_name", us),
			m("get_identifier", us),
			m("get_parent", t),
			m("get_url", us),
			m("get_browser", t),
			m("get_v8context", t),
			m("visit_dom", v, t),
			m("create_urlrequest", t, t, t),
			m("send_process_message", v, i, t),
		}, shared),

		def(CommandLine, []Slot{
			m("is_valid", b),
			m("is_read_only", b),
			m("copy", t),
			m("init_from_argv", v, i, p),
			m("init_from_string", v, s),
			m("reset", v),
			m("get_argv", v, p),
			m("get_command_line_string", us),
			m("get_program", us),
			m("set_program", v, s),
			m("has_switches", b),
			m("has_switch", b, s),
			m("get_switch_value", us, s),
			m("get_switches", v, p),
			m("append_switch", v, s),
			m("append_switch_with_value", v, s, s),
			m("has_arguments", b),
			m("get_arguments", v, p),
			m("append_argument", v, s),
			m("prepend_wrapper", v, s),
		}, shared),

		def(Task, []Slot{
			m("execute", v),
		}, shared),

		def(ProcessMessage, []Slot{
			m("is_valid", b),
			m("is_read_only", b),
			m("copy", t),
			m("get_name", us),
			m("get_argument_list", t),
			m("get_shared_memory_region", t),
		}, shared),

		def(ListValue, []Slot{
			m("is_valid", b),
			m("is_owned", b),
			m("is_read_only", b),
			m("is_same", b, t),
			m("is_equal", b, t),
			m("copy", t),
			m("set_size", b, sz),
			m("get_size", sz),
			m("clear", b),
			m("remove", b, sz),
			m("get_type", i, sz),
			m("get_value", t, sz),
			m("get_bool", b, sz),
			m("get_int", i, sz),
			m("get_double", fp, sz),
			m("get_string", us, sz),
			m("get_binary", t, sz),
			m("get_dictionary", t, sz),
			m("get_list", t, sz),
			m("set_value", b, sz, t),
			m("set_null", b, sz),
			m("set_bool", b, sz, b),
			m("set_int", b, sz, i),
			m("set_double", b, sz, fp),
			m("set_string", b, sz, s),
			m("set_binary", b, sz, t),
			m("set_dictionary", b, sz, t),
			m("set_list", b, sz, t),
		}, shared),

		def(BinaryValue, []Slot{
			m("is_valid", b),
			m("is_owned", b),
			m("is_same", b, t),
			m("is_equal", b, t),
			m("copy", t),
			m("get_raw_data", p),
			m("get_size", sz),
			m("get_data", sz, p, sz, sz),
		}, shared),

		def(Request, []Slot{
			m("is_read_only", b),
			m("get_url", us),
			m("set_url", v, s),
			m("get_method", us),
			m("set_method", v, s),
			m("set_referrer", v, s, i),
			m("get_referrer_url", us),
			m("get_referrer_policy", i),
			m("get_post_data", t),
			m("set_post_data", v, t),
			m("get_header_map", v, p),
			m("set_header_map", v, p),
			m("get_header_by_name", us, s),
			m("set_header_by_name", v, s, s, b),
			m("set", v, s, s, t, p),
			m("get_flags", i),
			m("set_flags", v, i),
			m("get_first_party_for_cookies", us),
			m("set_first_party_for_cookies", v, s),
			m("get_resource_type", i),
			m("get_transition_type", i),
			m("get_identifier", i64),
		}, shared),

		def(Response, []Slot{
			m("is_read_only", b),
			m("get_error", i),
			m("set_error", v, i),
			m("get_status", i),
			m("set_status", v, i),
			m("get_status_text", us),
			m("set_status_text", v, s),
			m("get_mime_type", us),
			m("set_mime_type", v, s),
			m("get_charset", us),
			m("set_charset", v, s),
			m("get_header_by_name", us, s),
			m("set_header_by_name", v, s, s, b),
			m("get_header_map", v, p),
			m("set_header_map", v, p),
			m("get_url", us),
			m("set_url", v, s),
		}, shared),

		def(View, []Slot{
			m("as_browser_view", t),
			m("as_button", t),
			m("as_panel", t),
			m("as_scroll_view", t),
			m("as_textfield", t),
			m("get_type_string", us),
			m("to_string", us, b),
			m("is_valid", b),
			m("is_attached", b),
			m("is_same", b, t),
			m("get_delegate", t),
			m("get_window", t),
			m("get_id", i),
			m("set_id", v, i),
			m("get_group_id", i),
			m("set_group_id", v, i),
			m("get_parent_view", t),
			m("get_view_for_id", t, i),
			m("set_bounds", v, p),
			m("get_bounds", st),
			m("get_bounds_in_screen", st),
			m("set_size", v, p),
			m("get_size", st),
			m("set_position", v, p),
			m("get_position", st),
			m("set_insets", v, p),
			m("get_insets", st),
			m("get_preferred_size", st),
			m("size_to_preferred_size", v),
			m("get_minimum_size", st),
			m("get_maximum_size", st),
			m("get_height_for_width", i, i),
			m("invalidate_layout", v),
			m("set_visible", v, b),
			m("is_visible", b),
			m("is_drawn", b),
			m("set_enabled", v, b),
			m("is_enabled", b),
			m("set_focusable", v, b),
			m("is_focusable", b),
			m("is_accessibility_focusable", b),
			m("has_focus", b),
			m("request_focus", v),
			m("set_background_color", v, i),
			m("get_background_color", i),
			m("get_theme_color", i, i),
			m("convert_point_to_screen", b, p),
			m("convert_point_from_screen", b, p),
			m("convert_point_to_window", b, p),
			m("convert_point_from_window", b, p),
			m("convert_point_to_view", b, t, p),
			m("convert_point_from_view", b, t, p),
		}, ui),

		def(ViewDelegate, []Slot{
			m("get_preferred_size", st, t),
			m("get_minimum_size", st, t),
			m("get_maximum_size", st, t),
			m("get_height_for_width", i, t, i),
			m("on_parent_view_changed", v, t, b, t),
			m("on_child_view_changed", v, t, b, t),
			m("on_window_changed", v, t, b),
			m("on_layout_changed", v, t, p),
			m("on_focus", v, t),
			m("on_blur", v, t),
			m("on_theme_changed", v, t),
		}, ui),

		def(Panel, []Slot{
			m("as_window", t),
			m("set_to_fill_layout", t),
			m("set_to_box_layout", t, p),
			m("get_layout", t),
			m("layout", v),
			m("add_child_view", v, t),
			m("add_child_view_at", v, t, i),
			m("reorder_child_view", v, t, i),
			m("remove_child_view", v, t),
			m("remove_all_child_views", v),
			m("get_child_view_count", sz),
			m("get_child_view_at", t, i),
		}, Extends(View), ui),

		def(PanelDelegate, nil, Extends(ViewDelegate), ui),

		def(Window, []Slot{
			m("show", v),
			m("show_as_browser_modal_dialog", v, t),
			m("hide", v),
			m("center_window", v, p),
			m("close", v),
			m("is_closed", b),
			m("activate", v),
			m("deactivate", v),
			m("is_active", b),
			m("bring_to_top", v),
			m("set_always_on_top", v, b),
			m("is_always_on_top", b),
			m("maximize", v),
			m("minimize", v),
			m("restore", v),
			m("set_fullscreen", v, b),
			m("is_maximized", b),
			m("is_minimized", b),
			m("is_fullscreen", b),
			m("get_focused_view", t),
			m("set_title", v, s),
			m("get_title", us),
			m("set_window_icon", v, t),
			m("get_window_icon", t),
			m("set_window_app_icon", v, t),
			m("get_window_app_icon", t),
			m("add_overlay_view", t, t, i, b),
			m("show_menu", v, t, p, i),
			m("cancel_menu", v),
			m("get_display", t),
			m("get_client_area_bounds_in_screen", st),
			m("set_draggable_regions", v, sz, p),
			m("get_window_handle", p),
			m("send_key_press", v, i, i),
			m("send_mouse_move", v, i, i),
			m("send_mouse_events", v, i, b, b),
			m("set_accelerator", v, i, i, b, b, b, b),
			m("remove_accelerator", v, i),
			m("remove_all_accelerators", v),
			m("set_theme_color", v, i, i),
			m("theme_changed", v),
			m("get_runtime_style", i),
		}, Extends(Panel), ui),

		def(WindowDelegate, []Slot{
			m("on_window_created", v, t),
			m("on_window_closing", v, t),
			m("on_window_destroyed", v, t),
			m("on_window_activation_changed", v, t, b),
			m("on_window_bounds_changed", v, t, p),
			m("on_window_fullscreen_transition", v, t, b),
			m("get_parent_window", t, t, p, p),
			m("is_window_modal_dialog", b, t),
			m("get_initial_bounds", st, t),
			m("get_initial_show_state", i, t),
			m("is_frameless", b, t),
			m("with_standard_window_buttons", b, t),
			m("get_titlebar_height", b, t, p),
			m("accepts_first_mouse", i, t),
			m("can_resize", b, t),
			m("can_maximize", b, t),
			m("can_minimize", b, t),
			m("can_close", b, t),
			m("on_accelerator", b, t, i),
			m("on_key_event", b, t, p),
			m("on_theme_colors_changed", v, t, b),
			m("get_window_runtime_style", i),
			m("get_linux_window_properties", b, t, p),
		}, Extends(PanelDelegate), ui),

		def(BrowserView, []Slot{
			m("get_browser", t),
			m("get_chrome_toolbar", t),
			m("set_prefer_accelerators", v, b),
			m("get_runtime_style", i),
		}, Extends(View), ui),

		def(BrowserViewDelegate, []Slot{
			m("on_browser_created", v, t, t),
			m("on_browser_destroyed", v, t, t),
			m("get_delegate_for_popup_browser_view", t, t, p, t, b),
			m("on_popup_browser_view_created", b, t, t, b),
			m("get_chrome_toolbar_type", i, t),
			m("use_frameless_window_for_picture_in_picture", b, t),
			m("on_gesture_command", b, t, i),
			m("get_browser_runtime_style", i),
		}, Extends(ViewDelegate), ui),

		def(Layout, []Slot{
			m("as_box_layout", t),
			m("as_fill_layout", t),
			m("is_valid", b),
		}, ui),

		def(BoxLayout, []Slot{
			m("set_flex_for_view", v, t, i),
			m("clear_flex_for_view", v, t),
		}, Extends(Layout), ui),

		def(FillLayout, nil, Extends(Layout), ui),

		def(Display, []Slot{
			m("get_id", i64),
			m("get_device_scale_factor", fp),
			m("convert_point_to_pixels", v, p),
			m("convert_point_from_pixels", v, p),
			m("get_bounds", st),
			m("get_work_area", st),
			m("get_rotation", i),
		}, ui),

		def(V8Context, []Slot{
			m("get_task_runner", t),
			m("is_valid", b),
			m("get_browser", t),
			m("get_frame", t),
			m("get_global", t),
			m("enter", b),
			m("exit", b),
			m("is_same", b, t),
			m("eval", b, s, s, i, p, p),
		}, renderer),

		def(V8Value, []Slot{
			m("is_valid", b),
			m("is_undefined", b),
			m("is_null", b),
			m("is_bool", b),
			m("is_int", b),
			m("is_uint", b),
			m("is_double", b),
			m("is_date", b),
			m("is_string", b),
			m("is_object", b),
			m("is_array", b),
			m("is_array_buffer", b),
			m("is_function", b),
			m("is_promise", b),
			m("is_same", b, t),
			m("get_bool_value", b),
			m("get_int_value", i),
			m("get_uint_value", i),
			m("get_double_value", fp),
			m("get_date_value", st),
			m("get_string_value", us),
			m("is_user_created", b),
			m("has_exception", b),
			m("get_exception", t),
			m("clear_exception", b),
			m("will_rethrow_exceptions", b),
			m("set_rethrow_exceptions", b, b),
			m("has_value_bykey", b, s),
			m("has_value_byindex", b, i),
			m("delete_value_bykey", b, s),
			m("delete_value_byindex", b, i),
			m("get_value_bykey", t, s),
			m("get_value_byindex", t, i),
			m("set_value_bykey", b, s, t, i),
			m("set_value_byindex", b, i, t),
			m("set_value_byaccessor", b, s, i),
			m("get_keys", b, p),
			m("set_user_data", b, t),
			m("get_user_data", t),
			m("get_externally_allocated_memory", i),
			m("adjust_externally_allocated_memory", i, i),
			m("get_array_length", i),
			m("get_array_buffer_release_callback", t),
			m("neuter_array_buffer", b),
			m("get_array_buffer_byte_length", sz),
			m("get_array_buffer_data", p),
			m("get_function_name", us),
			m("get_function_handler", t),
			m("execute_function", t, t, sz, p),
			m("execute_function_with_context", t, t, t, sz, p),
			m("resolve_promise", b, t),
			m("reject_promise", b, s),
		}, renderer),

		def(V8Handler, []Slot{
			m("execute", b, s, t, sz, p, p, p),
		}, renderer),

		def(V8Exception, []Slot{
			m("get_message", us),
			m("get_source_line", us),
			m("get_script_resource_name", us),
			m("get_line_number", i),
			m("get_start_position", i),
			m("get_end_position", i),
			m("get_start_column", i),
			m("get_end_column", i),
		}, renderer),
	}
}
