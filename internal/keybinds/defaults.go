package keybinds

// NewDefaultRegistry creates a registry with all default keybindings
func NewDefaultRegistry() *Registry {
	r := NewRegistry()

	registerGlobalBindings(r)
	registerNormalModeBindings(r)
	registerCaptureBindings(r)
	registerTextInputBindings(r)
	registerPickerBindings(r)

	return r
}

// registerGlobalBindings sets up bindings available in all modes
func registerGlobalBindings(r *Registry) {
	r.Register(ContextGlobal, "ctrl+c", ActionQuitForce)
}

func registerNormalModeBindings(r *Registry) {
	r.RegisterMultiple(ContextNormal, []string{"q", "esc"}, ActionQuit)
	r.RegisterMultiple(ContextNormal, []string{"enter", "s"}, ActionSetShortcut)
	r.RegisterMultiple(ContextNormal, []string{"tab", "shift+tab"}, ActionSwitchFocus)
	r.Register(ContextNormal, "e", ActionEditText)
	r.Register(ContextNormal, "m", ActionToggleMode)
	r.Register(ContextNormal, "v", ActionValidate)
	r.Register(ContextNormal, "c", ActionCopy)
	r.Register(ContextNormal, "?", ActionToggleHelp)
}

// registerCaptureBindings keeps the capture context small: every key not
// bound here becomes part of the shortcut.
func registerCaptureBindings(r *Registry) {
	r.Register(ContextCapture, "esc", ActionEndCapture)
}

func registerTextInputBindings(r *Registry) {
	r.RegisterMultiple(ContextTextInput, []string{"enter", "tab"}, ActionTextSubmit)
	r.Register(ContextTextInput, "esc", ActionTextCancel)
}

func registerPickerBindings(r *Registry) {
	r.Register(ContextPicker, "enter", ActionPickerSelect)
	r.Register(ContextPicker, "n", ActionPickerNew)
	r.RegisterMultiple(ContextPicker, []string{"q", "esc"}, ActionQuit)
}
