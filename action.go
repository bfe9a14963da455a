package grid

// ActionHandler is called when an action's key binding is triggered.
type ActionHandler func()

// ActionCondition returns true if the action can be executed.
type ActionCondition func() bool

// KeyBinding is a key plus the exact modifiers that must be held.
type KeyBinding struct {
	Key  Key
	Mods Modifiers
}

func (b KeyBinding) String() string {
	s := ""
	if b.Mods.Has(ModCtrl) {
		s += "Ctrl+"
	}
	if b.Mods.Has(ModAlt) {
		s += "Alt+"
	}
	if b.Mods.Has(ModShift) {
		s += "Shift+"
	}
	return s + KeyName(b.Key)
}

// ActionEntry holds a registered action with its binding and handler.
type ActionEntry struct {
	Name      string          // Action name for debugging
	Binding   KeyBinding      // Key and modifiers
	Handler   ActionHandler   // Called when the binding is triggered
	Condition ActionCondition // Optional: must return true to execute (nil = always)
}

// ActionRegistry maps key bindings to grid actions.
// The first matching entry whose condition holds wins.
type ActionRegistry struct {
	actions []ActionEntry
}

// NewActionRegistry creates an empty registry.
func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{actions: make([]ActionEntry, 0, 24)}
}

// Register adds an action for key with the given modifiers.
func (r *ActionRegistry) Register(name string, key Key, mods Modifiers, handler ActionHandler) {
	r.actions = append(r.actions, ActionEntry{
		Name:    name,
		Binding: KeyBinding{Key: key, Mods: mods},
		Handler: handler,
	})
}

// RegisterWithCondition adds an action with a condition that must be true to execute.
func (r *ActionRegistry) RegisterWithCondition(name string, key Key, mods Modifiers, handler ActionHandler, condition ActionCondition) {
	r.actions = append(r.actions, ActionEntry{
		Name:      name,
		Binding:   KeyBinding{Key: key, Mods: mods},
		Handler:   handler,
		Condition: condition,
	})
}

// Dispatch runs the action bound to key+mods.
// Returns the action name and true if one was triggered.
func (r *ActionRegistry) Dispatch(key Key, mods Modifiers) (string, bool) {
	// Alt and Super never take part in grid bindings.
	mods &= ModShift | ModCtrl
	for i := range r.actions {
		a := &r.actions[i]
		if a.Binding.Key != key || a.Binding.Mods != mods {
			continue
		}
		if a.Condition != nil && !a.Condition() {
			continue
		}
		a.Handler()
		return a.Name, true
	}
	return "", false
}

// Bindings returns every registered binding keyed by action name.
func (r *ActionRegistry) Bindings() map[string][]KeyBinding {
	out := make(map[string][]KeyBinding, len(r.actions))
	for _, a := range r.actions {
		out[a.Name] = append(out[a.Name], a.Binding)
	}
	return out
}

// Unregister removes every action with the given name.
func (r *ActionRegistry) Unregister(name string) {
	kept := r.actions[:0]
	for _, a := range r.actions {
		if a.Name != name {
			kept = append(kept, a)
		}
	}
	r.actions = kept
}

// Clear removes all registered actions.
func (r *ActionRegistry) Clear() {
	r.actions = r.actions[:0]
}
