package tui

// State tracks the answers collected so far and the error messages still
// pending for each element.
type State struct {
	values map[string]any
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors.
func NewState(prefill map[string]any, errs map[string][]string) *State {
	s := &State{
		values: make(map[string]any, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for k, v := range prefill {
		s.values[k] = v
	}
	for k, v := range errs {
		s.errors[k] = append([]string(nil), v...)
	}
	return s
}

// Values returns the current value map (mutable).
func (s *State) Values() map[string]any {
	if s == nil {
		return nil
	}
	return s.values
}

// ErrorsFor returns the pending errors of an element.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// SetErrors replaces the pending errors of an element. An empty list clears
// them.
func (s *State) SetErrors(name string, messages []string) {
	if s == nil {
		return
	}
	if len(messages) == 0 {
		delete(s.errors, name)
		return
	}
	s.errors[name] = append([]string(nil), messages...)
}

// SetValue records the answer of an element.
func (s *State) SetValue(name string, value any) {
	if s == nil {
		return
	}
	s.values[name] = value
}

// GetValue returns the recorded answer of an element.
func (s *State) GetValue(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	v, ok := s.values[name]
	return v, ok
}
