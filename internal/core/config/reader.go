package config

// ReadValue renders the value of key for the shell using the default
// rendering (sets sorted ascending, space-joined).
func ReadValue(cfg *Configuration, key string) (string, error) {
	return ReadValueWith(cfg, key, RenderOptions{})
}

// ReadValueWith is ReadValue with custom set rendering.
func ReadValueWith(cfg *Configuration, key string, opts RenderOptions) (string, error) {
	spec, ok := Lookup(key)
	if !ok {
		return "", keyNotFound(key)
	}
	v, ok := cfg.Get(spec.Name)
	if !ok {
		return "", keyNotFound(key)
	}
	if v.IsEmpty() {
		return "", keyEmpty(spec.Name)
	}
	return Render(v, opts), nil
}
