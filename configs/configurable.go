package configs

// Configurable is implemented by typed settings that live at a fixed path
// of the config files.
type Configurable interface {
	ConfigPath() string
}

// Get returns the first value of T found in the loaded files, or the zero
// value if no file sets it.
func Get[T Configurable](loader Loader) T {
	var zero T
	return First[T](loader, zero.ConfigPath())
}
