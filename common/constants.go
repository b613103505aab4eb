package common

const (
	ScreenWidth  = 1024
	ScreenHeight = 576

	// DefaultFrameDuration is one 60 Hz frame in milliseconds.
	DefaultFrameDuration = 1000.0 / 60.0
)
