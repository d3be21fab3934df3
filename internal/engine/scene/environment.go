package scene

// EnvironmentPreset names a built-in lighting environment.
type EnvironmentPreset int

const (
	// RoomPreset is a neutral indoor room lit by several area lights.
	RoomPreset EnvironmentPreset = iota
)

func (p EnvironmentPreset) String() string {
	switch p {
	case RoomPreset:
		return "room"
	default:
		return "unknown"
	}
}

// EnvironmentMap is a pre-filtered lighting map resident on the GPU.
type EnvironmentMap interface {
	Size() (width, height int)
	Dispose()
}

// EnvironmentGenerator renders environment maps from presets.
// Disposing the generator does not dispose maps it produced.
type EnvironmentGenerator interface {
	FromPreset(preset EnvironmentPreset) (EnvironmentMap, error)
	Dispose()
}
