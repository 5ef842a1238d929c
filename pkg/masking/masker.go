package masking

// Masker is a code-based masker for secrets that a regex cannot describe
// up front, such as the current values of configured credential variables.
type Masker interface {
	// Name returns the unique identifier for this masker.
	Name() string

	// AppliesTo performs a lightweight check on whether this masker
	// should process the data.
	AppliesTo(data string) bool

	// Mask returns data with the secrets replaced.
	Mask(data string) string
}
