package port

// XDGPaths provides XDG Base Directory paths.
type XDGPaths interface {
	ConfigDir() (string, error)
	ConfigFile() (string, error)
	// ManDir is the user man1 directory, shared with other programs.
	ManDir() (string, error)
}
