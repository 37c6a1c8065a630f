package path

import "context"

// Info is a normalized path with its derived parts precomputed.
type Info struct {
	path string
	file string
	name string
	ext  string
}

// NewInfo normalizes p and derives its file, name and extension.
func NewInfo(p string) Info {
	normalized := Normalize(p)
	return Info{
		path: normalized,
		file: File(normalized),
		name: Name(normalized),
		ext:  Ext(normalized),
	}
}

func (i Info) String() string   { return i.path }
func (i Info) Path() string     { return i.path }
func (i Info) File() string     { return i.file }
func (i Info) Name() string     { return i.name }
func (i Info) Ext() string      { return i.ext }
func (i Info) IsAbsolute() bool { return IsAbsolute(i.path) }

// Parent returns the path levels directories up.
func (i Info) Parent(levels int) (string, error) {
	return Parent(i.path, levels)
}

// Child returns the normalized path of rel below this one.
func (i Info) Child(rel string) Info {
	return NewInfo(Child(i.path, rel))
}

// Absolute resolves the path through r.
func (i Info) Absolute(ctx context.Context, r PathResolver) (string, bool) {
	return Absolute(ctx, r, i.path)
}
