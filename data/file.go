package data

// File is a named, unbounded content payload.
type File struct {
	Name    string `json:"name"`
	Content []byte `json:"content"`
}

func NewFile(name string) *File {
	return &File{
		Name:    name,
		Content: make([]byte, 0),
	}
}

// Clone creates a deep copy of the file.
func (f *File) Clone() *File {
	content := make([]byte, len(f.Content))
	copy(content, f.Content)

	return &File{
		Name:    f.Name,
		Content: content,
	}
}
