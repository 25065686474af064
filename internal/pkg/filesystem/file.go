package filesystem

// FileLine defines one line of a created/updated file, see Fs.CreateOrUpdateFile.
// If Regexp is set and an existing line matches, the line is replaced.
// Otherwise, the line is appended to the end of the file if not present.
type FileLine struct {
	Line   string
	Regexp string
}

// File is a raw file content with a description for error messages.
type File struct {
	Path    string
	Desc    string
	Content string
}

func NewFile(path, content string) *File {
	return &File{Path: path, Content: content}
}

func (f *File) SetDescription(desc string) *File {
	f.Desc = desc
	return f
}

// JsonFile is a file with JSON content.
type JsonFile struct {
	Path    string
	Desc    string
	Content any
}

func NewJsonFile(path string, content any) *JsonFile {
	return &JsonFile{Path: path, Content: content}
}

func (f *JsonFile) SetDescription(desc string) *JsonFile {
	f.Desc = desc
	return f
}
