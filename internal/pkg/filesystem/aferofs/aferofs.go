// nolint: forbidigo
package aferofs

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"github.com/dsascode/dsc/internal/pkg/encoding/json"
	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/log"
	"github.com/dsascode/dsc/internal/pkg/utils"
)

// Fs implements filesystem.Fs on top of an afero filesystem.
// All paths are relative to the basePath.
type Fs struct {
	apiName    string
	logger     log.Logger
	fs         afero.Fs
	utils      *afero.Afero
	basePath   string
	workingDir string
}

func New(logger log.Logger, fs afero.Fs, basePath, workingDir, apiName string) *Fs {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Fs{
		apiName:    apiName,
		logger:     logger,
		fs:         fs,
		utils:      &afero.Afero{Fs: fs},
		basePath:   basePath,
		workingDir: workingDir,
	}
}

func (f *Fs) ApiName() string {
	return f.apiName
}

func (f *Fs) BasePath() string {
	return f.basePath
}

func (f *Fs) WorkingDir() string {
	return f.workingDir
}

func (f *Fs) SetLogger(logger log.Logger) {
	f.logger = logger
}

func (f *Fs) Walk(root string, walkFn filepath.WalkFunc) error {
	return afero.Walk(f.fs, root, walkFn)
}

func (f *Fs) Glob(pattern string) (matches []string, err error) {
	return afero.Glob(f.fs, pattern)
}

func (f *Fs) Stat(path string) (os.FileInfo, error) {
	return f.fs.Stat(path)
}

func (f *Fs) ReadDir(path string) ([]os.FileInfo, error) {
	return f.utils.ReadDir(path)
}

func (f *Fs) Mkdir(path string) error {
	if err := f.utils.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	return nil
}

func (f *Fs) Exists(path string) bool {
	if _, err := f.fs.Stat(path); err == nil {
		return true
	}
	return false
}

func (f *Fs) IsFile(path string) bool {
	if s, err := f.fs.Stat(path); err == nil {
		return !s.IsDir()
	}
	return false
}

func (f *Fs) IsDir(path string) bool {
	if s, err := f.fs.Stat(path); err == nil {
		return s.IsDir()
	}
	return false
}

func (f *Fs) Create(name string) (afero.File, error) {
	return f.fs.Create(name)
}

func (f *Fs) Open(name string) (afero.File, error) {
	return f.fs.Open(name)
}

func (f *Fs) OpenFile(name string, flag int, perm os.FileMode) (afero.File, error) {
	return f.fs.OpenFile(name, flag, perm)
}

func (f *Fs) Copy(src, dst string) error {
	file, err := f.ReadFile(src, "")
	if err != nil {
		return err
	}
	file.Path = dst
	return f.WriteFile(file)
}

func (f *Fs) Move(src, dst string) error {
	if err := f.fs.Rename(src, dst); err != nil {
		return fmt.Errorf(`cannot move "%s" -> "%s": %w`, src, dst, err)
	}
	return nil
}

func (f *Fs) Remove(path string) error {
	return f.fs.Remove(path)
}

func (f *Fs) RemoveAll(path string) error {
	return f.fs.RemoveAll(path)
}

func (f *Fs) ReadFile(path, desc string) (*File, error) {
	content, err := f.utils.ReadFile(path)
	if err != nil {
		return nil, readError(path, desc, err)
	}
	f.logger.Debugf(`Loaded "%s"`, path)
	file := filesystem.NewFile(path, string(content))
	file.Desc = desc
	return file, nil
}

func (f *Fs) WriteFile(file *File) error {
	if dir := filesystem.Dir(file.Path); dir != "." && dir != "/" {
		if err := f.Mkdir(dir); err != nil {
			return err
		}
	}
	if err := f.utils.WriteFile(file.Path, []byte(file.Content), 0o644); err != nil {
		return writeError(file.Path, file.Desc, err)
	}
	f.logger.Debugf(`Saved "%s"`, file.Path)
	return nil
}

func (f *Fs) ReadJsonFileTo(path, desc string, target any) error {
	file, err := f.ReadFile(path, desc)
	if err != nil {
		return err
	}
	if err := json.DecodeString(file.Content, target); err != nil {
		fileDesc := strings.TrimSpace(desc + " file")
		return utils.PrefixErrorf(err, `%s "%s" is invalid`, fileDesc, path)
	}
	return nil
}

func (f *Fs) WriteJsonFile(file *JsonFile) error {
	content, err := json.EncodeString(file.Content, true)
	if err != nil {
		fileDesc := strings.TrimSpace(file.Desc + " file")
		return utils.PrefixErrorf(err, `cannot encode %s "%s"`, fileDesc, file.Path)
	}
	rawFile := filesystem.NewFile(file.Path, content)
	rawFile.Desc = file.Desc
	return f.WriteFile(rawFile)
}

// CreateOrUpdateFile lines, if the file exists, the existing lines are preserved.
// A line with a matching regexp is replaced, a missing line is appended.
func (f *Fs) CreateOrUpdateFile(path, desc string, lines []filesystem.FileLine) (updated bool, err error) {
	// Read existing file
	content := ""
	if f.IsFile(path) {
		file, err := f.ReadFile(path, desc)
		if err != nil {
			return false, err
		}
		content = file.Content
		updated = true
	}

	// Split to lines
	var fileLines []string
	if len(content) > 0 {
		fileLines = strings.Split(strings.TrimRight(content, "\n"), "\n")
	}

	for _, line := range lines {
		newLine := strings.TrimRight(line.Line, "\n")
		if line.Regexp != "" {
			re, err := regexp.Compile(line.Regexp)
			if err != nil {
				return false, fmt.Errorf(`invalid line regexp "%s": %w`, line.Regexp, err)
			}
			if i := findLine(fileLines, re.MatchString); i >= 0 {
				fileLines[i] = newLine
				continue
			}
		}
		if i := findLine(fileLines, func(l string) bool { return l == newLine }); i < 0 {
			fileLines = append(fileLines, newLine)
		}
	}

	// Write joined lines
	file := filesystem.NewFile(path, strings.Join(fileLines, "\n")+"\n")
	file.Desc = desc
	if err := f.WriteFile(file); err != nil {
		return false, err
	}
	return updated, nil
}

func findLine(lines []string, match func(string) bool) int {
	for i, line := range lines {
		if match(line) {
			return i
		}
	}
	return -1
}

func readError(path, desc string, err error) error {
	fileDesc := strings.TrimSpace(desc + " file")
	return fmt.Errorf(`cannot read %s "%s": %w`, fileDesc, path, err)
}

func writeError(path, desc string, err error) error {
	fileDesc := strings.TrimSpace(desc + " file")
	return fmt.Errorf(`cannot write %s "%s": %w`, fileDesc, path, err)
}

type File = filesystem.File

type JsonFile = filesystem.JsonFile
