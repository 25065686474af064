package manifest

import (
	"fmt"

	"github.com/dsascode/dsc/internal/pkg/filesystem"
	"github.com/dsascode/dsc/internal/pkg/utils"
	"github.com/dsascode/dsc/internal/pkg/validator"
)

const (
	FileName       = "project.json"
	CurrentVersion = 1

	SourceTypeHttp   = "http"
	SourceTypeKaggle = "kaggle"
)

// Path returns a relative path to the manifest in the project directory.
func Path() string {
	return filesystem.Join(filesystem.MetadataDir, FileName)
}

// Manifest of the data-science project: name, required tools,
// data sources and task definitions.
type Manifest struct {
	Version     int              `json:"version" validate:"required,min=1,max=1"`
	Project     Info             `json:"project"`
	Tools       []string         `json:"tools,omitempty"`
	DataSources []*DataSource    `json:"dataSources,omitempty" validate:"dive"`
	Tasks       map[string]*Task `json:"tasks,omitempty" validate:"dive"`
}

type Info struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
}

// DataSource defines where the raw data comes from.
// Type "http" downloads the URL, type "kaggle" delegates to the dataset CLI.
type DataSource struct {
	Name    string `json:"name" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=http kaggle"`
	URL     string `json:"url,omitempty" validate:"omitempty,url"`
	Dataset string `json:"dataset,omitempty"`
	Target  string `json:"target,omitempty"`
	Unzip   bool   `json:"unzip,omitempty"`
}

// Task is a named alias for one external-tool command.
type Task struct {
	Cmd         string `json:"cmd" validate:"required"`
	Description string `json:"description,omitempty"`
}

func New(name, description string) *Manifest {
	return &Manifest{
		Version: CurrentVersion,
		Project: Info{Name: name, Description: description},
		Tools:   DefaultTools(),
		Tasks:   make(map[string]*Task),
	}
}

// DefaultTools that must be present on PATH before the project setup.
func DefaultTools() []string {
	return []string{"git", "poetry"}
}

func Load(fs filesystem.Fs) (*Manifest, error) {
	path := Path()

	// Check version first, decoding may fail on a future schema
	if err := checkVersion(fs, path); err != nil {
		return nil, err
	}

	m := &Manifest{}
	if err := fs.ReadJsonFileTo(path, "manifest", m); err != nil {
		return nil, err
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return m, nil
}

func (m *Manifest) Save(fs filesystem.Fs) error {
	if err := m.Validate(); err != nil {
		return err
	}

	file := filesystem.NewJsonFile(Path(), m).SetDescription("manifest")
	return fs.WriteJsonFile(file)
}

func Exists(fs filesystem.Fs) bool {
	return fs.IsFile(Path())
}

func (m *Manifest) Validate() error {
	errs := utils.NewMultiError()
	if err := validator.Validate(m); err != nil {
		errs.Append(err)
	}

	// Conditional fields by the source type
	for _, source := range m.DataSources {
		switch source.Type {
		case SourceTypeHttp:
			if source.URL == "" {
				errs.Append(fmt.Errorf(`data source "%s": url is required for type "http"`, source.Name))
			}
		case SourceTypeKaggle:
			if source.Dataset == "" {
				errs.Append(fmt.Errorf(`data source "%s": dataset is required for type "kaggle"`, source.Name))
			}
		}
	}

	if errs.Len() > 0 {
		return utils.PrefixError("manifest is not valid", errs)
	}
	return nil
}

// GetDataSource by name, or the only defined source if name is empty.
func (m *Manifest) GetDataSource(name string) (*DataSource, error) {
	if name == "" {
		if len(m.DataSources) == 1 {
			return m.DataSources[0], nil
		}
		return nil, fmt.Errorf("please specify the data source name, defined sources: %s", m.dataSourceNames())
	}

	for _, source := range m.DataSources {
		if source.Name == name {
			return source, nil
		}
	}
	return nil, fmt.Errorf(`data source "%s" not found in the manifest, defined sources: %s`, name, m.dataSourceNames())
}

func (m *Manifest) dataSourceNames() string {
	if len(m.DataSources) == 0 {
		return "none"
	}
	out := ""
	for i, source := range m.DataSources {
		if i > 0 {
			out += ", "
		}
		out += `"` + source.Name + `"`
	}
	return out
}

func checkVersion(fs filesystem.Fs, path string) error {
	versionStruct := struct {
		Version *int `json:"version"`
	}{}
	if err := fs.ReadJsonFileTo(path, "manifest", &versionStruct); err != nil {
		return err
	}

	if versionStruct.Version == nil {
		return fmt.Errorf(`version field not found in "%s"`, path)
	}
	if *versionStruct.Version < 1 || *versionStruct.Version > CurrentVersion {
		return fmt.Errorf(`unknown version "%d" found in "%s"`, *versionStruct.Version, path)
	}
	return nil
}
