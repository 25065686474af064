package task

import (
	"fmt"
	"sort"

	"github.com/dsascode/dsc/internal/pkg/manifest"
)

// Task is a named alias for one external-tool command,
// the Makefile-target equivalent of the project.
type Task struct {
	Name        string
	Cmd         string
	Description string
}

// Defaults - the built-in task aliases. Each invokes exactly one
// external-tool command, the exit code is propagated unchanged.
// A manifest task with the same name overrides the default.
func Defaults() []Task {
	return []Task{
		{Name: "install", Cmd: "poetry install", Description: "install project dependencies"},
		{Name: "test", Cmd: "poetry run pytest", Description: "run the test suite"},
		{Name: "lint", Cmd: "poetry run ruff check src tests", Description: "lint the source code"},
		{Name: "format", Cmd: "poetry run black src tests", Description: "format the source code"},
		{Name: "typecheck", Cmd: "poetry run mypy src", Description: "static type check"},
		{Name: "docs", Cmd: "poetry run mkdocs serve", Description: "serve the documentation"},
		{Name: "notebook", Cmd: "poetry run jupyter lab", Description: "start the notebook server"},
		{Name: "mlflow-ui", Cmd: "poetry run mlflow ui", Description: "start the experiment tracking UI"},
		{Name: "streamlit", Cmd: "poetry run streamlit run src/app.py", Description: "start the app"},
		{Name: "dvc-pull", Cmd: "dvc pull", Description: "pull tracked data"},
		{Name: "dvc-push", Cmd: "dvc push", Description: "push tracked data"},
		{Name: "dvc-status", Cmd: "dvc status", Description: "show tracked data status"},
	}
}

// ForProject merges the defaults with the manifest tasks.
func ForProject(m *manifest.Manifest) []Task {
	byName := make(map[string]int)
	var out []Task
	for _, t := range Defaults() {
		byName[t.Name] = len(out)
		out = append(out, t)
	}

	// Manifest tasks override the defaults, extra tasks are appended
	var extra []Task
	for name, t := range m.Tasks {
		item := Task{Name: name, Cmd: t.Cmd, Description: t.Description}
		if i, found := byName[name]; found {
			out[i] = item
		} else {
			extra = append(extra, item)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Name < extra[j].Name })

	return append(out, extra...)
}

// Find task by name.
func Find(m *manifest.Manifest, name string) (Task, error) {
	for _, t := range ForProject(m) {
		if t.Name == name {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf(`task "%s" is not defined, run "dsc run" to list available tasks`, name)
}
