package email

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"sync"
)

//go:embed templates/*.html
var builtinTemplates embed.FS

// TemplateManager implements TemplateRenderer over html/template.
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// NewDefaultTemplateManager returns a manager preloaded with the built-in
// notification templates.
func NewDefaultTemplateManager() (*TemplateManager, error) {
	tm := NewTemplateManager()
	if err := tm.LoadFS(builtinTemplates, "templates"); err != nil {
		return nil, err
	}
	return tm, nil
}

// Render executes a named template.
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate parses and registers a template, replacing any with the same name.
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates loads every *.html file under dirPath. Custom templates
// override the built-in ones of the same name.
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return tm.LoadFS(os.DirFS(dirPath), ".")
}

// LoadFS loads every *.html file under root in fsys.
func (tm *TemplateManager) LoadFS(fsys fs.FS, root string) error {
	return fs.WalkDir(fsys, root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(p, ".html") {
			return nil
		}

		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", p, err)
		}

		templateName := strings.TrimSuffix(path.Base(p), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// HasTemplate reports whether name is registered.
func (tm *TemplateManager) HasTemplate(name string) bool {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	_, ok := tm.templates[name]
	return ok
}

// TemplateNames lists the registered templates, sorted.
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
