// Package topics provides a topic-based help system for Cobra CLI
// applications, serving documentation pages embedded in the binary.
package topics

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

// Topic represents a help topic
type Topic struct {
	Name    string
	Format  string
	Content string
}

// Manager loads topics from a file system and exposes them through a
// "topics" command.
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Options configures the Manager
type Options struct {
	// Extensions is the list of file extensions considered topics.
	// Defaults to [".md", ".txt"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// New scans fsys for topic files and builds a Manager.
func New(fsys fs.FS, opts Options) (*Manager, error) {
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".md", ".txt"}
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = &PlainRenderer{}
	}

	m := &Manager{
		topics:   make(map[string]*Topic),
		renderer: renderer,
	}

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ext := filepath.Ext(path)
		supported := false
		for _, validExt := range extensions {
			if ext == validExt {
				supported = true
				break
			}
		}
		if !supported {
			return nil
		}

		content, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(path), ext)
		m.topics[name] = &Topic{
			Name:    name,
			Format:  ext,
			Content: string(content),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return m, nil
}

// Names returns the available topic names, sorted.
func (m *Manager) Names() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a topic by name.
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// Command builds the "topics" cobra command listing and showing
// topics.
func (m *Manager) Command(short, long string) *cobra.Command {
	cmd := &cobra.Command{
		Use:       "topics [topic]",
		Short:     short,
		Long:      long,
		ValidArgs: m.Names(),
		Args:      cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if len(m.topics) == 0 {
					cmd.Println("No help topics available.")
					return nil
				}
				cmd.Println("Available topics:")
				for _, name := range m.Names() {
					cmd.Printf("  %s\n", name)
				}
				cmd.Printf("\nUse \"%s topics <topic>\" to read one.\n", cmd.Root().Name())
				return nil
			}

			topic, ok := m.Get(args[0])
			if !ok {
				return fmt.Errorf("unknown topic %q", args[0])
			}
			cmd.Print(m.renderer.Render(topic.Content, topic.Format))
			return nil
		},
	}
	return cmd
}
