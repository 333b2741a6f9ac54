// SPDX-License-Identifier: MPL-2.0

package compose

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"stevedore-cli/internal/naming"
)

const (
	// CanonicalFileName is the modern compose file name.
	CanonicalFileName = "compose.yaml"
	// LegacyFileName is the legacy compose file name still in wide use.
	LegacyFileName = "docker-compose.yml"

	// servicesKey is the top-level mapping that declares services.
	servicesKey = "services"
	// imageKey is the per-service scalar that pins the image reference.
	imageKey = "image"

	// encodeIndent is the indentation used when re-encoding a document.
	encodeIndent = 2
)

// FileNames returns the accepted compose file names, preferred name first.
func FileNames() []string {
	return []string{CanonicalFileName, LegacyFileName}
}

// Document is a compose file loaded into a YAML node tree. Edits are applied
// to the tree in place and written back with Save, which re-encodes the whole
// tree; key order and comments survive the round trip, so repeated identical
// edits produce byte-identical files.
type Document struct {
	path string
	root *yaml.Node
}

// Load reads and parses the compose file at path.
// It returns MalformedDocumentError when the file is not valid YAML or its
// top level is not a mapping.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compose file: %w", err)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &MalformedDocumentError{Path: path, Cause: err}
	}

	// An empty file yields a zero node; normalize to an empty mapping
	// document so lookups report SchemaError rather than panicking.
	if root.Kind == 0 {
		root = yaml.Node{
			Kind:    yaml.DocumentNode,
			Content: []*yaml.Node{{Kind: yaml.MappingNode, Tag: "!!map"}},
		}
	}

	if top := contentRoot(&root); top == nil || top.Kind != yaml.MappingNode {
		return nil, &MalformedDocumentError{
			Path:  path,
			Cause: fmt.Errorf("top level is not a mapping"),
		}
	}

	return &Document{path: path, root: &root}, nil
}

// Path returns the file path this document was loaded from.
func (d *Document) Path() string { return d.path }

// Get returns the scalar value at the given key path, descending through
// nested mappings. The second return value reports whether the full path
// exists and terminates in a scalar.
func (d *Document) Get(path ...string) (string, bool) {
	node := contentRoot(d.root)
	for _, key := range path {
		if node == nil || node.Kind != yaml.MappingNode {
			return "", false
		}
		node = mappingValue(node, key)
	}
	if node == nil || node.Kind != yaml.ScalarNode {
		return "", false
	}
	return node.Value, true
}

// Set writes a scalar value at the given key path. Every intermediate
// segment must already exist as a mapping; only the leaf key is created
// when absent. Setting an existing key overwrites its value and keeps the
// node's original quoting style, so re-applying the same value is a no-op
// on the serialized form.
func (d *Document) Set(value string, path ...string) error {
	if len(path) == 0 {
		return fmt.Errorf("set: empty key path")
	}

	node := contentRoot(d.root)
	for i, key := range path[:len(path)-1] {
		if node == nil || node.Kind != yaml.MappingNode {
			return &SchemaError{
				Path:      d.path,
				FieldPath: strings.Join(path[:i+1], "."),
				Reason:    "is not a mapping",
			}
		}
		node = mappingValue(node, key)
		if node == nil {
			return &SchemaError{Path: d.path, FieldPath: strings.Join(path[:i+1], ".")}
		}
	}

	if node.Kind != yaml.MappingNode {
		// A null entry (`web:` with no body) counts as an existing but
		// empty mapping; promote it so the leaf can be attached.
		if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
			node.Kind = yaml.MappingNode
			node.Tag = "!!map"
			node.Value = ""
			node.Content = nil
		} else {
			return &SchemaError{
				Path:      d.path,
				FieldPath: strings.Join(path[:len(path)-1], "."),
				Reason:    "is not a mapping",
			}
		}
	}

	leaf := path[len(path)-1]
	if existing := mappingValue(node, leaf); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = "!!str"
		existing.Value = value
		existing.Content = nil
		return nil
	}

	node.Content = append(node.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: leaf},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value},
	)
	return nil
}

// Services returns the declared service names in document order.
// A present-but-empty services mapping yields an empty slice; a missing
// services key is a SchemaError.
func (d *Document) Services() ([]naming.ServiceName, error) {
	top := contentRoot(d.root)
	services := mappingValue(top, servicesKey)
	if services == nil {
		return nil, &SchemaError{Path: d.path, FieldPath: servicesKey}
	}

	// `services:` with no body parses as a null scalar; zero services.
	if services.Kind == yaml.ScalarNode && services.Tag == "!!null" {
		return nil, nil
	}
	if services.Kind != yaml.MappingNode {
		return nil, &SchemaError{Path: d.path, FieldPath: servicesKey, Reason: "is not a mapping"}
	}

	names := make([]naming.ServiceName, 0, len(services.Content)/2)
	for i := 0; i+1 < len(services.Content); i += 2 {
		names = append(names, naming.ServiceName(services.Content[i].Value))
	}
	return names, nil
}

// SetImage pins the image reference of one declared service. The service
// entry must already exist; SetImage never creates service entries.
func (d *Document) SetImage(service naming.ServiceName, ref naming.ImageReference) error {
	top := contentRoot(d.root)
	services := mappingValue(top, servicesKey)
	if services == nil {
		return &SchemaError{Path: d.path, FieldPath: servicesKey}
	}
	if services.Kind != yaml.MappingNode || mappingValue(services, string(service)) == nil {
		return &SchemaError{Path: d.path, FieldPath: servicesKey + "." + string(service)}
	}

	return d.Set(ref.String(), servicesKey, string(service), imageKey)
}

// Save atomically replaces the on-disk file with the re-encoded document.
// The temp file is created in the target directory so the final rename
// never crosses filesystems; a partial write therefore never clobbers the
// original document.
func (d *Document) Save() error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(encodeIndent)
	if err := enc.Encode(d.root); err != nil {
		return fmt.Errorf("encode compose document: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode compose document: %w", err)
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}

	dir := filepath.Dir(d.path)
	tmp, err := os.CreateTemp(dir, ".compose-*.tmp")
	if err != nil {
		return fmt.Errorf("write compose document: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write compose document: %w", err)
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write compose document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("write compose document: %w", err)
	}

	if err := os.Rename(tmpName, d.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace compose document: %w", err)
	}
	return nil
}

// contentRoot unwraps the document node to the top-level mapping.
func contentRoot(root *yaml.Node) *yaml.Node {
	if root == nil {
		return nil
	}
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return nil
		}
		return root.Content[0]
	}
	return root
}

// mappingValue returns the value node for key in a mapping node, or nil.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}
