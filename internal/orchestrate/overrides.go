// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"stevedore-cli/internal/naming"
)

// OverrideFileName is the optional per-project override file, read from
// the same directory as the compose file.
const OverrideFileName = ".stevedore.toml"

// Overrides carries the per-project knobs a team can set next to its
// compose file without touching the shared invocation.
type Overrides struct {
	// Tag replaces the default image tag for every service in the project.
	Tag string `toml:"tag"`
	// Skip excludes the project from the run entirely.
	Skip bool `toml:"skip"`
}

// LoadOverrides reads the override file from dir. A missing file yields
// the zero value; a malformed file is a per-project failure.
func LoadOverrides(dir string) (Overrides, error) {
	var o Overrides

	data, err := os.ReadFile(filepath.Join(dir, OverrideFileName))
	if err != nil {
		if os.IsNotExist(err) {
			return o, nil
		}
		return o, fmt.Errorf("reading %s: %w", OverrideFileName, err)
	}

	if err := toml.Unmarshal(data, &o); err != nil {
		return o, fmt.Errorf("parsing %s: %w", OverrideFileName, err)
	}

	return o, nil
}

// EffectiveTag returns the override tag when set, validated, or the
// default tag otherwise.
func (o Overrides) EffectiveTag() (naming.ImageTag, error) {
	if o.Tag == "" {
		return naming.DefaultTag, nil
	}
	tag := naming.ImageTag(o.Tag)
	if err := tag.Validate(); err != nil {
		return "", err
	}
	return tag, nil
}
