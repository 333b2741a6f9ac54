// SPDX-License-Identifier: MPL-2.0

package orchestrate

import (
	"os"
	"path/filepath"
	"testing"

	"stevedore-cli/internal/naming"
)

func TestLoadOverrides_MissingFileIsZeroValue(t *testing.T) {
	o, err := LoadOverrides(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Skip || o.Tag != "" {
		t.Errorf("expected zero value, got %+v", o)
	}
}

func TestLoadOverrides_ParsesFields(t *testing.T) {
	dir := t.TempDir()
	content := "tag = \"v1.4.2\"\nskip = true\n"
	if err := os.WriteFile(filepath.Join(dir, OverrideFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	o, err := LoadOverrides(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o.Tag != "v1.4.2" || !o.Skip {
		t.Errorf("expected tag v1.4.2 and skip, got %+v", o)
	}
}

func TestLoadOverrides_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, OverrideFileName), []byte("tag = [\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOverrides(dir); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

func TestOverrides_EffectiveTag(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		want    naming.ImageTag
		wantErr bool
	}{
		{name: "empty uses default", tag: "", want: naming.DefaultTag},
		{name: "override wins", tag: "v2.0.0", want: "v2.0.0"},
		{name: "invalid tag rejected", tag: "v2 beta", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Overrides{Tag: tt.tag}.EffectiveTag()
			if (err != nil) != tt.wantErr {
				t.Fatalf("EffectiveTag() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("EffectiveTag() = %q, want %q", got, tt.want)
			}
		})
	}
}
