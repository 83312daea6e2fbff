package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
icon_sets:
  - id: fa
    name: Font Awesome
    files: icons/fa/*.svg
    prefix: Fa
    project_url: https://fontawesome.com/
    license: CC BY 4.0 License
    license_url: https://creativecommons.org/licenses/by/4.0/
    source:
      url: https://example.com/fa.git
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "./icons", cfg.Output.Directory)
	assert.Equal(t, "./vendor-icons", cfg.Vendor.Directory)
	require.Len(t, cfg.IconSets, 1)
	assert.Equal(t, "main", cfg.IconSets[0].Source.Branch)
	assert.Empty(t, cfg.History.Path, "history is opt-in")
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("ICONS_OUT", "/tmp/generated")
	path := writeConfig(t, `
icon_sets:
  - id: fi
    name: Feather
    files: icons/fi/*.svg
output:
  directory: ${ICONS_OUT}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/generated", cfg.Output.Directory)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"empty", Config{}, false},
		{"missing id", Config{IconSets: []IconSet{{Name: "x", Files: "*.svg"}}}, false},
		{"missing files", Config{IconSets: []IconSet{{ID: "x", Name: "x"}}}, false},
		{"duplicate id", Config{IconSets: []IconSet{
			{ID: "fa", Files: "a/*.svg"},
			{ID: "fa", Files: "b/*.svg"},
		}}, false},
		{"valid", Config{IconSets: []IconSet{{ID: "fa", Files: "a/*.svg"}}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestFormatterFunc(t *testing.T) {
	var set IconSet
	assert.Nil(t, set.FormatterFunc(), "no prefix/suffix means the pascal name is used directly")

	set.Prefix = "Fa"
	require.NotNil(t, set.FormatterFunc())
	assert.Equal(t, "FaArrowLeft", set.FormatterFunc()("ArrowLeft"))

	set.Formatter = func(s string) string { return "Custom" + s }
	assert.Equal(t, "CustomArrowLeft", set.FormatterFunc()("ArrowLeft"), "programmatic formatter wins")
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Init(path, false))

	// The example config must itself load cleanly.
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.IconSets)

	// Refuses to overwrite without force.
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))
}
