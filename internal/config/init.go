package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# iconbuilder configuration
icon_sets:
  - id: fa
    name: Font Awesome
    files: vendor-icons/fa/svgs/**/*.svg
    prefix: Fa
    project_url: https://fontawesome.com/
    license: CC BY 4.0 License
    license_url: https://creativecommons.org/licenses/by/4.0/
    source:
      url: https://github.com/FortAwesome/Font-Awesome.git
      branch: master
      depth: 1
  - id: fi
    name: Feather
    files: vendor-icons/fi/icons/*.svg
    prefix: Fi
    project_url: https://feathericons.com/
    license: MIT
    license_url: https://github.com/feathericons/feather/blob/master/LICENSE
    source:
      url: https://github.com/feathericons/feather.git

output:
  directory: ./icons

vendor:
  directory: ./vendor-icons

# Uncomment to record build history:
# history:
#   path: ./iconbuilder-history.db
`

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
