// SPDX-License-Identifier: MPL-2.0

package discovery

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/invowk/modrename/pkg/types"
)

// InfoFileSuffix is appended to a module name to form its info file name.
const InfoFileSuffix = ".info.yml"

// InfoFile holds the fields of a module's info file the locator reads.
// Unknown keys are ignored.
type InfoFile struct {
	Name                   string   `yaml:"name"`
	Type                   string   `yaml:"type"`
	Description            string   `yaml:"description"`
	Package                string   `yaml:"package"`
	CoreVersionRequirement string   `yaml:"core_version_requirement"`
	Dependencies           []string `yaml:"dependencies"`
}

// InfoFileName returns the info file name for a module.
func InfoFileName(name types.ModuleName) string {
	return string(name) + InfoFileSuffix
}

// IsModule reports whether the info file describes a module. An unset type
// is accepted, since older and hand-written info files often omit it.
func (f InfoFile) IsModule() bool {
	return f.Type == "" || f.Type == "module"
}

// ParseInfoFile reads and decodes an info file.
func ParseInfoFile(path types.FilesystemPath) (InfoFile, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return InfoFile{}, err
	}
	var info InfoFile
	if err := yaml.Unmarshal(data, &info); err != nil {
		return InfoFile{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return info, nil
}
