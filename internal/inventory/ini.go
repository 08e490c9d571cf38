package inventory

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/ini.v1"
)

// Group is one inventory group and the hosts it contains.
type Group struct {
	Name  string
	Hosts []string
}

// Groups parses an INI-format inventory file and returns its groups with
// their hosts. Hosts outside any group section are reported under
// "ungrouped"; ":vars" and ":children" sections are skipped since they do not
// list hosts directly.
func Groups(path string) ([]Group, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		AllowBooleanKeys:         true,
		SkipUnrecognizableLines:  true,
		SpaceBeforeInlineComment: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("parsing inventory %s: %w", path, err)
	}

	var groups []Group
	for _, section := range cfg.Sections() {
		name := section.Name()
		if strings.HasSuffix(name, ":vars") || strings.HasSuffix(name, ":children") {
			continue
		}
		if name == ini.DefaultSection {
			name = "ungrouped"
		}
		if len(section.Keys()) == 0 {
			continue
		}

		group := Group{Name: name}
		for _, key := range section.Keys() {
			// A host line may carry inline variables ("web1 ansible_host=...");
			// only the first field names the host.
			host := strings.Fields(key.Name())
			if len(host) > 0 {
				group.Hosts = append(group.Hosts, host[0])
			}
		}
		sort.Strings(group.Hosts)
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups, nil
}
