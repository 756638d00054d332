package robots

import (
	"net/url"
	"strconv"
	"strings"
)

// rule is one Allow/Disallow path entry within a group.
type rule struct {
	path    string
	allowed bool
}

// group is the directive set for one or more User-agent lines.
type group struct {
	agents     []string
	rules      []rule
	crawlDelay float64 // seconds; 0 means unspecified
}

// document is a parsed robots.txt: the group list in file order, the way
// Python's RobotFileParser walks them to find the most specific match.
type document struct {
	groups []group
}

// parseRobotsTxt implements the subset of the robots.txt grammar this
// module needs: User-agent/Allow/Disallow/Crawl-delay lines, grouped the
// standard way (consecutive User-agent lines share one group; the group
// ends at the next User-agent line that follows a non-user-agent
// directive). There is no robotstxt-equivalent library anywhere in the
// examples pack, so this mirrors Python's urllib.robotparser by hand.
func parseRobotsTxt(body string) *document {
	doc := &document{}
	var current *group

	lines := strings.Split(body, "\n")
	sawDirectiveSinceAgent := false

	for _, line := range lines {
		line = stripComment(line)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		field, value, ok := splitDirective(line)
		if !ok {
			continue
		}

		switch strings.ToLower(field) {
		case "user-agent":
			if current == nil || sawDirectiveSinceAgent {
				doc.groups = append(doc.groups, group{})
				current = &doc.groups[len(doc.groups)-1]
				sawDirectiveSinceAgent = false
			}
			current.agents = append(current.agents, value)
		case "allow", "disallow":
			if current == nil {
				continue
			}
			if value != "" || strings.ToLower(field) == "allow" {
				current.rules = append(current.rules, rule{path: value, allowed: strings.ToLower(field) == "allow"})
			} else {
				// A bare "Disallow:" with no path means allow everything.
				current.rules = append(current.rules, rule{path: "", allowed: true})
			}
			sawDirectiveSinceAgent = true
		case "crawl-delay":
			if current == nil {
				continue
			}
			if d, err := strconv.ParseFloat(value, 64); err == nil {
				current.crawlDelay = d
			}
			sawDirectiveSinceAgent = true
		default:
			// Sitemap and any other directive is ignored but still closes
			// the current user-agent block per the grammar.
			if current != nil {
				sawDirectiveSinceAgent = true
			}
		}
	}

	return doc
}

func stripComment(line string) string {
	if i := strings.Index(line, "#"); i >= 0 {
		return line[:i]
	}
	return line
}

func splitDirective(line string) (field, value string, ok bool) {
	i := strings.Index(line, ":")
	if i < 0 {
		return "", "", false
	}
	return strings.TrimSpace(line[:i]), strings.TrimSpace(line[i+1:]), true
}

// canFetch applies standard robots.txt precedence: select the most
// specific matching group (exact user-agent over "*"), then within that
// group the longest matching path rule wins; Allow wins ties. No matching
// rule means allowed. path may be a full URL, in which case only its path
// component is matched against the rules.
func (d *document) canFetch(userAgent, path string) bool {
	if u, err := url.Parse(path); err == nil && u.Scheme != "" {
		path = u.EscapedPath()
		if path == "" {
			path = "/"
		}
	}
	g := d.selectGroup(userAgent)
	if g == nil {
		return true
	}

	bestLen := -1
	allowed := true
	for _, r := range g.rules {
		if !strings.HasPrefix(path, r.path) {
			continue
		}
		if len(r.path) > bestLen || (len(r.path) == bestLen && r.allowed) {
			bestLen = len(r.path)
			allowed = r.allowed
		}
	}
	return allowed
}

func (d *document) selectGroup(userAgent string) *group {
	ua := strings.ToLower(userAgent)

	var wildcard *group
	for i := range d.groups {
		g := &d.groups[i]
		for _, a := range g.agents {
			al := strings.ToLower(a)
			if al == ua {
				return g
			}
			if al == "*" && wildcard == nil {
				wildcard = g
			}
		}
	}
	return wildcard
}

func (d *document) crawlDelay(userAgent string) (float64, bool) {
	g := d.selectGroup(userAgent)
	if g == nil || g.crawlDelay == 0 {
		return 0, false
	}
	return g.crawlDelay, true
}
