package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# sitedata configuration
site:
  base_url: https://example.com
  name: Example Site
  language: en

content:
  dir: content

output:
  dir: public
  clean: true

# Artifacts are on by default; disable individually:
# artifacts:
#   news_sitemap: false
#   cname: false

feed:
  title: Example Site
  description: Updates from Example Site
  ttl: 60
  max_items: 20

state:
  path: .sitedata/state.db

watch:
  debounce_ms: 300
  # schedule: "0 * * * *"

# events:
#   url: nats://localhost:4222
#   subject: sitedata.build.completed

# metrics:
#   listen: :9090
`

// Init writes an example configuration file. It refuses to overwrite an
// existing file unless force is set.
func Init(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", path)
	}
	return os.WriteFile(path, []byte(exampleConfig), 0o644)
}
