package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/objkit/objkit/packages/core/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a starter " + config.Filename + " to the current directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}

		path := filepath.Join(cwd, config.Filename)
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists", path)
		}

		if err := os.WriteFile(path, []byte(starterConfig), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
		return nil
	},
}

func configFileHint() string {
	return config.Filename
}

const starterConfig = `# objkit configuration
service_url: https://storage.example.com
headers:
  Authorization: Bearer ${OBJKIT_SERVICE_KEY}
timeout_ms: 30000
# follow_redirects: true
# max_redirects: 10
# validate_ssl: true
# proxy: http://localhost:8080
# request_ids: false
# history_path: ${HOME}/.objkit-history.db
# no_color: false
# verbose: false
`
