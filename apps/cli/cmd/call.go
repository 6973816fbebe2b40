package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/objkit/objkit/packages/schema"
	"github.com/objkit/objkit/packages/transport"
)

// newCallCmd builds one of the JSON call commands (get/post/put/delete).
func newCallCmd(method string) *cobra.Command {
	var (
		headerFlags []string
		dataFlag    string
		rawFlag     bool
		schemaFlag  string
		noColorFlag bool
		verboseFlag bool
	)

	withBody := method != http.MethodGet
	use := strings.ToLower(method) + " <url>"
	short := fmt.Sprintf("Issue a %s request", method)

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rc, err := newRunContext(noColorFlag, verboseFlag)
			if err != nil {
				return err
			}
			defer rc.close()

			headers, err := parseHeaders(headerFlags)
			if err != nil {
				return err
			}

			var body any
			if withBody && dataFlag != "" {
				body, err = parseData(dataFlag)
				if err != nil {
					return err
				}
			}

			url := rc.resolveURL(args[0])
			opts := &transport.FetchOptions{Headers: headers, NoResolveJSON: rawFlag}

			start := time.Now()
			var res *transport.Result
			switch method {
			case http.MethodGet:
				res = rc.exec.Get(cmd.Context(), url, opts)
			case http.MethodPost:
				res = rc.exec.Post(cmd.Context(), url, body, opts)
			case http.MethodPut:
				res = rc.exec.Put(cmd.Context(), url, body, opts)
			case http.MethodDelete:
				res = rc.exec.Delete(cmd.Context(), url, body, opts)
			}
			duration := time.Since(start)

			rc.record(method, url, res, duration)
			rc.out.FormatResult(method, url, res, duration)

			if res.HasError() {
				os.Exit(ExitCallFailure)
			}

			if schemaFlag != "" && !rawFlag {
				doc, err := json.Marshal(res.Data)
				if err != nil {
					return err
				}
				report, err := schema.ValidateFile(doc, schemaFlag)
				if err != nil {
					return err
				}
				rc.out.FormatSchemaReport(report)
				if !report.Valid {
					os.Exit(ExitCallFailure)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&headerFlags, "header", "H", nil, `Request header, "Key: Value" (repeatable)`)
	if withBody {
		cmd.Flags().StringVarP(&dataFlag, "data", "d", "", "JSON request body, or @file to read it from disk")
	}
	cmd.Flags().BoolVar(&rawFlag, "raw", false, "Return the raw response body instead of decoding JSON")
	cmd.Flags().StringVar(&schemaFlag, "schema", "", "Validate the response data against a JSON Schema file")
	cmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")

	return cmd
}

// parseData decodes a --data value: inline JSON, or @path to read a file.
func parseData(flag string) (any, error) {
	raw := []byte(flag)
	if strings.HasPrefix(flag, "@") {
		data, err := os.ReadFile(strings.TrimPrefix(flag, "@"))
		if err != nil {
			return nil, fmt.Errorf("reading body file: %w", err)
		}
		raw = data
	}

	var body any
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("request body is not valid JSON: %w", err)
	}
	return body, nil
}
