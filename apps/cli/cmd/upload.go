package cmd

import (
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/objkit/objkit/packages/transport"
)

const (
	// watchDebounceDelay is the debounce delay for file watch events
	watchDebounceDelay = 300 * time.Millisecond
)

var (
	uploadMethodFlag       string
	uploadBinaryFlag       bool
	uploadUpsertFlag       bool
	uploadCacheControlFlag string
	uploadHeaderFlags      []string
	uploadWatchFlag        bool
	uploadNoColorFlag      bool
	uploadVerboseFlag      bool
)

var uploadCmd = &cobra.Command{
	Use:   "upload <url> <file>",
	Short: "Upload a file as a multipart request",
	Long: `Upload a file to a storage endpoint as a multipart request.

The content type is derived from the file's extension (or sniffed from
its content). With --binary the file bytes are sent without a filename
and the content type is guessed from the destination URL instead.

Examples:
  objkit upload https://storage.example.com/object/bucket/a.png ./a.png
  objkit upload /object/bucket/a.png ./a.png --upsert
  objkit upload /object/bucket/data ./blob --binary --cache-control no-cache
  objkit upload /object/bucket/app.css ./app.css --watch`,
	Args: cobra.ExactArgs(2),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadMethodFlag, "method", "X", "POST", "HTTP method: POST or PUT")
	uploadCmd.Flags().BoolVar(&uploadBinaryFlag, "binary", false, "Send raw bytes without a filename")
	uploadCmd.Flags().BoolVar(&uploadUpsertFlag, "upsert", false, "Overwrite the object if it exists")
	uploadCmd.Flags().StringVar(&uploadCacheControlFlag, "cache-control", "3600", "Value for the cacheControl field")
	uploadCmd.Flags().StringArrayVarP(&uploadHeaderFlags, "header", "H", nil, `Request header, "Key: Value" (repeatable)`)
	uploadCmd.Flags().BoolVarP(&uploadWatchFlag, "watch", "w", false, "Re-upload whenever the file changes")
	uploadCmd.Flags().BoolVar(&uploadNoColorFlag, "no-color", false, "Disable colored output")
	uploadCmd.Flags().BoolVarP(&uploadVerboseFlag, "verbose", "v", false, "Verbose output")
}

func runUpload(cmd *cobra.Command, args []string) error {
	method := strings.ToUpper(uploadMethodFlag)
	if method != http.MethodPost && method != http.MethodPut {
		return fmt.Errorf("unsupported upload method %q, use POST or PUT", uploadMethodFlag)
	}

	rc, err := newRunContext(uploadNoColorFlag, uploadVerboseFlag)
	if err != nil {
		return err
	}
	defer rc.close()

	headers, err := parseHeaders(uploadHeaderFlags)
	if err != nil {
		return err
	}

	url := rc.resolveURL(args[0])
	path := args[1]
	fileOpts := transport.FileOptions{
		CacheControl: uploadCacheControlFlag,
		Upsert:       uploadUpsertFlag,
	}
	opts := &transport.FetchOptions{Headers: headers}

	upload := func() *transport.Result {
		start := time.Now()
		res := doUpload(cmd, rc, method, url, path, fileOpts, opts)
		duration := time.Since(start)
		rc.record(method, url, res, duration)
		rc.out.FormatResult(method, url, res, duration)
		return res
	}

	res := upload()
	if !uploadWatchFlag {
		if res.HasError() {
			os.Exit(ExitCallFailure)
		}
		return nil
	}

	return watchAndReupload(cmd, rc, path, upload)
}

func doUpload(cmd *cobra.Command, rc *runContext, method, url, path string, fileOpts transport.FileOptions, opts *transport.FetchOptions) *transport.Result {
	if uploadBinaryFlag {
		data, err := os.ReadFile(path)
		if err != nil {
			return &transport.Result{Err: &transport.StorageError{Message: err.Error()}}
		}
		if method == http.MethodPut {
			return rc.exec.PutBinary(cmd.Context(), url, data, fileOpts, opts)
		}
		return rc.exec.PostBinary(cmd.Context(), url, data, fileOpts, opts)
	}

	file, err := os.Open(path)
	if err != nil {
		return &transport.Result{Err: &transport.StorageError{Message: err.Error()}}
	}
	defer file.Close()

	if method == http.MethodPut {
		return rc.exec.PutFile(cmd.Context(), url, file, fileOpts, opts)
	}
	return rc.exec.PostFile(cmd.Context(), url, file, fileOpts, opts)
}

// watchAndReupload re-runs upload whenever the file changes, until
// interrupted.
func watchAndReupload(cmd *cobra.Command, rc *runContext, path string, upload func() *transport.Result) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace files instead of writing
	// in place, which drops a watch on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", path)

	target, _ := filepath.Abs(path)
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			abs, _ := filepath.Abs(event.Name)
			if abs != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounceDelay, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			upload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			rc.out.FormatError(err)
		}
	}
}
