// Package cli implements the one-shot send mode: build a request from flags,
// dispatch it once, print the classified result, and exit.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/studiowebux/reqview/internal/config"
	"github.com/studiowebux/reqview/internal/executor"
	"github.com/studiowebux/reqview/internal/filter"
	"github.com/studiowebux/reqview/internal/format"
	"github.com/studiowebux/reqview/internal/types"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// RunOptions contains the flag values for a single send
type RunOptions struct {
	URL          string
	Method       string
	Body         string   // inline body, or @path to read from a file
	Headers      []string // "Name: Value" pairs from repeated -H flags
	CertFile     string
	OutputFormat string // text, json, yaml, body ("" = auto-detect)
	Filter       string // JMESPath expression applied to the response body
	Insecure     bool
	NoFollow     bool
	ShowFull     bool
}

// Run dispatches a single request built from opts and prints the result
func Run(opts RunOptions) error {
	settings, err := config.LoadOrDefault()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	req, err := buildRequest(opts, settings)
	if err != nil {
		return err
	}

	if opts.Filter != "" {
		if err := filter.Validate(opts.Filter); err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Ctrl+C cancels the in-flight request
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	go func() {
		<-sigChan
		fmt.Fprintln(os.Stderr, "\nRequest cancelled by user")
		cancel()
	}()

	result := executor.Execute(ctx, req, &executor.Options{
		Timeout:            settings.Timeout(),
		InsecureSkipVerify: opts.Insecure || settings.InsecureSkipVerify,
		FollowRedirects:    settings.FollowRedirects && !opts.NoFollow,
	})

	if opts.Filter != "" && result.Body != "" {
		filtered, err := filter.Apply(result.Body, opts.Filter)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: filter error: %v\n", err)
		} else {
			result.Body = filtered
			result.JSON = nil
		}
	}

	output, err := formatOutput(result, outputFormat(opts), opts.ShowFull)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	fmt.Print(output)

	// Non-zero exit for anything a script would treat as a failure
	if (result.Error != nil && result.Error.Kind.Fatal()) || result.Status >= 400 {
		os.Exit(1)
	}
	return nil
}

// buildRequest turns flag values into a dispatchable request
func buildRequest(opts RunOptions, settings *config.Settings) (*types.Request, error) {
	if strings.TrimSpace(opts.URL) == "" {
		return nil, fmt.Errorf("a URL is required")
	}

	method := strings.ToUpper(opts.Method)
	if method == "" {
		method = settings.DefaultMethod
	}

	body, err := resolveBody(opts.Body)
	if err != nil {
		return nil, err
	}

	headers := make(map[string]string)
	for k, v := range settings.DefaultHeaders {
		headers[k] = v
	}
	for _, raw := range opts.Headers {
		name, value, err := parseHeader(raw)
		if err != nil {
			return nil, err
		}
		headers[name] = value
	}

	return &types.Request{
		Method:   method,
		URL:      strings.TrimSpace(opts.URL),
		Body:     body,
		Headers:  headers,
		CertFile: opts.CertFile,
	}, nil
}

// resolveBody returns the body text. "@path" reads the file; a .jsonc
// extension additionally strips comments and trailing commas. "-" reads
// stdin, matching curl.
func resolveBody(body string) (string, error) {
	switch {
	case body == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read body from stdin: %w", err)
		}
		return string(data), nil

	case strings.HasPrefix(body, "@"):
		path := body[1:]
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read body file: %w", err)
		}
		if strings.EqualFold(filepath.Ext(path), ".jsonc") {
			data = jsonc.ToJSON(data)
		}
		return string(data), nil

	default:
		return body, nil
	}
}

// parseHeader splits a "Name: Value" flag into its parts
func parseHeader(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, ":")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("invalid header %q (expected \"Name: Value\")", raw)
	}
	return name, strings.TrimSpace(value), nil
}

// outputFormat picks the format: explicit flag, else "body" when piped,
// "text" on a terminal.
func outputFormat(opts RunOptions) string {
	if opts.OutputFormat != "" {
		return opts.OutputFormat
	}
	stat, _ := os.Stdout.Stat()
	if (stat.Mode() & os.ModeCharDevice) == 0 {
		return "body"
	}
	return "text"
}

// formatOutput renders the result in the requested format
func formatOutput(result *types.Result, outFormat string, showFull bool) (string, error) {
	switch outFormat {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil

	case "yaml":
		data, err := yaml.Marshal(result)
		if err != nil {
			return "", err
		}
		return string(data), nil

	case "body":
		if result.JSON != nil {
			return format.PrettyJSON(result.JSON, result.Body) + "\n", nil
		}
		if result.Body == "" {
			return "", nil
		}
		return result.Body + "\n", nil

	case "text", "":
		return formatText(result, showFull), nil

	default:
		return "", fmt.Errorf("unknown output format %q (expected text, json, yaml or body)", outFormat)
	}
}

func formatText(result *types.Result, showFull bool) string {
	var sb strings.Builder

	if result.NoResponse() {
		fmt.Fprintf(&sb, "%sRequest failed%s\n", colorRed, colorReset)
	} else {
		fmt.Fprintf(&sb, "%s%s%s\n", statusColor(result.Status), result.StatusText, colorReset)
		fmt.Fprintf(&sb, "Duration: %s | Size: %s\n",
			format.Duration(result.Duration),
			format.Size(result.ResponseSize))
	}

	if showFull && len(result.Headers) > 0 {
		sb.WriteString("\nHeaders:\n")
		for _, h := range result.Headers {
			fmt.Fprintf(&sb, "  %s: %s\n", h.Name, h.Value)
		}
	}

	if body := visibleBody(result); body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}

	if result.Error != nil {
		fmt.Fprintf(&sb, "\n%s%s: %s%s\n", colorRed, result.Error.Kind, result.Error.Message, colorReset)
		if result.Error.Details != "" {
			sb.WriteString(result.Error.Details)
			sb.WriteString("\n")
		}
	}
	if result.Explanation != "" {
		fmt.Fprintf(&sb, "\n%s%s%s\n", colorYellow, result.Explanation, colorReset)
	}
	if result.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s\n", result.Notes)
	}

	return sb.String()
}

func visibleBody(result *types.Result) string {
	if result.JSON != nil {
		return format.PrettyJSON(result.JSON, result.Body)
	}
	return result.Body
}

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

func statusColor(status int) string {
	switch {
	case executor.IsSuccessStatus(status):
		return colorGreen
	case status >= 400:
		return colorRed
	}
	return colorYellow
}
