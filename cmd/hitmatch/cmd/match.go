package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/go-hit-matcher/internal/engine"
	"github.com/gcbaptista/go-hit-matcher/model"
)

// newMatchCmd creates the match command, which runs one request without a server.
func newMatchCmd(configPath *string) *cobra.Command {
	var file string
	var text bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match a single request read from a file or stdin",
		Long: `Read a JSON match request, run it and print the JSON response.

The request has the same shape as the body of POST /match, or of
POST /match/text when --text is set.`,
		Example: `  hitmatch match --file request.json
  echo '{"matcher":"sequence","length":2,...}' | hitmatch match`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := cmd.InOrStdin()
			if file != "" {
				f, err := os.Open(file)
				if err != nil {
					return fmt.Errorf("failed to open request: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runMatch(cmd.Context(), *configPath, in, cmd.OutOrStdout(), text)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the request from this file instead of stdin")
	cmd.Flags().BoolVar(&text, "text", false, "Treat the request as a text match request")

	return cmd
}

func runMatch(ctx context.Context, configPath string, in io.Reader, out io.Writer, text bool) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	matchEngine, err := engine.NewEngine(cfg.Matcher, 1)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	defer matchEngine.Stop()

	var resp any
	if text {
		var req model.TextMatchRequest
		if err := json.NewDecoder(in).Decode(&req); err != nil {
			return fmt.Errorf("failed to decode request: %w", err)
		}
		resp, err = matchEngine.MatchText(ctx, req)
	} else {
		var req model.MatchRequest
		if err := json.NewDecoder(in).Decode(&req); err != nil {
			return fmt.Errorf("failed to decode request: %w", err)
		}
		resp, err = matchEngine.Match(ctx, req)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
