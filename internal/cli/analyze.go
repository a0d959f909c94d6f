package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"figma-node-tree/internal/models"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:3000"

func newAnalyzeCommand() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "analyze <figma-url> [depth]",
		Short: "Analyze a Figma URL using a running HTTP server",
		Args:  cobra.RangeArgs(1, 2),
		// Client mode needs neither the API key nor server configuration.
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, args []string) error {
			req := models.AnalyzeRequest{FigmaURL: args[0]}
			if len(args) == 2 {
				depth, err := strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("invalid depth %q: %w", args[1], err)
				}
				req.Depth = &depth
			}
			if serverURL == "" {
				serverURL = os.Getenv("MCP_SERVER_URL")
			}
			if serverURL == "" {
				serverURL = defaultServerURL
			}
			return runAnalyze(cmd.Context(), http.DefaultClient, serverURL, req, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "server base URL (env MCP_SERVER_URL, default "+defaultServerURL+")")
	return cmd
}

func runAnalyze(ctx context.Context, client *http.Client, serverURL string, req models.AnalyzeRequest, out io.Writer) error {
	fmt.Fprintf(out, "Analyzing Figma URL: %s\n", req.FigmaURL)

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(serverURL, "/")+"/analyze", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp models.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("error analyzing Figma file: %s", errResp.Error)
		}
		return fmt.Errorf("error analyzing Figma file: server returned status %d", resp.StatusCode)
	}

	var result models.AnalyzeResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	tree, err := json.MarshalIndent(result.Tree, "", "  ")
	if err != nil {
		return err
	}

	color.New(color.FgGreen, color.Bold).Fprintln(out, "Analysis complete!")
	label := color.New(color.FgCyan)
	label.Fprint(out, "File ID: ")
	fmt.Fprintln(out, result.FileID)
	label.Fprint(out, "Node ID: ")
	fmt.Fprintln(out, result.NodeID)
	label.Fprintln(out, "Node Tree:")
	fmt.Fprintln(out, string(tree))
	return nil
}
