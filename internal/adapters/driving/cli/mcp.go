package cli

import (
	"fmt"
	"net"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/askdocs/internal/adapters/driving/mcp"
)

var mcpPort int

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Expose askdocs to AI assistants",
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Model Context Protocol server",
	Long: `Run askdocs as a Model Context Protocol server.

The server speaks JSON-RPC on stdin/stdout unless --port is given, in
which case it serves the streamable HTTP transport on that port.

Tools:     ask, add_url, list_documents, get_document, delete_document, history
Resources: askdocs://documents, askdocs://documents/{id}

With --server, add_url is unavailable and the other tools act on the
remote instance.

Register with an assistant by running "askdocs mcp serve" as its command.`,
	Example: `  askdocs mcp serve
  askdocs mcp serve --port 8090`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntVarP(&mcpPort, "port", "p", 0, "serve HTTP on this port instead of stdio")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	ports := &mcp.Ports{
		Query:     queryService,
		Documents: documentService,
		History:   historyService,
	}
	if !remote() {
		ports.Ingest = ingestService
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}
	if mcpPort <= 0 {
		return server.Run(cmd.Context())
	}

	addr := net.JoinHostPort("", strconv.Itoa(mcpPort))
	fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
	return server.RunHTTP(cmd.Context(), addr)
}
