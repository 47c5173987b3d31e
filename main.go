// Command workflow-mcp runs the AI Workflow Continuity MCP server.
package main

import (
	"os"

	"workflow-mcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
