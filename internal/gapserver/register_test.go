package gapserver

import (
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "test", Version: "0"}, nil)
	if got := RegisterTools(server); got != 7 {
		t.Errorf("RegisterTools registered %d tools, want 7", got)
	}
}
