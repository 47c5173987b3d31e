package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// methodNotFoundError marks an unrecognized top-level JSON-RPC method. It is
// the only failure that stays HTTP 200 on the wire.
type methodNotFoundError struct {
	method string
}

func (e *methodNotFoundError) Error() string {
	return "Method not found: " + e.method
}

// handleMCP decodes the JSON-RPC envelope, dispatches, and maps handler
// errors to wire codes in one place. Anything other than an unknown method
// becomes -32603 with HTTP 500.
func (s *Server) handleMCP(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.log.Error("mcp request body unreadable", "error", err)
		s.writeRPCError(w, http.StatusInternalServerError, "2.0", nil, codeInternalError, err.Error())
		return
	}

	jsonrpc := req.JSONRPC
	if jsonrpc == "" {
		jsonrpc = "2.0"
	}
	s.log.Info("mcp request", "rpc_method", req.Method, "request_id", middleware.GetReqID(r.Context()))

	result, err := s.dispatch(req.Method, req.Params)
	if err != nil {
		var notFound *methodNotFoundError
		if errors.As(err, &notFound) {
			s.writeRPCError(w, http.StatusOK, jsonrpc, req.ID, codeMethodNotFound, err.Error())
			return
		}
		s.log.Error("mcp call failed", "rpc_method", req.Method, "error", err)
		s.writeRPCError(w, http.StatusInternalServerError, jsonrpc, req.ID, codeInternalError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, rpcResponse{JSONRPC: jsonrpc, ID: req.ID, Result: result})
}

// dispatch routes a JSON-RPC method to its handler. The method set is
// closed; anything else is a protocol error.
func (s *Server) dispatch(method string, params json.RawMessage) (any, error) {
	switch method {
	case "initialize":
		return map[string]any{
			"protocolVersion": protocolVersion,
			"capabilities":    map[string]any{"tools": map[string]any{}},
			"serverInfo":      serverInfo(),
		}, nil
	case "tools/list":
		return map[string]any{"tools": toolList}, nil
	case "tools/call":
		var p callParams
		if len(params) > 0 {
			if err := json.Unmarshal(params, &p); err != nil {
				return nil, fmt.Errorf("invalid tools/call params: %w", err)
			}
		}
		return s.callTool(p.Name, p.Arguments)
	default:
		return nil, &methodNotFoundError{method: method}
	}
}

func (s *Server) writeRPCError(w http.ResponseWriter, status int, jsonrpc string, id json.RawMessage, code int, message string) {
	writeJSON(w, status, rpcResponse{
		JSONRPC: jsonrpc,
		ID:      id,
		Error:   &rpcError{Code: code, Message: message},
	})
}
