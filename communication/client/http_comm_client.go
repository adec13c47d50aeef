package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"tictactoe/communication"
	"tictactoe/game"
)

// AgentError is a non-200 answer from the agent server.
type AgentError struct {
	StatusCode int
	Message    string
}

func (e *AgentError) Error() string {
	return fmt.Sprintf("agent returned %d: %s", e.StatusCode, e.Message)
}

type ClientCommunicator struct {
	serverURL  string
	httpClient *http.Client
}

// NewClientCommunicator initializes and returns a new ClientCommunicator.
func NewClientCommunicator(serverURL string) *ClientCommunicator {
	return &ClientCommunicator{
		serverURL:  strings.TrimRight(serverURL, "/"),
		httpClient: &http.Client{},
	}
}

func (cc *ClientCommunicator) FindMove(ctx context.Context, board game.Board, depth int) (communication.FindMoveResponse, error) {
	var resp communication.FindMoveResponse

	data, err := json.Marshal(communication.NewFindMoveRequest(board, depth))
	if err != nil {
		return resp, fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cc.serverURL+"/findmove", bytes.NewReader(data))
	if err != nil {
		return resp, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	if err := cc.do(req, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

func (cc *ClientCommunicator) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cc.serverURL+"/healthz", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return cc.do(req, nil)
}

func (cc *ClientCommunicator) do(req *http.Request, out any) error {
	res, err := cc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach agent: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var e communication.ErrorResponse
		_ = json.NewDecoder(res.Body).Decode(&e)
		return &AgentError{StatusCode: res.StatusCode, Message: e.Error}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
