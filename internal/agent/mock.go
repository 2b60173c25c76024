package agent

import "context"

// MockExchanger permite tests sin un webhook real.
type MockExchanger struct {
	Reply    TurnReply
	Err      error
	LastReq  TurnRequest
	SendFunc func(ctx context.Context, req TurnRequest) (TurnReply, error)
}

func (m *MockExchanger) Send(ctx context.Context, req TurnRequest) (TurnReply, error) {
	m.LastReq = req
	if m.SendFunc != nil {
		return m.SendFunc(ctx, req)
	}
	return m.Reply, m.Err
}
