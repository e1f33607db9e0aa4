package integration

import (
	"context"

	"supportdesk/internal/infrastructure/gateway"
)

type mockGateway struct {
	SaveHelpdeskConfigFunc func(ctx context.Context, body gateway.HelpdeskConfigRequest) gateway.Result
	SaveCRMConfigFunc      func(ctx context.Context, body gateway.CRMConfigRequest) gateway.Result

	helpdeskCalls int
	crmCalls      int
}

func (m *mockGateway) SaveHelpdeskConfig(ctx context.Context, body gateway.HelpdeskConfigRequest) gateway.Result {
	m.helpdeskCalls++
	if m.SaveHelpdeskConfigFunc != nil {
		return m.SaveHelpdeskConfigFunc(ctx, body)
	}
	return gateway.Result{Success: true, StatusCode: 200, Data: []byte(`{"message":"saved"}`)}
}

func (m *mockGateway) SaveCRMConfig(ctx context.Context, body gateway.CRMConfigRequest) gateway.Result {
	m.crmCalls++
	if m.SaveCRMConfigFunc != nil {
		return m.SaveCRMConfigFunc(ctx, body)
	}
	return gateway.Result{Success: true, StatusCode: 200, Data: []byte(`{"message":"saved"}`)}
}
