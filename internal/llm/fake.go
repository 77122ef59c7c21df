package llm

import (
	"context"
	"encoding/json"
)

// FakeClient replays scripted responses in order. For offline use and tests.
type FakeClient struct {
	Responses []json.RawMessage
	Err       error
	next      int
}

func (f *FakeClient) Name() string { return "FakeLLM" }
func (f *FakeClient) Close() error { return nil }

func (f *FakeClient) GenerateJSON(_ context.Context, _ string, _ any) (json.RawMessage, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	if f.next >= len(f.Responses) {
		return nil, ErrInvalidJSON
	}
	out := f.Responses[f.next]
	f.next++
	return out, nil
}
