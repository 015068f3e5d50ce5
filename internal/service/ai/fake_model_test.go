package ai

import (
	"context"
	"sync"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

type fakeChatModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	inputs   [][]*schema.Message
	common   []*model.Options
	sampling []*samplingOptions
}

func (f *fakeChatModel) Generate(_ context.Context, input []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	common, sampling := resolveOptions(opts)

	f.mu.Lock()
	f.inputs = append(f.inputs, input)
	f.common = append(f.common, common)
	f.sampling = append(f.sampling, sampling)
	f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(ctx context.Context, input []*schema.Message, opts ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	msg, err := f.Generate(ctx, input, opts...)
	if err != nil {
		return nil, err
	}
	return schema.StreamReaderFromArray([]*schema.Message{msg}), nil
}

func (f *fakeChatModel) lastPrompt() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		return ""
	}
	msgs := f.inputs[len(f.inputs)-1]
	return msgs[len(msgs)-1].Content
}
