package ai

import (
	"fmt"

	"github.com/cloudwego/eino/schema"
)

// eventStream is the iterator shape shared by the OpenAI and Anthropic SDK streams.
type eventStream[T any] interface {
	Next() bool
	Current() T
	Err() error
	Close() error
}

// pipeText forwards the text deltas of stream as assistant message chunks.
// The first event is read before returning so that a rejected request is
// reported as an error instead of an empty stream.
func pipeText[T any](provider string, stream eventStream[T], text func(T) string) (*schema.StreamReader[*schema.Message], error) {
	if !stream.Next() {
		err := stream.Err()
		_ = stream.Close()
		if err != nil {
			return nil, fmt.Errorf("%s api error: %w", provider, err)
		}
		return schema.StreamReaderFromArray([]*schema.Message{}), nil
	}

	sr, sw := schema.Pipe[*schema.Message](8)
	go func() {
		defer sw.Close()
		defer stream.Close()

		for ok := true; ok; ok = stream.Next() {
			delta := text(stream.Current())
			if delta == "" {
				continue
			}
			if closed := sw.Send(schema.AssistantMessage(delta, nil), nil); closed {
				return
			}
		}
		if err := stream.Err(); err != nil {
			sw.Send(nil, fmt.Errorf("%s api error: %w", provider, err))
		}
	}()
	return sr, nil
}
