package ai

import (
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/compose"

	"github.com/ayanpandit/PrepTera/internal/config"
)

// samplingOptions carries knobs that eino's common options do not model.
type samplingOptions struct {
	TopK *int
}

// WithTopK limits sampling to the k most likely tokens. Providers without
// top-k support ignore it.
func WithTopK(k int) model.Option {
	return model.WrapImplSpecificOptFn(func(o *samplingOptions) {
		o.TopK = &k
	})
}

func resolveOptions(opts []model.Option) (*model.Options, *samplingOptions) {
	common := model.GetCommonOptions(&model.Options{}, opts...)
	sampling := model.GetImplSpecificOptions(&samplingOptions{}, opts...)
	return common, sampling
}

// chainOptions turns generation params into per-invoke chain options.
func chainOptions(p config.GenerationParams) []compose.Option {
	opts := []model.Option{
		model.WithTemperature(p.Temperature),
		model.WithTopP(p.TopP),
		model.WithMaxTokens(p.MaxTokens),
	}
	if p.TopK > 0 {
		opts = append(opts, WithTopK(p.TopK))
	}
	return []compose.Option{compose.WithChatModelOption(opts...)}
}
