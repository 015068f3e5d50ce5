package voice

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

// TextInput reads typed answers. Each non-blank line extends the current
// answer and a blank line submits it.
type TextInput struct {
	r     io.Reader
	once  sync.Once
	lines chan string
}

// NewTextInput reads answers from r.
func NewTextInput(r io.Reader) *TextInput {
	return &TextInput{r: r, lines: make(chan string)}
}

func (t *TextInput) scan() {
	scanner := bufio.NewScanner(t.r)
	for scanner.Scan() {
		t.lines <- scanner.Text()
	}
	close(t.lines)
}

// Listen implements Listener. At end of input any pending text is submitted
// and the channel is closed.
func (t *TextInput) Listen(ctx context.Context) (<-chan Transcript, error) {
	t.once.Do(func() { go t.scan() })

	out := make(chan Transcript)
	go func() {
		defer close(out)

		var parts []string
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.lines:
				if !ok {
					if len(parts) > 0 {
						send(ctx, out, Transcript{Text: strings.Join(parts, "\n"), Final: true})
					}
					return
				}
				if strings.TrimSpace(line) == "" {
					send(ctx, out, Transcript{Text: strings.Join(parts, "\n"), Final: true})
					return
				}
				parts = append(parts, line)
				if !send(ctx, out, Transcript{Text: strings.Join(parts, "\n")}) {
					return
				}
			}
		}
	}()
	return out, nil
}

// TextOutput "speaks" by writing each utterance as a line.
type TextOutput struct {
	mu sync.Mutex
	w  io.Writer
}

// NewTextOutput writes utterances to w.
func NewTextOutput(w io.Writer) *TextOutput {
	return &TextOutput{w: w}
}

// Speak implements Speaker.
func (o *TextOutput) Speak(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	_, err := fmt.Fprintln(o.w, text)
	return err
}
