package metrics

import (
	"sync"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
	tiktoken_loader "github.com/pkoukk/tiktoken-go-loader"
)

const fallbackEncoding = "cl100k_base"

// BPE ranks come from the embedded loader so counting never touches the
// network.
func init() {
	tiktoken.SetBpeLoader(tiktoken_loader.NewOfflineLoader())
}

// encoders caches one entry per model, including failed loads, so a model
// is resolved at most once per process.
var encoders sync.Map // model -> *encoderEntry

type encoderEntry struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

// EstimateTokens counts the tokens text would occupy for model. Unknown
// models use cl100k_base; if no encoding can be loaded it degrades to
// roughly four bytes per token.
func EstimateTokens(model, text string) int {
	if text == "" {
		return 0
	}
	if enc := encoderFor(model); enc != nil {
		return len(enc.Encode(text, nil, nil))
	}
	return approximateTokens(text)
}

func encoderFor(model string) *tiktoken.Tiktoken {
	v, _ := encoders.LoadOrStore(model, &encoderEntry{})
	entry := v.(*encoderEntry)
	entry.once.Do(func() {
		enc, err := tiktoken.EncodingForModel(model)
		if err != nil {
			enc, err = tiktoken.GetEncoding(fallbackEncoding)
			if err != nil {
				return
			}
		}
		entry.enc = enc
	})
	return entry.enc
}

func approximateTokens(text string) int {
	n := len(text) / 4
	if n == 0 && utf8.RuneCountInString(text) > 0 {
		return 1
	}
	return n
}
