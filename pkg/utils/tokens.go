package utils

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// the BPE ranks are downloaded on first use, so load them once
var encoding = sync.OnceValues(func() (*tiktoken.Tiktoken, error) {
	return tiktoken.EncodingForModel("gpt-4-0613")
})

func NumTokens(text string) (int, error) {
	tkm, err := encoding()
	if err != nil {
		return 0, err
	}

	return len(tkm.Encode(text, nil, nil)), nil
}
