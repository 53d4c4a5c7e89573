package assistant

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

// TokenCounter measures prompt size so transcripts can be bounded before
// they reach the model.
type TokenCounter interface {
	Count(text string) int
}

type tiktokenCounter struct {
	once sync.Once
	enc  *tiktoken.Tiktoken
}

func NewTokenCounter() TokenCounter {
	return &tiktokenCounter{}
}

func (c *tiktokenCounter) Count(text string) int {
	c.once.Do(func() {
		// Best effort: the encoding may be unavailable offline.
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			c.enc = enc
		}
	})

	if c.enc != nil {
		return len(c.enc.Encode(text, nil, nil))
	}
	// Rough BPE estimate when the encoding could not be loaded.
	return (len(text) + 3) / 4
}
