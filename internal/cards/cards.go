package cards

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrEmptyPool = errors.New("card pool is empty")
	ErrBlankCard = errors.New("card pool contains a blank card")
)

//go:embed default.json
var defaultPool []byte

// Prompt is the shared fill-in-the-blank card of a round.
type Prompt struct {
	Text string `json:"text"`
	Pick int    `json:"pick"`
}

// Pool is the static card content every room draws from.
type Pool struct {
	Prompts []Prompt `json:"prompts"`
	Answers []string `json:"answers"`
}

// Default returns the embedded pool.
func Default() (*Pool, error) {
	return Parse(bytes.NewReader(defaultPool))
}

// Load reads a JSON pool from path, or the embedded pool when path is empty.
func Load(path string) (*Pool, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open card pool: %w", err)
	}
	defer f.Close()
	p, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func Parse(r io.Reader) (*Pool, error) {
	var p Pool
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return nil, fmt.Errorf("decode card pool: %w", err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}

// Validate rejects pools the game cannot run on. A prompt pick below one is
// treated as one.
func (p *Pool) Validate() error {
	if len(p.Prompts) == 0 || len(p.Answers) == 0 {
		return ErrEmptyPool
	}
	for i := range p.Prompts {
		if strings.TrimSpace(p.Prompts[i].Text) == "" {
			return fmt.Errorf("prompt %d: %w", i, ErrBlankCard)
		}
		if p.Prompts[i].Pick < 1 {
			p.Prompts[i].Pick = 1
		}
	}
	for i, a := range p.Answers {
		if strings.TrimSpace(a) == "" {
			return fmt.Errorf("answer %d: %w", i, ErrBlankCard)
		}
	}
	return nil
}
