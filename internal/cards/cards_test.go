package cards

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	assert.NotEmpty(t, p.Prompts)
	assert.NotEmpty(t, p.Answers)
	for _, pr := range p.Prompts {
		assert.GreaterOrEqual(t, pr.Pick, 1, pr.Text)
	}
}

func TestParse_NormalisesPick(t *testing.T) {
	p, err := Parse(strings.NewReader(`{"prompts":[{"text":"Why ____?"}],"answers":["because"]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, p.Prompts[0].Pick)
}

func TestParse_Errors(t *testing.T) {
	testCases := []struct {
		desc string
		body string
		want error
	}{
		{desc: "no prompts", body: `{"prompts":[],"answers":["a"]}`, want: ErrEmptyPool},
		{desc: "no answers", body: `{"prompts":[{"text":"x","pick":1}]}`, want: ErrEmptyPool},
		{desc: "blank answer", body: `{"prompts":[{"text":"x","pick":1}],"answers":["  "]}`, want: ErrBlankCard},
		{desc: "blank prompt", body: `{"prompts":[{"text":"","pick":1}],"answers":["a"]}`, want: ErrBlankCard},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.body))
			assert.ErrorIs(t, err, tc.want)
		})
	}

	_, err := Parse(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pool.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"prompts":[{"text":"A ____ B ____","pick":2}],"answers":["x","y"]}`), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, p.Prompts[0].Pick)
	assert.Equal(t, []string{"x", "y"}, p.Answers)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
