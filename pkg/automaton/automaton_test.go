package automaton

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name  string
		words []string
		text  string
		want  []string
	}{
		{
			name:  "nested words sharing a prefix",
			words: []string{"ab", "abc"},
			text:  "xabcx",
			want:  []string{"ab", "abc"},
		},
		{
			name:  "case insensitive",
			words: []string{"Secret"},
			text:  "TOP SECRET file",
			want:  []string{"secret"},
		},
		{
			name:  "overlapping",
			words: []string{"aba", "bab"},
			text:  "ababa",
			want:  []string{"aba", "bab"},
		},
		{
			name:  "chinese",
			words: []string{"赌博", "博彩"},
			text:  "禁止赌博彩票",
			want:  []string{"博彩", "赌博"},
		},
		{
			name:  "repeated occurrences reported once",
			words: []string{"x"},
			text:  "xxx",
			want:  []string{"x"},
		},
		{
			name:  "no match",
			words: []string{"abc"},
			text:  "ab",
			want:  nil,
		},
		{
			name:  "blank words ignored",
			words: []string{"", "  "},
			text:  "anything",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Build(tt.words)
			res := a.Detect(tt.text)
			assert.Equal(t, tt.want, res.Words)
			assert.Equal(t, len(tt.want) > 0, res.HasMatch)
		})
	}
}

func TestDetect_Idempotent(t *testing.T) {
	a := Build([]string{"ab", "abc", "bc"})
	first := a.Detect("zabcabc")
	second := a.Detect("zabcabc")
	assert.Equal(t, first, second)

	reordered := Build([]string{"bc", "abc", "ab"})
	assert.Equal(t, first, reordered.Detect("zabcabc"))
}

func TestDetect_Concurrent(t *testing.T) {
	a := Build([]string{"ab", "abc"})
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"ab", "abc"}, a.Scan("xabcx"))
		}()
	}
	wg.Wait()
}

func TestBuild_Len(t *testing.T) {
	assert.Equal(t, 2, Build([]string{"a", "A", "b", ""}).Len())
	var nilA *Automaton
	assert.Equal(t, 0, nilA.Len())
	assert.Nil(t, nilA.Scan("abc"))
}

func TestReadWords(t *testing.T) {
	words, err := ReadWords(strings.NewReader("\ufeff赌博\n\n  毒品 \r\nfoo\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"赌博", "毒品", "foo"}, words)
}

func TestLoadWordFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb\n"), 0o600))

	words, err := LoadWordFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)

	_, err = LoadWordFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestInitGet(t *testing.T) {
	reset()
	t.Cleanup(reset)

	_, ok := Get()
	assert.False(t, ok)

	a, err := Init([]string{"foo"})
	require.NoError(t, err)

	got, ok := Get()
	require.True(t, ok)
	assert.Same(t, a, got)

	again, err := Init([]string{"bar"})
	assert.ErrorIs(t, err, ErrInitialized)
	assert.Same(t, a, again)
	assert.Equal(t, []string{"foo"}, again.Scan("foobar"))
}
