package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMaxVersion(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{
			name:       "empty candidate list yields sentinel",
			candidates: nil,
			want:       "0.0.0",
		},
		{
			name:       "single candidate",
			candidates: []string{"5.1-6ubuntu1"},
			want:       "5.1-6ubuntu1",
		},
		{
			name:       "ubuntu revision ordering",
			candidates: []string{"5.1-6ubuntu1", "5.1-6ubuntu1.1", "5.1-6"},
			want:       "5.1-6ubuntu1.1",
		},
		{
			name:       "epoch dominates upstream version",
			candidates: []string{"2.31-0ubuntu9", "1:1.0-1"},
			want:       "1:1.0-1",
		},
		{
			name:       "order of candidates is irrelevant",
			candidates: []string{"2.31-0ubuntu9.9", "2.31-0ubuntu9", "2.31-0ubuntu9.2"},
			want:       "2.31-0ubuntu9.9",
		},
		{
			name:       "tilde sorts before release",
			candidates: []string{"1.0~rc1-1", "1.0-1"},
			want:       "1.0-1",
		},
		{
			name:       "unparseable candidate contributes nothing",
			candidates: []string{"not a version", "5.1-6ubuntu1"},
			want:       "5.1-6ubuntu1",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MaxVersion(tt.candidates))
		})
	}
}

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "greater", a: "5.1-6ubuntu1", b: "5.0-6", want: 1},
		{name: "less", a: "5.0-6", b: "5.1-6ubuntu1", want: -1},
		{name: "equal", a: "5.0-6", b: "5.0-6", want: 0},
		{name: "epoch wins", a: "1:0.1", b: "9.9", want: 1},
		{name: "parse error compares equal", a: "garbage version", b: "1.0", want: 0},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareVersions(tt.a, tt.b))
		})
	}
}
