package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteTitle(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		want        string
		wantChanged bool
	}{
		{
			name:        "replaces first title",
			content:     "# Template\n\nSome text.\n",
			want:        "# my-app\n\nSome text.\n",
			wantChanged: true,
		},
		{
			name:        "keeps other headings",
			content:     "Intro\n# Template\n## Setup\n# Second\n",
			want:        "Intro\n# my-app\n## Setup\n# Second\n",
			wantChanged: true,
		},
		{
			name:        "already titled",
			content:     "# my-app\n\nbody\n",
			want:        "# my-app\n\nbody\n",
			wantChanged: false,
		},
		{
			name:        "crlf line endings",
			content:     "# Template\r\nbody\r\n",
			want:        "# my-app\r\nbody\r\n",
			wantChanged: true,
		},
		{
			name:        "no trailing newline",
			content:     "# Template",
			want:        "# my-app",
			wantChanged: true,
		},
		{
			name:        "heading inside code fence is ignored",
			content:     "```sh\n# comment\n```\n# Template\n",
			want:        "```sh\n# comment\n```\n# my-app\n",
			wantChanged: true,
		},
		{
			name:        "tilde line does not close a backtick fence",
			content:     "```\n~~~\n# comment\n```\n# Template\n",
			want:        "```\n~~~\n# comment\n```\n# my-app\n",
			wantChanged: true,
		},
		{
			name:        "shorter marker does not close a fence",
			content:     "````md\n```\n# comment\n````\n# Template\n",
			want:        "````md\n```\n# comment\n````\n# my-app\n",
			wantChanged: true,
		},
		{
			name:        "closing fence with info string is content",
			content:     "~~~\n~~~ sh\n# comment\n~~~\n# Template\n",
			want:        "~~~\n~~~ sh\n# comment\n~~~\n# my-app\n",
			wantChanged: true,
		},
		{
			name:        "indented code is not a heading",
			content:     "    # code\n",
			want:        "# my-app\n\n    # code\n",
			wantChanged: true,
		},
		{
			name:        "no title prepends one",
			content:     "Just text.\n",
			want:        "# my-app\n\nJust text.\n",
			wantChanged: true,
		},
		{
			name:        "empty file",
			content:     "",
			want:        "# my-app\n",
			wantChanged: true,
		},
		{
			name:        "hashtag is not a heading",
			content:     "#hashtag\n# Real\n",
			want:        "#hashtag\n# my-app\n",
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := RewriteTitle([]byte(tt.content), "my-app")
			assert.Equal(t, tt.want, string(got))
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestRewriteTitleIdempotent(t *testing.T) {
	first, changed := RewriteTitle([]byte("# Django Starter\n\nText\n"), "shop")
	assert.True(t, changed)

	second, changed := RewriteTitle(first, "shop")
	assert.False(t, changed)
	assert.Equal(t, first, second)
}

func TestNewReadme(t *testing.T) {
	assert.Equal(t, "# shop\n", string(NewReadme("shop", "")))
	assert.Equal(t, "# shop\n\n## Overview\n\nA store\n", string(NewReadme("shop", "A store")))
}
