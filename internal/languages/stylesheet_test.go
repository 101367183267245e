package languages

import (
	"testing"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStylesheetExtractor(t *testing.T) {
	src := `@import "../../styles/common.wxss";
@import url("/styles/theme.wxss");
/* @import "./commented.wxss"; */
.banner {
  width: 750rpx;
  background-image: url("/images/bg.png");
}
.icon {
  background: url('./icon.png') no-repeat;
}
.remote {
  background: url("https://cdn.example.com/a.png");
}
.inline {
  background: url("data:image/svg+xml;utf8,<svg></svg>");
}
`
	refs, err := NewStylesheetExtractor().Extract("/p/pages/index/index.wxss", []byte(src))
	require.NoError(t, err)

	got := map[string]parser.ReferenceKind{}
	for _, ref := range refs.References {
		got[ref.Path] = ref.Kind
	}
	assert.Equal(t, map[string]parser.ReferenceKind{
		"../../styles/common.wxss": parser.RefStyle,
		"/styles/theme.wxss":       parser.RefStyle,
		"/images/bg.png":           parser.RefResource,
		"./icon.png":               parser.RefResource,
	}, got)
}

func TestStylesheetExtractor_Empty(t *testing.T) {
	refs, err := NewStylesheetExtractor().Extract("/p/app.wxss", []byte(""))
	require.NoError(t, err)
	assert.Empty(t, refs.References)
}

func TestStylesheetExtractor_SassModuleRules(t *testing.T) {
	src := `@use "theme";
@use 'mixins/buttons' as btn;
@use "sass:math";
@forward "tokens" show $primary;
/* @use "commented"; */
.banner {
  background: url(/assets/bg.png);
}
`
	refs, err := NewStylesheetExtractor().Extract("/p/styles/app.scss", []byte(src))
	require.NoError(t, err)

	got := map[string]parser.ReferenceKind{}
	for _, ref := range refs.References {
		got[ref.Path] = ref.Kind
	}
	assert.Equal(t, map[string]parser.ReferenceKind{
		"theme":          parser.RefStyle,
		"mixins/buttons": parser.RefStyle,
		"tokens":         parser.RefStyle,
		"/assets/bg.png": parser.RefResource,
	}, got)
}
