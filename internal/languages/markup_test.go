package languages

import (
	"testing"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkupExtractor(t *testing.T) {
	src := `<import src="../../templates/item.wxml"/>
<include src="/templates/header.wxml" />
<wxs src="./format.wxs" module="fmt"></wxs>
<!-- <include src="./commented.wxml" /> -->
<view class="page" wx:if="{{ready}}">
  <image src="/images/logo.png" mode="aspectFit"></image>
  <image src="{{item.avatar}}"></image>
  <image src="/images/{{name}}.png"></image>
  <image src="https://cdn.example.com/banner.png"></image>
  <image src="data:image/png;base64,AAAA"></image>
  <cover-image src="./cover.jpg"></cover-image>
  <text src="./not-a-reference.png">hello</text>
</view>
`
	refs, err := NewMarkupExtractor().Extract("/p/pages/index/index.wxml", []byte(src))
	require.NoError(t, err)

	got := map[string]parser.ReferenceKind{}
	for _, ref := range refs.References {
		got[ref.Path] = ref.Kind
	}
	assert.Equal(t, map[string]parser.ReferenceKind{
		"../../templates/item.wxml": parser.RefTemplate,
		"/templates/header.wxml":    parser.RefTemplate,
		"./format.wxs":              parser.RefImport,
		"/images/logo.png":          parser.RefResource,
		"./cover.jpg":               parser.RefResource,
	}, got)
}

func TestMarkupExtractor_PlaceholderOnly(t *testing.T) {
	refs, err := NewMarkupExtractor().Extract("/p/a.wxml", []byte(`<include src="{{tpl}}"/>`))
	require.NoError(t, err)
	assert.Empty(t, refs.References)
}
