package languages

import (
	"testing"

	"github.com/chess99/mp-lens-sub000/internal/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func refPaths(refs []parser.Reference) []string {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		out = append(out, ref.Path)
	}
	return out
}

func TestScriptExtractor_JavaScript(t *testing.T) {
	src := `import a from './a'
import { b } from "../b.js"
import './side-effect'
export * from './reexport'
export { c } from './c'
const util = require('../../utils/util.js')
const name = './dynamic-' + x
const dyn = require(name)
const lazy = import('./lazy')
const tpl = require(` + "`./tpl`" + `)
const tplDyn = require(` + "`./tpl-${x}`" + `)
// require('./commented')
const s = "require('./in-string')"
const remote = require('https://cdn.example.com/x.js')
require('./a', 'extra')
`
	refs, err := NewScriptExtractor().Extract("/p/pages/index/index.js", []byte(src))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		"./a",
		"../b.js",
		"./side-effect",
		"./reexport",
		"./c",
		"../../utils/util.js",
		"./lazy",
		"./tpl",
	}, refPaths(refs.References))
	assert.False(t, refs.AmbientOnly)
	for _, ref := range refs.References {
		assert.Equal(t, parser.RefImport, ref.Kind)
		assert.Greater(t, ref.Line, 0)
	}
}

// Type-only imports and exports have no runtime effect and are not counted
// as usage of the imported file. An import whose specifiers are all inline
// "type" is type-only too; one value specifier makes it a real import.
func TestScriptExtractor_TypeOnlyImportsExcluded(t *testing.T) {
	src := `import type { User } from './types/user'
import { type Order, createOrder } from './order'
import { type Profile, type Role } from './types/profile'
export type { Cart } from './types/cart'
export { type Coupon } from './types/coupon'
import service = require('./service')
import data from './data.json'

export function run(u: User): void {}
`
	refs, err := NewScriptExtractor().Extract("/p/app.ts", []byte(src))
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"./order", "./service", "./data.json"}, refPaths(refs.References))
	assert.False(t, refs.AmbientOnly)
}

func TestScriptExtractor_WXS(t *testing.T) {
	src := `var fmt = require('./format.wxs');
module.exports = { fmt: fmt };
`
	refs, err := NewScriptExtractor().Extract("/p/utils/index.wxs", []byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"./format.wxs"}, refPaths(refs.References))
}

func TestScriptExtractor_AmbientDeclarations(t *testing.T) {
	ex := NewScriptExtractor()

	globals := `// global typings
declare const wx: WechatMiniprogram.Wx
interface IAppOption {
  globalData: Record<string, unknown>
}
type Maybe<T> = T | null
`
	refs, err := ex.Extract("/p/typings/globals.ts", []byte(globals))
	require.NoError(t, err)
	assert.True(t, refs.AmbientOnly)

	augment := `declare global {
  interface IAppOption {
    globalData: Record<string, unknown>
  }
}
export {}
`
	refs, err = ex.Extract("/p/typings/augment.ts", []byte(augment))
	require.NoError(t, err)
	assert.True(t, refs.AmbientOnly, "declare global is visible from a module file")

	local, err := ex.Extract("/p/types/local.ts", []byte("export {}\ninterface OnlyHere {}\n"))
	require.NoError(t, err)
	assert.False(t, local.AmbientOnly, "declarations in a module file are module scoped")

	dts, err := ex.Extract("/p/typings/wx.d.ts", []byte(`import './x'`))
	require.NoError(t, err)
	assert.True(t, dts.AmbientOnly, ".d.ts files are always ambient")

	exported, err := ex.Extract("/p/types/user.ts", []byte("export interface User { id: string }\n"))
	require.NoError(t, err)
	assert.False(t, exported.AmbientOnly, "exported types must be imported")

	code, err := ex.Extract("/p/utils/math.ts", []byte("export interface P { x: number }\nexport const add = (a: number, b: number) => a + b\n"))
	require.NoError(t, err)
	assert.False(t, code.AmbientOnly)

	empty, err := ex.Extract("/p/empty.ts", []byte("// nothing here\n"))
	require.NoError(t, err)
	assert.False(t, empty.AmbientOnly)
}

func TestDefaultRegistryRoutesByExtension(t *testing.T) {
	r := NewDefaultRegistry()
	cases := map[string]string{
		"a.js":   "script",
		"a.ts":   "script",
		"a.wxs":  "script",
		"a.wxml": "markup",
		"a.wxss": "stylesheet",
		"a.less": "stylesheet",
	}
	for file, format := range cases {
		e, ok := r.ExtractorForFile(file)
		require.True(t, ok, file)
		assert.Equal(t, format, e.Format(), file)
	}
	_, ok := r.ExtractorForFile("app.json")
	assert.False(t, ok, "manifests are handled by the structure builder")
}
