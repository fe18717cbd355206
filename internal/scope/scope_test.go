package scope_test

import (
	"testing"

	"bennypowers.dev/cssvars/internal/scope"
	"bennypowers.dev/cssvars/internal/stylesheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample builds:
//
//	.a { --x: 1; .b { color: var(--x) } }
//	@media print { .c { } }
//	@import "x.css";
func sample() (root, a, b, media, c, use *stylesheet.Node) {
	root = stylesheet.NewRoot()
	a = stylesheet.NewRule(".a")
	b = stylesheet.NewRule(".b")
	media = stylesheet.NewAtRule("media", "print")
	c = stylesheet.NewRule(".c")
	use = stylesheet.NewDeclaration("color", "var(--x)")
	imp := &stylesheet.Node{Type: stylesheet.AtRuleNode, Name: "import", Params: `"x.css"`}

	b.Append(use)
	a.Append(stylesheet.NewDeclaration("--x", "1"), b)
	media.Append(c)
	root.Append(a, media, imp)
	return
}

func TestBuildMirrorsNesting(t *testing.T) {
	root, a, b, media, c, use := sample()

	tree, err := scope.Build(root)
	require.NoError(t, err)
	for _, container := range []*stylesheet.Node{a, b, media, c} {
		_, ok := tree.Of(container)
		assert.True(t, ok, "%s has a scope", container.Type)
	}
	_, ok := tree.Of(root.Nodes[2])
	assert.False(t, ok, "@import has no block and no scope")

	rootID := tree.Root()
	assert.Equal(t, scope.None, tree.Parent(rootID))

	aID, ok := tree.Of(a)
	require.True(t, ok)
	bID, _ := tree.Of(b)
	mediaID, _ := tree.Of(media)
	cID, _ := tree.Of(c)

	assert.Equal(t, rootID, tree.Parent(aID))
	assert.Equal(t, aID, tree.Parent(bID))
	assert.Equal(t, rootID, tree.Parent(mediaID))
	assert.Equal(t, mediaID, tree.Parent(cID))
	assert.Equal(t, []scope.ID{aID, mediaID}, tree.Get(rootID).Children)

	useScope, ok := tree.Enclosing(use)
	require.True(t, ok)
	assert.Equal(t, bID, useScope)
}

func TestLookupShadowing(t *testing.T) {
	root, a, b, _, c, _ := sample()
	tree, err := scope.Build(root)
	require.NoError(t, err)

	aID, _ := tree.Of(a)
	bID, _ := tree.Of(b)
	cID, _ := tree.Of(c)

	tree.Declare(tree.Root(), &scope.Variable{Name: "--x", Raw: "red"})
	tree.Declare(aID, &scope.Variable{Name: "--x", Raw: "blue"})

	v, ok := tree.Lookup("--x", bID)
	require.True(t, ok)
	assert.Equal(t, "blue", v.Raw)
	assert.Equal(t, aID, v.Scope)

	v, ok = tree.Lookup("--x", cID)
	require.True(t, ok)
	assert.Equal(t, "red", v.Raw)

	_, ok = tree.Lookup("--missing", bID)
	assert.False(t, ok)
}

func TestDeclareLastWins(t *testing.T) {
	root := stylesheet.NewRoot()
	tree, err := scope.Build(root)
	require.NoError(t, err)

	tree.Declare(tree.Root(), &scope.Variable{Name: "--x", Raw: "1"})
	tree.Declare(tree.Root(), &scope.Variable{Name: "--x", Raw: "2"})

	v, ok := tree.Lookup("--x", tree.Root())
	require.True(t, ok)
	assert.Equal(t, "2", v.Raw)
}

func TestBuildRejectsCorruptTree(t *testing.T) {
	t.Run("broken parent link", func(t *testing.T) {
		root := stylesheet.NewRoot()
		rule := stylesheet.NewRule(".a")
		root.Append(rule)
		rule.Parent = nil

		_, err := scope.Build(root)
		assert.ErrorIs(t, err, scope.ErrCorruptTree)
	})

	t.Run("declaration with children", func(t *testing.T) {
		root := stylesheet.NewRoot()
		decl := stylesheet.NewDeclaration("color", "red")
		root.Append(decl)
		decl.Nodes = []*stylesheet.Node{stylesheet.NewComment("/* x */")}

		_, err := scope.Build(root)
		assert.ErrorIs(t, err, scope.ErrCorruptTree)
	})

	t.Run("non-container root", func(t *testing.T) {
		_, err := scope.Build(stylesheet.NewDeclaration("a", "b"))
		assert.ErrorIs(t, err, scope.ErrCorruptTree)
	})
}
