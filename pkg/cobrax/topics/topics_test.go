package topics

import (
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"manifest.md":         {Data: []byte("# Manifest\n\nThe wtsetup.toml format.")},
		"path.txt":            {Data: []byte("How PATH maintenance works.")},
		"option-dry-run.md":   {Data: []byte("# --dry-run\n\nPreview without changing anything.")},
		"notes/ignored.rst":   {Data: []byte("unsupported extension")},
		"nested/uninstall.md": {Data: []byte("# Uninstall\n\nRemoval details.")},
	}
}

func newManager(t *testing.T) *TopicManager {
	t.Helper()
	tm := New(testFS())
	require.NoError(t, tm.scanTopics())
	return tm
}

func TestScanTopics(t *testing.T) {
	tm := newManager(t)

	names := tm.ListTopics()
	assert.ElementsMatch(t, []string{"manifest", "path", "option-dry-run", "uninstall"}, names)
}

func TestScanSkipsUnsupportedExtensions(t *testing.T) {
	tm := newManager(t)

	_, exists := tm.GetTopic("ignored")
	assert.False(t, exists)
}

func TestGetTopic(t *testing.T) {
	tm := newManager(t)

	topic, exists := tm.GetTopic("manifest")
	require.True(t, exists)
	assert.Equal(t, "manifest", topic.Name)
	assert.Contains(t, topic.Content, "wtsetup.toml")
}

func TestGetTopicFlagStyle(t *testing.T) {
	tm := newManager(t)

	// --dry-run resolves through the option- prefix.
	topic, exists := tm.GetTopic("--dry-run")
	require.True(t, exists)
	assert.Equal(t, "option-dry-run", topic.Name)

	topic, exists = tm.GetTopic("dry-run")
	require.True(t, exists)
	assert.Equal(t, "option-dry-run", topic.Name)
}

func TestGetTopicMissing(t *testing.T) {
	tm := newManager(t)

	_, exists := tm.GetTopic("nope")
	assert.False(t, exists)
}

func TestNilFilesystem(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func TestCustomExtensions(t *testing.T) {
	tm := NewWithOptions(testFS(), Options{Extensions: []string{".txt"}})
	require.NoError(t, tm.scanTopics())

	assert.ElementsMatch(t, []string{"path"}, tm.ListTopics())
}

func TestInitializeAddsHelpCommand(t *testing.T) {
	root := &cobra.Command{Use: "wtsetup"}
	require.NoError(t, Initialize(root, testFS()))

	var helpCmd *cobra.Command
	for _, c := range root.Commands() {
		if c.Name() == "help" {
			helpCmd = c
		}
	}
	require.NotNil(t, helpCmd)

	completions, directive := helpCmd.ValidArgsFunction(root, nil, "")
	assert.Contains(t, completions, "topics")
	assert.Contains(t, completions, "manifest")
	assert.Equal(t, cobra.ShellCompDirectiveNoFileComp, directive)
}

func TestPlainRendererPassthrough(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "raw", r.Render("raw", ".md"))
}

func TestGlamourRendererNonMarkdownPassthrough(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
}
