package frontmatterops

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/vaultsync/internal/frontmatter"
)

func TestComputeFingerprint_StableAndContentSensitive(t *testing.T) {
	doc1, err := frontmatter.Extract([]byte("---\nshare: true\n---\nBody\n"))
	require.NoError(t, err)
	doc2, err := frontmatter.Extract([]byte("---\nshare: true\n---\nBody\n"))
	require.NoError(t, err)
	doc3, err := frontmatter.Extract([]byte("---\nshare: true\n---\nOther body\n"))
	require.NoError(t, err)

	fp := ComputeFingerprint(doc1)
	require.NotEmpty(t, fp)
	require.Equal(t, fp, ComputeFingerprint(doc2))
	require.NotEqual(t, fp, ComputeFingerprint(doc3))
}
