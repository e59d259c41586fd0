package blob

import (
	"context"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUniqueFileName(t *testing.T) {
	pattern := regexp.MustCompile(`^[a-z0-9-]+-\d+-[a-f0-9]{8}\.jpg$`)

	name := uniqueFileName("My Summer Photo!.JPG")
	assert.Regexp(t, pattern, name)
	assert.True(t, strings.HasPrefix(name, "my-summer-photo-"), "got %q", name)

	// Two calls for the same input must not collide.
	assert.NotEqual(t, uniqueFileName("cut.jpg"), uniqueFileName("cut.jpg"))
}

func TestUniqueFileName_Edges(t *testing.T) {
	// No extension.
	name := uniqueFileName("avatar")
	assert.True(t, strings.HasPrefix(name, "avatar-"), "got %q", name)
	assert.False(t, strings.Contains(name, "."), "got %q", name)

	// Nothing survives sanitization.
	name = uniqueFileName("!!!.png")
	assert.True(t, strings.HasPrefix(name, "file-"), "got %q", name)

	// Long names are truncated.
	name = uniqueFileName(strings.Repeat("a", 80) + ".png")
	base := name[:strings.Index(name, "-1")]
	assert.LessOrEqual(t, len(base), 50)
}

func TestSigner_Disabled(t *testing.T) {
	s := NewDisabled(testLogger())
	require.False(t, s.Enabled())

	_, err := s.PresignUpload(context.Background(), "photo.jpg", FolderBarbers, "image/jpeg")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.PresignDownload(context.Background(), "barbers/photo.jpg")
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = s.Exists(context.Background(), "barbers/photo.jpg")
	assert.ErrorIs(t, err, ErrNotConfigured)

	assert.ErrorIs(t, s.Delete(context.Background(), "barbers/photo.jpg"), ErrNotConfigured)
}

func TestSigner_Exists_MissingKey(t *testing.T) {
	cfg := Config{
		Region:          "us-east-1",
		Bucket:          "papus-test",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}
	s, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	_, err = s.Exists(context.Background(), "")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotConfigured)
}

func TestNew_MissingSettings(t *testing.T) {
	_, err := New(context.Background(), Config{Region: "us-east-1"}, testLogger())
	require.Error(t, err)
}

func TestSigner_PresignUpload_Validation(t *testing.T) {
	cfg := Config{
		Region:          "us-east-1",
		Bucket:          "papus-test",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}
	s, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)
	require.True(t, s.Enabled())

	_, err = s.PresignUpload(context.Background(), "  ", FolderBarbers, "image/jpeg")
	assert.Error(t, err)

	_, err = s.PresignUpload(context.Background(), "photo.jpg", "etc", "image/jpeg")
	assert.Error(t, err)
}

func TestSigner_PresignUpload(t *testing.T) {
	cfg := Config{
		Region:          "us-east-1",
		Bucket:          "papus-test",
		AccessKeyID:     "AKIAEXAMPLE",
		SecretAccessKey: "secret",
	}
	s, err := New(context.Background(), cfg, testLogger())
	require.NoError(t, err)

	// Presigning is a pure signature computation, no network round trip.
	up, err := s.PresignUpload(context.Background(), "fade example.png", FolderHaircuts, "image/png")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.Key, "haircuts/fade-example-"), "got %q", up.Key)
	assert.Contains(t, up.URL, "papus-test")
	assert.Contains(t, up.URL, "X-Amz-Signature")
}
