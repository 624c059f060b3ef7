package binder_test

import (
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/reqkit/pkg/binder"
	"github.com/dmitrymomot/reqkit/pkg/message"
)

func TestFiles(t *testing.T) {
	t.Parallel()

	avatar := message.NewUploadedFile(&multipart.FileHeader{Filename: "me.png", Size: 10})
	g1 := message.NewUploadedFile(&multipart.FileHeader{Filename: "1.jpg"})
	g2 := message.NewUploadedFile(&multipart.FileHeader{Filename: "2.jpg"})
	files := map[string][]*message.UploadedFile{
		"avatar":  {avatar},
		"gallery": {g1, g2},
	}

	type upload struct {
		Avatar   *message.UploadedFile   `file:"avatar"`
		Raw      *multipart.FileHeader   `file:"avatar"`
		Gallery  []*message.UploadedFile `file:"gallery"`
		Headers  []*multipart.FileHeader `file:"gallery"`
		Missing  *message.UploadedFile   `file:"missing"`
		Skipped  *message.UploadedFile   `file:"-"`
		Untagged *message.UploadedFile
	}

	var in upload
	require.NoError(t, binder.Files(&in, files))

	assert.Same(t, avatar, in.Avatar)
	assert.Same(t, avatar.FileHeader(), in.Raw)
	assert.Equal(t, []*message.UploadedFile{g1, g2}, in.Gallery)
	require.Len(t, in.Headers, 2)
	assert.Equal(t, "2.jpg", in.Headers[1].Filename)
	assert.Nil(t, in.Missing)
	assert.Nil(t, in.Skipped)
	assert.Nil(t, in.Untagged)
}

func TestFilesErrors(t *testing.T) {
	t.Parallel()

	files := map[string][]*message.UploadedFile{
		"doc": {message.NewUploadedFile(&multipart.FileHeader{Filename: "a.txt"})},
	}

	var wrong struct {
		Doc string `file:"doc"`
	}
	err := binder.Files(&wrong, files)
	assert.ErrorIs(t, err, binder.ErrFailedToBindFiles)
	assert.Contains(t, err.Error(), "field Doc")

	assert.ErrorIs(t, binder.Files(nil, files), binder.ErrInvalidTarget)
}
