package domain

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validUploadReq() UploadVideoReq {
	return UploadVideoReq{
		Title:       "My Holiday",
		Description: "A description long enough to pass",
		Tags:        []string{"travel"},
		Video: &FileUpload{
			FileName:    "clip.mp4",
			ContentType: "video/mp4",
			Size:        2048,
			File:        bytes.NewReader([]byte("data")),
		},
	}
}

// 測試 NormalizeTags
func TestNormalizeTags(t *testing.T) {
	t.Run("去空白小寫去重", func(t *testing.T) {
		got := NormalizeTags([]string{"Music", "music", " ROCK ", "", "  "})
		assert.Equal(t, []string{"music", "rock"}, got)
	})

	// 正規化必須是冪等的
	t.Run("冪等", func(t *testing.T) {
		once := NormalizeTags([]string{"Music", " ROCK ", "rock"})
		twice := NormalizeTags(once)
		assert.Equal(t, once, twice)
	})

	t.Run("空輸入", func(t *testing.T) {
		assert.Empty(t, NormalizeTags(nil))
	})
}

// 測試 ParseTags
func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"a", " b", "c "}, ParseTags("a, b,c "))
	assert.Nil(t, ParseTags(""))
}

// 測試 UploadVideoReq.Validate
func TestUploadVideoReqValidate(t *testing.T) {
	t.Run("合法請求", func(t *testing.T) {
		req := validUploadReq()
		req.Tags = []string{"Travel", "travel", " FUN "}
		assert.NoError(t, req.Validate())
		// 驗證後 tags 已正規化
		assert.Equal(t, []string{"travel", "fun"}, req.Tags)
	})

	t.Run("標題過短", func(t *testing.T) {
		req := validUploadReq()
		req.Title = "ab"
		assert.Error(t, req.Validate())
	})

	t.Run("標題過長", func(t *testing.T) {
		req := validUploadReq()
		req.Title = strings.Repeat("x", TitleMaxLen+1)
		assert.Error(t, req.Validate())
	})

	t.Run("描述過短", func(t *testing.T) {
		req := validUploadReq()
		req.Description = "short"
		assert.Error(t, req.Validate())
	})

	t.Run("標籤去重後為空", func(t *testing.T) {
		req := validUploadReq()
		req.Tags = []string{"  ", ""}
		assert.Error(t, req.Validate())
	})

	t.Run("標籤超過上限", func(t *testing.T) {
		req := validUploadReq()
		req.Tags = nil
		for i := 0; i < MaxTags+1; i++ {
			req.Tags = append(req.Tags, strings.Repeat("t", i+1))
		}
		assert.Error(t, req.Validate())
	})

	t.Run("缺少影片檔", func(t *testing.T) {
		req := validUploadReq()
		req.Video = nil
		assert.Error(t, req.Validate())
	})

	t.Run("MIME 不在白名單", func(t *testing.T) {
		req := validUploadReq()
		req.Video.ContentType = "video/webm"
		assert.Error(t, req.Validate())
	})

	t.Run("檔案過大", func(t *testing.T) {
		req := validUploadReq()
		req.Video.Size = MaxUploadBytes + 1
		assert.Error(t, req.Validate())
	})

	t.Run("剛好 100 MiB 可接受", func(t *testing.T) {
		req := validUploadReq()
		req.Video.Size = MaxUploadBytes
		assert.NoError(t, req.Validate())
	})

	t.Run("附帶縮圖也要驗證", func(t *testing.T) {
		req := validUploadReq()
		req.Thumbnail = &FileUpload{
			FileName:    "thumb.gif",
			ContentType: "image/gif",
			Size:        10,
		}
		assert.Error(t, req.Validate())
	})
}

// 測試 VideoStatus
func TestVideoStatusIsValid(t *testing.T) {
	assert.True(t, VideoPending.IsValid())
	assert.True(t, VideoApproved.IsValid())
	assert.True(t, VideoRejected.IsValid())
	assert.False(t, VideoStatus("published").IsValid())
}

// 測試 IsLikedBy
func TestIsLikedBy(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()
	v := Video{LikedBy: []primitive.ObjectID{a}}
	assert.True(t, v.IsLikedBy(a))
	assert.False(t, v.IsLikedBy(b))
}

// 測試 VideoQuery.Normalize
func TestVideoQueryNormalize(t *testing.T) {
	q := VideoQuery{Page: -2, Limit: 0}
	q.Normalize()
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 10, q.Limit)

	q = VideoQuery{Page: 3, Limit: 25}
	q.Normalize()
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 25, q.Limit)
}
